package server

import (
	"fmt"
	"net/url"
	"strconv"
)

func (s RoundSessionState) Name() string {
	switch s {
	case RS_NEW:
		return "NEW"
	case RS_PLAY:
		return "PLAY"
	case RS_OVER:
		return "OVER"
	case RS_ERR:
		return "ERR"
	default:
		return fmt.Sprintf("n/a:%d", s)
	}
}

// intParam reads a positive integer query parameter, falling back to def
// on absence or garbage.
func intParam(q url.Values, key string, def int) int {
	raw := q.Get(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return def
	}
	return v
}
