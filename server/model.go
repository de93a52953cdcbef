package server

import (
	"time"

	"github.com/gorilla/websocket"

	"github.com/mvasko/wraith/game"
	"github.com/mvasko/wraith/model"
)

type GameServer struct {
	Defaults model.RoundConfig
	TickRate int // ticks per second
	Upgrader *websocket.Upgrader
}

type RoundSessionState int

const (
	RS_NEW RoundSessionState = iota
	RS_PLAY
	RS_OVER
	RS_ERR
)

// RoundSession couples one round to one websocket client. The session loop
// owns the round; the read and write pumps only touch channels.
type RoundSession struct {
	State RoundSessionState
	Round *game.Round
	Conn  *websocket.Conn

	TickInterval time.Duration

	Events         chan model.ClientMessage
	Errors         chan error
	MessagesToSend chan model.ServerMessage
	Done           chan struct{}

	DebugInMessages  int
	DebugOutMessages int
	DebugLastMessage time.Time
}
