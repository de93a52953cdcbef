package server

import (
	"encoding/gob"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/mvasko/wraith/config"
	"github.com/mvasko/wraith/game"
	"github.com/mvasko/wraith/model"
)

func NewGameServer(cfg config.Config) *GameServer {
	return &GameServer{
		Defaults: cfg.RoundDefaults(),
		TickRate: cfg.TickRate,
		Upgrader: &websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// HandleWS starts a round per connection: validate config, upgrade, stream
// a setup frame and then one snapshot frame per tick until the round is
// terminal or the client goes away.
func (s *GameServer) HandleWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Printf("HandleWS - connection received")

		cfg := s.roundConfig(r.URL.Query())
		round, err := game.NewRound(cfg, nil)
		if err != nil {
			log.Warnf("HandleWS refusing round: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		con, err := s.Upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Printf("HandleWS websocket upgrade err %v", err)
			return
		}
		defer con.Close()

		rs := NewRoundSession(round, con, s.TickRate)
		go rs.LoopChannelRead()
		go rs.LoopChannelWrite()

		rs.MessagesToSend <- rs.MakeSetupMessage(cfg, s.TickRate)
		rs.Loop()
		log.Printf("HandleWS session over, state %s", rs.State.Name())
	}
}

// roundConfig merges the UI's query knobs over the server defaults. The
// role selector and speed slider live in the browser; they arrive here.
func (s *GameServer) roundConfig(q url.Values) model.RoundConfig {
	cfg := s.Defaults
	cfg.Rows = intParam(q, "rows", cfg.Rows)
	cfg.Cols = intParam(q, "cols", cfg.Cols)
	cfg.SurvivorCount = intParam(q, "survivors", cfg.SurvivorCount)
	cfg.GhostSpeed = intParam(q, "speed", cfg.GhostSpeed)
	switch q.Get("mode") {
	case "manual":
		cfg.GhostMode = model.ManuallyControlled
	case "ai":
		cfg.GhostMode = model.AIControlled
	}
	return cfg
}

func NewRoundSession(round *game.Round, con *websocket.Conn, tickRate int) *RoundSession {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &RoundSession{
		State:          RS_NEW,
		Round:          round,
		Conn:           con,
		TickInterval:   time.Second / time.Duration(tickRate),
		Events:         make(chan model.ClientMessage, 10),
		Errors:         make(chan error, 1),
		MessagesToSend: make(chan model.ServerMessage, 10),
		Done:           make(chan struct{}),
	}
}

// Loop is the only goroutine that touches the round. Ticks, client intents
// and connection errors are serialized here, so no tick is ever observed
// half applied.
func (rs *RoundSession) Loop() {
	log.Info("RoundSession.Loop start")
	rs.State = RS_PLAY
	ticker := time.NewTicker(rs.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			snap := rs.Round.Tick()
			rs.send(model.ServerMessage{Snapshots: []model.RoundSnapshot{snap}})
			if snap.State != model.InProgress {
				rs.State = RS_OVER
				close(rs.Done)
				return
			}
		case cm := <-rs.Events:
			if cm.Quit {
				rs.Round.End("client quit")
				continue // terminal snapshot goes out with the next tick
			}
			rs.Round.SubmitGhostIntent(cm.Move)
		case err := <-rs.Errors:
			log.Warnf("RoundSession.Loop closing on error: %v", err)
			rs.State = RS_ERR
			rs.Round.End("connection error")
			close(rs.Done)
			return
		}
	}
}

func (rs *RoundSession) MakeSetupMessage(cfg model.RoundConfig, tickRate int) model.ServerMessage {
	return model.ServerMessage{
		Setup: []model.Setup{{
			Rows:       rs.Round.Grid.Rows(),
			Cols:       rs.Round.Grid.Cols(),
			Walls:      rs.Round.Grid.Walls(),
			GhostMode:  cfg.GhostMode,
			GhostSpeed: cfg.GhostSpeed,
			TickRate:   tickRate,
		}},
		Snapshots: []model.RoundSnapshot{rs.Round.Snapshot()},
	}
}

func (rs *RoundSession) send(mes model.ServerMessage) {
	select {
	case rs.MessagesToSend <- mes:
	default:
		log.Warnf("Dropping frame, MessagesToSend FULL")
	}
}

func (rs *RoundSession) fail(err error) {
	select {
	case rs.Errors <- err:
	case <-rs.Done:
	}
}

// LoopChannelRead pumps client frames into the session loop.
func (rs *RoundSession) LoopChannelRead() {
	log.Printf("LoopChannelRead STARTED")
loop:
	for {
		_, r, err := rs.Conn.NextReader()
		if err != nil {
			if rs.State == RS_OVER {
				log.Printf("LoopChannelRead done, session over")
			} else {
				log.Printf("LoopChannelRead err reading message from Conn %v", err)
				rs.fail(err)
			}
			break loop
		}
		dec := gob.NewDecoder(r)
		cm := model.ClientMessage{}
		if err := dec.Decode(&cm); err != nil {
			log.Warn("LoopChannelRead cant decode")
			rs.fail(err)
			break loop
		}
		rs.DebugLastMessage = time.Now()
		rs.DebugInMessages++

		select {
		case rs.Events <- cm:
		case <-rs.Done:
			break loop
		default:
			log.Warnf("Dropping intent, Events FULL")
		}
	}
	log.Printf("LoopChannelRead ENDED")
}

// LoopChannelWrite drains outgoing frames, flushing what is left when the
// session finishes so the client still sees the terminal snapshot.
func (rs *RoundSession) LoopChannelWrite() {
	log.Printf("LoopChannelWrite STARTED")
loop:
	for {
		select {
		case mes := <-rs.MessagesToSend:
			if err := rs.write(mes); err != nil {
				rs.fail(err)
				break loop
			}
		case <-rs.Done:
			for {
				select {
				case mes := <-rs.MessagesToSend:
					if err := rs.write(mes); err != nil {
						break loop
					}
				default:
					break loop
				}
			}
		}
	}
	log.Printf("LoopChannelWrite ENDED")
}

func (rs *RoundSession) write(mes model.ServerMessage) error {
	w, err := rs.Conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		log.Warnf("LoopChannelWrite cant get writer %v", err)
		return err
	}
	enc := gob.NewEncoder(w)
	if err := enc.Encode(mes); err != nil {
		log.Warnf("LoopChannelWrite cant encode %v", err)
		return err
	}
	if err := w.Close(); err != nil {
		log.Warnf("LoopChannelWrite cant flush %v", err)
		return err
	}
	rs.DebugOutMessages++
	return nil
}
