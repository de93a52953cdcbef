package main

import (
	"net/http"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/mvasko/wraith/config"
	"github.com/mvasko/wraith/server"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	cfg := config.Load()
	Server := Server{
		GameServer: server.NewGameServer(cfg),
	}
	Server.routes()
	log.Printf("listening on port %s, defaults %dx%d maze, %d survivors",
		cfg.Port, cfg.Rows, cfg.Cols, cfg.SurvivorCount)
	log.Fatalln(http.ListenAndServe(":"+cfg.Port, Server.router))
}
