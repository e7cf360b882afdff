package main

import (
	"flag"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/maxence-charriere/go-app/v10/pkg/app"
	log "github.com/sirupsen/logrus"

	"github.com/kidandcat/kanban/internal/api"
	"github.com/kidandcat/kanban/internal/config"
	"github.com/kidandcat/kanban/internal/db"
)

func main() {
	flagAddr := flag.String("addr", ":8080", "listen address")
	flagData := flag.String("data", "data", "data directory")
	flag.Parse()

	godotenv.Load()
	cfg := config.Load(*flagAddr, *flagData)

	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	if err := db.Init(cfg.DataDir); err != nil {
		log.WithError(err).Fatal("init database")
	}

	mux := http.NewServeMux()

	// Self-hosted sync endpoint; disabled unless a token is configured.
	if cfg.SyncToken != "" {
		api.RegisterRoutes(mux, cfg)
	} else {
		log.Info("KANBAN_SYNC_TOKEN not set, blob sync API disabled")
	}

	mux.Handle("/", &app.Handler{
		Name:        "Kanban",
		Title:       "Kanban",
		Description: "Single-page Kanban issue tracker",
		Styles:      []string{"/web/app.css"},
	})

	log.WithField("addr", cfg.Addr).Info("kanban running")
	log.Fatal(http.ListenAndServe(cfg.Addr, mux))
}
