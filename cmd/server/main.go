package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/router"
	"github.com/comanda-pos/api/internal/store"
	"github.com/comanda-pos/api/internal/ws"
)

func main() {
	cfg := config.Load()

	st, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatalf("Unable to open data file %s: %v", cfg.DataFile, err)
	}
	log.Printf("Using data file %s", cfg.DataFile)

	hub := ws.NewHub()
	go hub.Run()

	r := router.New(cfg, st, hub)

	log.Printf("Starting server on :%s", cfg.Port)
	if err := http.ListenAndServe(fmt.Sprintf(":%s", cfg.Port), r); err != nil {
		log.Fatal(err)
	}
}
