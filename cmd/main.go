package main

import (
	"log"

	_ "time/tzdata"

	"github.com/thalyssonDEV/EventSync/cmd/api"
	"github.com/thalyssonDEV/EventSync/internal/adapters/config"
	setupAPI "github.com/thalyssonDEV/EventSync/internal/adapters/controller/http/setup"
)

func main() {
	cfg := config.Get()
	app, err := api.New(cfg)
	if err != nil {
		log.Panic(err)
	}

	handler := setupAPI.Setup(app)

	if err = app.Start(handler); err != nil {
		log.Panic(err)
	}
}
