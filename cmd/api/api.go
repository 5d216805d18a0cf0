package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"

	"github.com/thalyssonDEV/EventSync/internal/adapters/config"
	"github.com/thalyssonDEV/EventSync/internal/adapters/database/redis"
	"github.com/thalyssonDEV/EventSync/pkg/logger"
)

// App carries the shared dependencies the HTTP layer is wired from.
type App struct {
	DB         *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
	Logger     *logger.Logger
}

func New(cfg *config.Config) (*App, error) {
	apiLogger, err := logger.Named("api")
	if err != nil {
		return nil, err
	}

	return &App{
		DB:         cfg.Database,
		Redis:      cfg.Redis,
		SMTPDialer: cfg.SMTPDialer,
		Logger:     apiLogger,
	}, nil
}

// Start blocks serving HTTP on the configured address.
func (a *App) Start(handler http.Handler) error {
	addr := fmt.Sprintf("%s:%d",
		viper.GetString("service.api.host"),
		viper.GetInt("service.api.port"),
	)

	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Log.Infof("API listening on %s", addr)
	return server.ListenAndServe()
}
