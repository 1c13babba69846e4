package commands

import (
	"net/http"
	"time"

	"github.com/opentrusty/licensehub/internal/config"
)

type Globals struct {
	Version string
}

func configureHTTPServer(cfg config.ServerConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    8 * 1024, // 8KiB
	}
}
