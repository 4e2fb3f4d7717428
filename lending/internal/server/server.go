package server

import (
	"context"
	"net"
	"net/http"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/pkg/errors"
)

type Server struct {
	srv *http.Server
}

func NewServer(cfg config.HTTPServer, h http.Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
			Handler:           h,
			ReadTimeout:       cfg.ReadTimeout,
			ReadHeaderTimeout: cfg.ReadTimeout,
			WriteTimeout:      cfg.WriteTimeout,
		},
	}
}

func (s *Server) Run() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
