package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"
)

const (
	defaultPort     = 8000
	shutdownTimeout = time.Second * 10
)

type Server struct {
	port    int
	stage   string
	handler http.Handler
	srv     *http.Server
}

type Option func(*Server) error

// NewServer mounts the request processor on GET /battleship.
func NewServer(rp RequestProcessor, optFuncs ...Option) (*Server, error) {
	server := Server{port: defaultPort}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			return nil, err
		}
	}

	mux := http.NewServeMux()
	mux.Handle("GET /battleship", rp)
	server.handler = mux
	server.srv = &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", server.port),
		Handler:           mux,
		ReadHeaderTimeout: time.Second * 5,
	}
	return &server, nil
}

func WithPort(port int) Option {
	return func(s *Server) error {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("invalid port: %d", port)
		}
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		s.stage = stage
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is done and then shuts the listener down.
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		log.Printf("Listening to port %d (stage: %s)\n", s.port, s.stage)
		errChan <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
