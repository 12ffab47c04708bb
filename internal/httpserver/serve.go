package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/rs/zerolog"
)

const (
	shutdownGrace = 10 * time.Second
)

// Addr joins host and port, an empty host listens on every interface
func Addr(host string, port int) string {
	return net.JoinHostPort(host, strconv.Itoa(port))
}

// Serve blocks until ctx is cancelled or the listener fails.
// A cancelled ctx drains open connections and returns nil.
func Serve(ctx context.Context, bind string, handler http.Handler) error {
	server := &http.Server{
		Handler:           WithRequestLog(ctx, handler),
		Addr:              bind,
		ReadTimeout:       time.Minute,
		WriteTimeout:      time.Minute,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute * 5,
	}
	log := logutil.GetOrDefault(ctx).With().Str("server.addr", bind).Logger()

	stopped := make(chan error, 1)
	go func() {
		log.Info().Msg("Demo app listening")
		stopped <- server.ListenAndServe()
	}()

	select {
	case err := <-stopped:
		return fmt.Errorf("unable to serve on %v, cause %w", bind, err)
	case <-ctx.Done():
	}
	return drain(server, log, stopped)
}

func drain(server *http.Server, log zerolog.Logger, stopped <-chan error) error {
	log.Info().Dur("grace", shutdownGrace).Msg("Draining connections")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Close()
		return fmt.Errorf("unable to drain connections, cause %w", err)
	}
	if err := <-stopped; !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped unexpectedly, cause %w", err)
	}
	log.Info().Msg("Server stopped")
	return nil
}
