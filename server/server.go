// Package server serves the site straight from the registry. Every request
// rebuilds the registry so edits on disk show up on reload.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"blog/build"
)

const shutdownTimeout = 5 * time.Second

// Server is the development HTTP server.
type Server struct {
	echo    *echo.Echo
	builder *build.Builder
}

// New creates a Server rendering pages from b.
func New(b *build.Builder) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{echo: e, builder: b}

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:  true,
		LogURI:     true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))
	e.Use(middleware.Recover())

	e.GET("/*", s.handlePage)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errc := make(chan error, 1)
	go func() {
		slog.Info("serving site", "addr", addr)
		errc <- s.echo.Start(addr)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(shutdownCtx)
}

func (s *Server) handlePage(c echo.Context) error {
	reg, err := s.builder.Registry()
	if err != nil {
		slog.Error("rebuilding registry", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	_, page, ok := reg.Resolve(c.Request().URL.Path)
	if !ok {
		return echo.ErrNotFound
	}

	body, err := s.builder.Render(page, build.Context{})
	if err != nil {
		slog.Error("rendering page", "path", c.Request().URL.Path, "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	c.Response().Header().Set("Cache-Control", "no-store")
	return c.Blob(http.StatusOK, page.ContentType, []byte(body))
}
