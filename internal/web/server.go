package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	templates "github.com/wolfeidau/echo-go-templates"

	"chat-relay/internal/service"
	"chat-relay/internal/web/views"
)

type Config struct {
	Addr       string
	Debug      bool
	Roster     *service.RosterService
	Completer  service.Completer
	Controller WebhookController
	Dispatcher UpdateDispatcher
}

// New builds the echo instance with middleware, renderer and routes.
func New(cfg Config) (*echo.Echo, error) {
	e := echo.New()
	e.Debug = cfg.Debug
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	render := templates.New()

	if err := render.AddWithLayoutAndIncludes(views.Content, "layouts/base.html", "includes/*.html", "templates/*.html"); err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	e.Renderer = render

	RegisterHandlers(e, NewServer(cfg.Roster, cfg.Completer, cfg.Controller, cfg.Dispatcher))

	return e, nil
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func Start(ctx context.Context, cfg Config) error {
	e, err := New(cfg)
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			e.Logger.Error(err)
		}
	}()

	if err := e.Start(cfg.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
