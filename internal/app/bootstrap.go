package app

import (
	"fmt"
	"strings"

	"jobtracker/internal/delivery/http/handler"
	"jobtracker/internal/delivery/http/middleware"
	"jobtracker/internal/delivery/http/routes"
	"jobtracker/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// New builds the fiber app on top of a container: global middleware,
// every route, and the websocket hub pump.
func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f, c)

	registry := &routes.Registry{
		Health:      handler.NewHealthHandler(c.Index, c.DB),
		Status:      handler.NewStatusHandler(c.Status),
		Admin:       handler.NewAdminHandler(c.Status),
		Occupations: handler.NewOccupationsHandler(c.Occupations),
		Wages:       handler.NewWagesHandler(c.Wages),
		Skills:      handler.NewSkillsHandler(c.Skills),
		Pipeline:    ws.NewHandler(c.Hub, c.Logger),
	}
	registry.Register(f)

	go c.Hub.Run()

	return &App{Fiber: f, Container: c}
}

func Bootstrap(c *Container) (*App, func() error, error) {
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Logger)
	app.Use(accessMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
