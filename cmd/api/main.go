package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/shravyakp25082007-tech/stockmate/internal/app"
	"github.com/shravyakp25082007-tech/stockmate/internal/config"
	"github.com/shravyakp25082007-tech/stockmate/internal/handler"
	"github.com/shravyakp25082007-tech/stockmate/internal/logger"
	"github.com/shravyakp25082007-tech/stockmate/internal/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	// 1. Load config (.env + environment)
	cfg, err := config.Load()
	if err != nil {
		bootLog := logger.New("info", false)
		bootLog.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.LogPretty)

	// 2. Setup WebSocket Hub
	wsHub := ws.NewHub(log)
	go wsHub.Run()

	// 3. Store, state and services
	a, err := app.Open(cfg, wsHub, log)
	if err != nil {
		log.Fatal().Err(err).Msg("startup failed")
	}
	defer a.Close()

	invHandler := handler.NewInventoryHandler(a.Inventory, a.Ledger)
	planHandler := handler.NewPlanningHandler(a.Plan)
	dashHandler := handler.NewDashboardHandler(a.Dashboard)

	// 4. Setup Fiber
	server := fiber.New(fiber.Config{
		AppName:   cfg.AppName,
		Immutable: true,
	})

	server.Use(fiberlogger.New(fiberlogger.Config{Output: log})) // Logging request
	server.Use(recover.New())                                     // Panic recovery
	server.Use(cors.New())                                        // CORS

	// 5. Routes
	handler.SetupRoutes(server, invHandler, planHandler, dashHandler)

	// WebSocket Route
	server.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	server.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 6. Graceful Shutdown
	go func() {
		if err := server.Listen(":" + cfg.Port); err != nil {
			log.Panic().Err(err).Msg("listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Int("ws_clients", wsHub.ClientCount()).Msg("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
