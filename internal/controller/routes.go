package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/websocket/v2"

	"github.com/lgbarn/chess-engine-go/internal/config"
	"github.com/lgbarn/chess-engine-go/internal/service"
)

// NewApp builds the HTTP application serving games.
func NewApp(cfg *config.Config, games *service.GameManager) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "chess-engine",
		DisableStartupMessage: cfg.Verbosity < config.Normal,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, DELETE, OPTIONS",
	}))
	if cfg.Verbosity >= config.Verbose && cfg.LogFile != nil {
		app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}

	gameController := NewGameController(games, cfg.Output.MaxLineLength)
	wsController := NewWebSocketController(games, cfg.Logger())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(c) {
			return fiber.ErrUpgradeRequired
		}
		return c.Next()
	})
	app.Get("/ws/games/:gameId", websocket.New(wsController.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}))

	api := app.Group("/api")
	api.Post("/games", gameController.CreateGame)
	api.Get("/games", gameController.ListGames)
	api.Get("/games/:gameId", gameController.GetGameState)
	api.Get("/games/:gameId/pgn", gameController.ExportGame)
	api.Delete("/games/:gameId", gameController.DeleteGame)
	api.Post("/games/:gameId/moves", gameController.MakeMove)
	api.Post("/games/:gameId/engine", gameController.EngineMove)

	return app
}
