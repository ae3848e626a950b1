// Command stubollama serves canned Ollama-shaped responses so the bridge and
// CLI can be exercised without a model installed. It covers exactly the
// endpoints the bridge calls; --fail and --delay exist to drive the error
// and timeout paths by hand.
package main

import (
	"flag"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/gmodtools/gmollama/pkg/llm"
	"github.com/gmodtools/gmollama/pkg/logger"
)

func main() {
	listenAddr := flag.String("listen", ":11434", "Address to listen on")
	delay := flag.Duration("delay", 0, "Artificial delay before every response")
	fail := flag.Bool("fail", false, "Answer every /api call with HTTP 500")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	log := logger.New(*debug)
	defer log.Sync()

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(func(c *fiber.Ctx) error {
		if *delay > 0 {
			time.Sleep(*delay)
		}
		log.Debug("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
		)
		return c.Next()
	})

	// Liveness probe target, same banner a real Ollama serves.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("Ollama is running")
	})

	api := app.Group("/api", func(c *fiber.Ctx) error {
		if *fail {
			return c.Status(fiber.StatusInternalServerError).
				JSON(llm.ErrorResponse{Error: "stub is configured to fail"})
		}
		return c.Next()
	})

	api.Post("/generate", handleGenerate)
	api.Post("/chat", handleChat)
	api.Get("/tags", handleTags)
	api.Post("/show", handleShow)
	api.Get("/ps", handlePS)
	api.Post("/embed", handleEmbed)

	log.Info("stub Ollama listening",
		zap.String("listen", *listenAddr),
		zap.Bool("fail", *fail),
		zap.Duration("delay", *delay),
	)

	if err := app.Listen(*listenAddr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
