package main

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gmodtools/gmollama/pkg/llm"
)

// The canned catalog the stub pretends to have installed.
var stubModels = []llm.Model{
	{
		Name:       "llama2:latest",
		ModifiedAt: "2024-01-15T10:00:00Z",
		Size:       3825819519,
		Digest:     "fe938a131f40e6f6d40083c9f0f430a515233eb2edaa6d72eb85c50d64f2300e",
	},
	{
		Name:       "all-minilm:latest",
		ModifiedAt: "2024-02-01T08:30:00Z",
		Size:       45960996,
		Digest:     "1b226e2802dbb772b5fc32a58f103ca1804ef7501331012de126ab22f67475ef",
	},
}

func handleGenerate(c *fiber.Ctx) error {
	var req llm.GenerateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	return c.JSON(fiber.Map{
		"model":      req.Model,
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"response":   "Stub completion for: " + req.Prompt,
		"done":       true,
	})
}

func handleChat(c *fiber.Ctx) error {
	var req llm.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	last := "nothing"
	if len(req.Messages) > 0 {
		last = req.Messages[len(req.Messages)-1].Content
	}

	return c.JSON(fiber.Map{
		"model":      req.Model,
		"created_at": time.Now().UTC().Format(time.RFC3339),
		"message": llm.Message{
			Role:    "assistant",
			Content: "Stub reply to: " + last,
		},
		"done": true,
	})
}

func handleTags(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"models": stubModels})
}

func handleShow(c *fiber.Ctx) error {
	var req llm.ShowRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	for _, m := range stubModels {
		if m.Name == req.Name {
			return c.JSON(llm.ModelDetails{
				License:    "STUB LICENSE",
				Modelfile:  "FROM " + req.Name,
				Parameters: "stop \"<|user|>\"",
				Template:   "{{ .Prompt }}",
			})
		}
	}
	return c.Status(fiber.StatusNotFound).JSON(llm.ErrorResponse{Error: "model '" + req.Name + "' not found"})
}

func handlePS(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"models": []llm.RunningModel{
			{
				Name:      "llama2:latest",
				Model:     "llama2:latest",
				Size:      5137025024,
				Digest:    stubModels[0].Digest,
				ExpiresAt: time.Now().UTC().Add(5 * time.Minute).Format(time.RFC3339),
				SizeVRAM:  5137025024,
			},
		},
	})
}

func handleEmbed(c *fiber.Ctx) error {
	var req struct {
		Model string `json:"model"`
		Input any    `json:"input"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(llm.ErrorResponse{Error: "invalid request body"})
	}

	count := 1
	if arr, ok := req.Input.([]any); ok {
		count = len(arr)
	}

	vectors := make([][]float64, count)
	for i := range vectors {
		vectors[i] = []float64{0.0421, -0.0163, 0.0598, -0.0234}
	}

	return c.JSON(fiber.Map{
		"model":      req.Model,
		"embeddings": vectors,
	})
}
