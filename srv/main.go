package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	storybook "github.com/opd-ai/storybook/src"
	"github.com/opd-ai/storybook/srv/generator"
	"github.com/opd-ai/storybook/srv/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := storybook.Config{
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		StabilityKey: os.Getenv("STABILITY_API_KEY"),
		SDWebUIURL:   os.Getenv("SD_WEBUI_URL"),
		HordeKey:     os.Getenv("HORDE_API_KEY"),
	}
	if config.AnthropicKey == "" {
		log.Fatal("Please set ANTHROPIC_API_KEY environment variable")
	}

	deps := generator.Deps{
		Story:  storybook.NewClaudeClient(config.AnthropicKey),
		Images: storybook.NewImageClient(config),
	}

	addr := os.Getenv("STORYBOOK_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	log.Printf("Server starting on %s", addr)
	log.Fatal(http.ListenAndServe(addr, ui.NewGeneratorUI(deps)))
}
