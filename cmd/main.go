package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/opd-ai/storybook/bookcompiler"
	storybook "github.com/opd-ai/storybook/src"
)

var (
	genre  = flag.String("genre", storybook.GenreFantasy, "Story genre: Fantasy, Sci-Fi, Mystery, or Comedy")
	parts  = flag.Int("parts", 3, "Number of story parts (2-10)")
	outDir = flag.String("o", ".", "Output directory for the generated PDF")
)

type consoleProgressor struct{}

func (c *consoleProgressor) UpdateOutput(message string) {
	fmt.Println(message)
}

func main() {
	flag.Parse()
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}

	config := storybook.Config{
		AnthropicKey: os.Getenv("ANTHROPIC_API_KEY"),
		StabilityKey: os.Getenv("STABILITY_API_KEY"),
		SDWebUIURL:   os.Getenv("SD_WEBUI_URL"),
		HordeKey:     os.Getenv("HORDE_API_KEY"),
		OutputDir:    *outDir,
	}
	if config.AnthropicKey == "" {
		fmt.Println("Please set ANTHROPIC_API_KEY environment variable")
		os.Exit(1)
	}

	var idea string
	if flag.NArg() > 0 {
		idea = flag.Arg(0)
	} else {
		ideab, err := os.ReadFile("IDEA.md")
		if err != nil {
			fmt.Println("Please provide a story idea or IDEA.md")
			os.Exit(1)
		}
		idea = string(ideab)
	}

	req := storybook.StoryRequest{
		Idea:  idea,
		Genre: *genre,
		Parts: *parts,
	}

	client := storybook.NewClaudeClient(config.AnthropicKey)
	progress := &consoleProgressor{}

	book, err := storybook.GenerateStory(client, req, progress)
	if err != nil {
		fmt.Printf("Error generating story: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Your Story ---")
	fmt.Println(book.RawText)
	fmt.Println("------------------")

	storybook.GenerateIllustrations(storybook.NewImageClient(config), book, progress)

	compiler := bookcompiler.NewStoryCompiler(fmt.Sprintf("A %s Story", req.Genre), book.Sections, book.Assets)
	doc, err := compiler.Compile()
	if err != nil {
		fmt.Printf("Error assembling document: %v\n", err)
		os.Exit(1)
	}

	outPath := filepath.Join(config.OutputDir, book.FileName())
	if err := os.WriteFile(outPath, doc, 0o644); err != nil {
		fmt.Printf("Error writing document: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Storybook complete! %d of %d illustrations, saved to %s\n",
		book.AssetCount(), len(book.ImagePrompts), outPath)
}
