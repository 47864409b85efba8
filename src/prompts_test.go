package storybook

import (
	"fmt"
	"strings"
	"testing"
)

func TestBuildStoryPromptContainsRequestFields(t *testing.T) {
	for _, genre := range Genres {
		req := StoryRequest{
			Idea:  "A lone warrior with a magical sword",
			Genre: genre,
			Parts: 3,
		}
		prompt := BuildStoryPrompt(req)

		if !strings.Contains(prompt, req.Idea) {
			t.Errorf("prompt for %s missing idea text", genre)
		}
		if !strings.Contains(prompt, genre) {
			t.Errorf("prompt missing genre %s", genre)
		}
		if !strings.Contains(prompt, fmt.Sprintf("%d", req.Parts)) {
			t.Errorf("prompt for %s missing part count", genre)
		}
		if !strings.Contains(prompt, ImageMarker) {
			t.Errorf("prompt for %s missing image marker instruction", genre)
		}
	}
}

func TestBuildStoryPromptTrimsIdea(t *testing.T) {
	prompt := BuildStoryPrompt(StoryRequest{
		Idea:  "  a haunted lighthouse  ",
		Genre: GenreMystery,
		Parts: 4,
	})
	if !strings.Contains(prompt, "'a haunted lighthouse'") {
		t.Errorf("idea not trimmed in prompt:\n%s", prompt)
	}
}

func TestStoryRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     StoryRequest
		wantErr bool
	}{
		{"valid", StoryRequest{Idea: "a quest", Genre: GenreFantasy, Parts: 3}, false},
		{"min parts", StoryRequest{Idea: "a quest", Genre: GenreComedy, Parts: MinParts}, false},
		{"max parts", StoryRequest{Idea: "a quest", Genre: GenreSciFi, Parts: MaxParts}, false},
		{"empty idea", StoryRequest{Idea: "   ", Genre: GenreFantasy, Parts: 3}, true},
		{"bad genre", StoryRequest{Idea: "a quest", Genre: "Horror", Parts: 3}, true},
		{"too few parts", StoryRequest{Idea: "a quest", Genre: GenreFantasy, Parts: 1}, true},
		{"too many parts", StoryRequest{Idea: "a quest", Genre: GenreFantasy, Parts: 11}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestStorybookFileName(t *testing.T) {
	book := &Storybook{Request: StoryRequest{Genre: GenreSciFi}}
	if got := book.FileName(); got != "sci-fi_story.pdf" {
		t.Errorf("FileName() = %q, want %q", got, "sci-fi_story.pdf")
	}
}
