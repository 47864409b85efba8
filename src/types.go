package storybook

import (
	"fmt"
	"strings"
)

// Configuration struct for API keys and other settings
type Config struct {
	AnthropicKey string
	StabilityKey string
	SDWebUIURL   string
	HordeKey     string
	OutputDir    string
}

// Genre values accepted by the prompt builder.
const (
	GenreFantasy = "Fantasy"
	GenreSciFi   = "Sci-Fi"
	GenreMystery = "Mystery"
	GenreComedy  = "Comedy"
)

// Genres lists the selectable genres in display order.
var Genres = []string{GenreFantasy, GenreSciFi, GenreMystery, GenreComedy}

const (
	MinParts = 2
	MaxParts = 10
)

// StoryRequest carries the user input for one generation run.
// It is validated once and not modified afterwards.
type StoryRequest struct {
	Idea  string
	Genre string
	Parts int
}

func (r StoryRequest) Validate() error {
	if strings.TrimSpace(r.Idea) == "" {
		return fmt.Errorf("story idea is required")
	}
	valid := false
	for _, g := range Genres {
		if r.Genre == g {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("unknown genre: %q", r.Genre)
	}
	if r.Parts < MinParts || r.Parts > MaxParts {
		return fmt.Errorf("part count must be between %d and %d, got %d", MinParts, MaxParts, r.Parts)
	}
	return nil
}

// Storybook holds the state of one request as it moves through the
// pipeline: raw model output, split sections and prompts, and the
// image bytes fetched per prompt. A nil entry in Assets means the
// image at that position failed and the section renders text-only.
type Storybook struct {
	Request      StoryRequest
	RawText      string
	Sections     []string
	ImagePrompts []string
	Assets       [][]byte
}

// AssetCount reports how many illustrations were actually produced.
// The web and CLI front ends use it to decide whether to offer a
// download with images or a text-only document.
func (s *Storybook) AssetCount() int {
	n := 0
	for _, a := range s.Assets {
		if a != nil {
			n++
		}
	}
	return n
}

// FileName returns the download name for the assembled document.
func (s *Storybook) FileName() string {
	return fmt.Sprintf("%s_story.pdf", strings.ToLower(s.Request.Genre))
}
