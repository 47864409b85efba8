package generator

import (
	"fmt"

	"github.com/opd-ai/storybook/bookcompiler"
	storybook "github.com/opd-ai/storybook/src"
)

// Deps carries the externally constructed model clients. They are
// built once at process start and shared across sessions; all
// per-request state lives in the Storybook passed through the
// pipeline.
type Deps struct {
	Story  storybook.StoryClient
	Images storybook.ImageClient
}

// GenerateStorybook drives one session through the whole pipeline:
// story generation, illustration fetching, and PDF assembly. A story
// generation failure aborts the session; a failed illustration only
// leaves its section text-only; an assembly failure loses the
// download but the story and images already streamed to the client
// stay visible in the session history.
func GenerateStorybook(progress *GenerationProgress, deps Deps, req storybook.StoryRequest) error {
	progress.UpdateState(StateGenerating)

	var book *storybook.Storybook

	steps := []struct {
		name     string
		function func() error
	}{
		{
			name: "generating story",
			function: func() error {
				var err error
				book, err = storybook.GenerateStory(deps.Story, req, progress)
				if err != nil {
					return err
				}
				progress.SetStoryText(book.RawText)
				return nil
			},
		},
		{
			name: "generating illustrations",
			function: func() error {
				progress.SendUpdate(fmt.Sprintf("🎨 Generating %d illustrations...", len(book.ImagePrompts)))
				storybook.GenerateIllustrations(deps.Images, book, progress)
				return nil
			},
		},
		{
			name: "assembling document",
			function: func() error {
				progress.SendUpdate("📄 Assembling your storybook PDF...")
				sc := bookcompiler.NewStoryCompiler(storyTitle(req), book.Sections, book.Assets)
				doc, err := sc.Compile()
				if err != nil {
					return err
				}
				progress.SetResult(doc, book.FileName())
				return nil
			},
		},
	}

	for _, step := range steps {
		if err := step.function(); err != nil {
			return fmt.Errorf("%s: %w", step.name, err)
		}
	}

	progress.UpdateState(StateCompleted)
	progress.SendUpdate("✅ Story complete! You can now download your storybook.")
	return nil
}

func storyTitle(req storybook.StoryRequest) string {
	return fmt.Sprintf("A %s Story", req.Genre)
}
