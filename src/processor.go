package storybook

import (
	"fmt"
)

// GenerateStory runs prompt building, text generation, and section
// splitting for one request. Any error from the model is fatal: no
// partial story is attempted and no images are fetched.
func GenerateStory(client StoryClient, req StoryRequest, p Progressor) (*Storybook, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid story request: %w", err)
	}
	pr := progressOr(p)

	pr.UpdateOutput(fmt.Sprintf("Generating a %d-part %s story...", req.Parts, req.Genre))
	raw, err := client.SendMessage(GetStorySystemPrompt(), BuildStoryPrompt(req))
	if err != nil {
		return nil, fmt.Errorf("generating story: %w", err)
	}

	book := &Storybook{
		Request: req,
		RawText: raw,
	}
	book.Sections, book.ImagePrompts = SplitSections(raw)
	pr.UpdateOutput(fmt.Sprintf("Story generated: %d sections, %d illustration prompts",
		len(book.Sections), len(book.ImagePrompts)))
	return book, nil
}

// GenerateIllustrations fetches one image per prompt, strictly in
// prompt order. A failed call marks its position absent and the batch
// continues; failures are surfaced through the progressor so each one
// reaches the user as a position-scoped message.
func GenerateIllustrations(client ImageClient, book *Storybook, p Progressor) {
	pr := progressOr(p)

	book.Assets = make([][]byte, len(book.ImagePrompts))
	for i, prompt := range book.ImagePrompts {
		pr.UpdateOutput(fmt.Sprintf("Generating image %d of %d for: '%s'",
			i+1, len(book.ImagePrompts), prompt))
		data, err := client.ImageGenerate(prompt, pr)
		if err != nil {
			pr.UpdateOutput(fmt.Sprintf("Error generating image %d: %v", i+1, err))
			continue
		}
		book.Assets[i] = data
	}
	pr.UpdateOutput(fmt.Sprintf("Illustrations complete: %d of %d succeeded",
		book.AssetCount(), len(book.ImagePrompts)))
}
