// prompts.go
package storybook

import (
	"fmt"
	"strings"
)

// ImageMarker separates narrative text from the illustration
// description that follows it in model output. The splitter treats it
// as a best-effort protocol, not a guarantee.
const ImageMarker = "IMAGE_PROMPT:"

// GetStorySystemPrompt returns the fixed system prompt for story
// expansion. The per-request details live in the user prompt built by
// BuildStoryPrompt.
func GetStorySystemPrompt() string {
	return `You are a storyteller expanding short ideas into complete illustrated stories.
	Write vivid, self-contained prose with a clear beginning, middle, and end.
	Avoid the direct use of copyrighted material and characters.

	Do this without asking for confirmation or direction.
	Do not ask for confirmation in any way, just output the complete story.
	This is essential.`
}

// BuildStoryPrompt formats the user idea, genre, and part count into a
// single instruction string. Each part must be followed by a line
// holding the marker and a short illustration description; the line
// boundary is what lets the splitter separate the description from the
// next part.
func BuildStoryPrompt(req StoryRequest) string {
	prompt := fmt.Sprintf(`Based on the following short prompt, expand it into a detailed %s story.
	The story should be divided into %d distinct parts.
	After each part, add a line containing only the text '%s' followed by a short,
	descriptive sentence for an image that represents that part of the story.
	Keep each %s line on its own line.

	Follow this example format exactly for each consecutive part:`,
		req.Genre, req.Parts, ImageMarker, ImageMarker)
	prompt += "```\n"
	prompt += fmt.Sprintf(`Prose for this part of the story, as many sentences as the part needs.
%s A one-sentence visual description of this part.

`, ImageMarker)
	prompt += "```\n"
	prompt += fmt.Sprintf("User prompt: '%s'\n", strings.TrimSpace(req.Idea))
	return prompt
}
