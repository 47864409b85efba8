package storybook

import "strings"

// SplitSections splits raw model output on ImageMarker into narrative
// sections and image prompts. The text before the first marker is the
// first section; each marker contributes the remainder of its line as
// an image prompt and everything up to the next marker as the
// following section. Model output is not guaranteed to honor the
// marker format, so the split tolerates missing or trailing markers
// and never indexes out of bounds: N markers always yield N prompts
// and N+1 sections, and zero markers yield the whole text as a single
// section.
func SplitSections(raw string) (sections []string, prompts []string) {
	pieces := strings.Split(raw, ImageMarker)

	sections = append(sections, strings.TrimSpace(pieces[0]))
	for _, piece := range pieces[1:] {
		prompt := piece
		rest := ""
		if idx := strings.IndexByte(piece, '\n'); idx >= 0 {
			prompt = piece[:idx]
			rest = piece[idx+1:]
		}
		prompts = append(prompts, strings.TrimSpace(prompt))
		sections = append(sections, strings.TrimSpace(rest))
	}
	return sections, prompts
}
