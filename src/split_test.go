package storybook

import (
	"reflect"
	"strings"
	"testing"
)

func TestSplitSections(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		wantSections []string
		wantPrompts  []string
	}{
		{
			name: "two markers",
			raw: "Part one text\n" +
				"IMAGE_PROMPT: a warrior on a cliff\n" +
				"Part two text\n" +
				"IMAGE_PROMPT: a glowing sword\n" +
				"Part three text",
			wantSections: []string{"Part one text", "Part two text", "Part three text"},
			wantPrompts:  []string{"a warrior on a cliff", "a glowing sword"},
		},
		{
			name:         "no markers",
			raw:          "Just a single story with no illustrations at all.",
			wantSections: []string{"Just a single story with no illustrations at all."},
			wantPrompts:  nil,
		},
		{
			name:         "trailing marker without newline",
			raw:          "The ending\nIMAGE_PROMPT: a sunset over ruins",
			wantSections: []string{"The ending", ""},
			wantPrompts:  []string{"a sunset over ruins"},
		},
		{
			name:         "marker at start",
			raw:          "IMAGE_PROMPT: a beginning image\nThe story follows",
			wantSections: []string{"", "The story follows"},
			wantPrompts:  []string{"a beginning image"},
		},
		{
			name:         "whitespace trimmed",
			raw:          "  padded text  \nIMAGE_PROMPT:   spaced prompt   \n  more text  ",
			wantSections: []string{"padded text", "more text"},
			wantPrompts:  []string{"spaced prompt"},
		},
		{
			name:         "empty input",
			raw:          "",
			wantSections: []string{""},
			wantPrompts:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, prompts := SplitSections(tt.raw)
			if !reflect.DeepEqual(sections, tt.wantSections) {
				t.Errorf("sections = %q, want %q", sections, tt.wantSections)
			}
			if !reflect.DeepEqual(prompts, tt.wantPrompts) {
				t.Errorf("prompts = %q, want %q", prompts, tt.wantPrompts)
			}
		})
	}
}

// N markers must always yield N prompts and N+1 sections, whatever
// shape the model output takes.
func TestSplitSectionsCounts(t *testing.T) {
	for n := 0; n <= 10; n++ {
		var b strings.Builder
		b.WriteString("intro text\n")
		for i := 0; i < n; i++ {
			b.WriteString("IMAGE_PROMPT: some description\nmore narrative\n")
		}
		sections, prompts := SplitSections(b.String())
		if len(prompts) != n {
			t.Errorf("n=%d: got %d prompts", n, len(prompts))
		}
		if len(sections) != n+1 {
			t.Errorf("n=%d: got %d sections, want %d", n, len(sections), n+1)
		}
	}
}
