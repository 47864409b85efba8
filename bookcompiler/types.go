package bookcompiler

import "github.com/jung-kurt/gofpdf"

// StoryCompiler handles the compilation of story sections and their
// illustrations into a single PDF document, one page per section.
type StoryCompiler struct {
	Title    string
	Sections []string
	Assets   [][]byte // index-aligned with Sections; nil means no illustration

	pdf         *gofpdf.Fpdf
	translate   func(string) string
	titleFont   string
	textFont    string
	pageNumbers bool
	margin      float64
	imageWidth  float64
}

// NewStoryCompiler creates a new instance of StoryCompiler. Assets may
// be shorter than Sections; trailing sections render text-only.
func NewStoryCompiler(title string, sections []string, assets [][]byte) *StoryCompiler {
	return &StoryCompiler{
		Title:       title,
		Sections:    sections,
		Assets:      assets,
		titleFont:   "Arial",
		textFont:    "Times",
		pageNumbers: true,
		margin:      20,  // mm
		imageWidth:  150, // mm
	}
}
