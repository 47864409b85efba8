package bookcompiler

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// imageGap is the vertical spacing below each section block, in mm.
const imageGap = 10

// Compile lays out all sections and serializes the document. It
// either returns the complete PDF bytes or an error; no partial
// document is ever produced.
func (sc *StoryCompiler) Compile() ([]byte, error) {
	sc.pdf = gofpdf.New("P", "mm", "A4", "")
	sc.pdf.SetMargins(sc.margin, sc.margin, sc.margin)

	// Story text may contain characters outside the basic Latin
	// range. The cp1252 translator substitutes anything the core
	// fonts cannot encode instead of failing the document.
	sc.translate = sc.pdf.UnicodeTranslatorFromDescriptor("")

	if sc.pageNumbers {
		sc.pdf.SetFooterFunc(func() {
			sc.pdf.SetY(-15)
			sc.pdf.SetFont(sc.titleFont, "I", 8)
			sc.pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", sc.pdf.PageNo()),
				"", 0, "C", false, 0, "")
		})
	}

	for i, section := range sc.Sections {
		sc.pdf.AddPage()

		if i == 0 && sc.Title != "" {
			sc.pdf.SetFont(sc.titleFont, "B", 24)
			sc.pdf.MultiCell(0, 10, sc.translate(cleanText(sc.Title)), "", "C", false)
			sc.pdf.Ln(10)
		}

		if err := sc.renderSection(section); err != nil {
			return nil, fmt.Errorf("rendering section %d: %w", i+1, err)
		}

		if i < len(sc.Assets) && sc.Assets[i] != nil {
			if err := sc.embedImage(i, sc.Assets[i]); err != nil {
				return nil, fmt.Errorf("embedding image %d: %w", i+1, err)
			}
		}
		sc.pdf.Ln(imageGap)
	}

	var buf bytes.Buffer
	if err := sc.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serializing document: %w", err)
	}
	return buf.Bytes(), nil
}

func (sc *StoryCompiler) embedImage(index int, data []byte) error {
	imgType, err := imageType(data)
	if err != nil {
		return err
	}

	name := fmt.Sprintf("illustration-%02d", index+1)
	opts := gofpdf.ImageOptions{ImageType: imgType}
	sc.pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(data))
	if sc.pdf.Err() {
		return sc.pdf.Error()
	}

	sc.pdf.Ln(5)
	sc.pdf.ImageOptions(name, 10, 0, sc.imageWidth, 0, true, opts, 0, "")
	if sc.pdf.Err() {
		return sc.pdf.Error()
	}
	return nil
}
