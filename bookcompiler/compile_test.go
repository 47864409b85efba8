package bookcompiler

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func testPNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for x := 0; x < 8; x++ {
		for y := 0; y < 8; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 32), G: uint8(y * 32), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test image: %v", err)
	}
	return buf.Bytes()
}

func isPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

func TestCompileTextAndImages(t *testing.T) {
	img := testPNG(t)
	sections := []string{"Part one text", "Part two text", "Part three text"}
	assets := [][]byte{img, img}

	doc, err := NewStoryCompiler("A Fantasy Story", sections, assets).Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !isPDF(doc) {
		t.Error("output is not a PDF document")
	}
}

// The document must assemble for any J <= K assets, including none.
func TestCompileAssetCountIndependence(t *testing.T) {
	img := testPNG(t)
	sections := []string{"one", "two", "three"}

	tests := []struct {
		name   string
		assets [][]byte
	}{
		{"no assets", nil},
		{"empty assets", [][]byte{}},
		{"one asset", [][]byte{img}},
		{"absent position", [][]byte{img, nil, img}},
		{"all assets", [][]byte{img, img, img}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewStoryCompiler("", sections, tt.assets).Compile()
			if err != nil {
				t.Fatalf("Compile() error = %v", err)
			}
			if !isPDF(doc) {
				t.Error("output is not a PDF document")
			}
		})
	}
}

func TestCompileNonLatinTextDegrades(t *testing.T) {
	sections := []string{
		"Élodie raced through the château — “vite!” she cried…",
		"The 龍 watched from the 山, unmoved.",
	}

	doc, err := NewStoryCompiler("Ünïcödé", sections, nil).Compile()
	if err != nil {
		t.Fatalf("Compile() should degrade unsupported characters, got error %v", err)
	}
	if !isPDF(doc) {
		t.Error("output is not a PDF document")
	}
}

func TestCompileMarkdownSections(t *testing.T) {
	sections := []string{
		"# The Beginning\n\nOnce upon a time, there was *emphasis* and **boldness**.\n\n- a list item\n- another",
	}

	doc, err := NewStoryCompiler("", sections, nil).Compile()
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	if !isPDF(doc) {
		t.Error("output is not a PDF document")
	}
}

func TestCompileCorruptImageFailsAtomically(t *testing.T) {
	sections := []string{"a section"}
	assets := [][]byte{[]byte("this is not an image at all")}

	doc, err := NewStoryCompiler("", sections, assets).Compile()
	if err == nil {
		t.Fatal("expected error for corrupt image bytes")
	}
	if doc != nil {
		t.Error("no partial document may be returned on failure")
	}
	if !strings.Contains(err.Error(), "image") {
		t.Errorf("error should identify the failing image, got %v", err)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("“Hello” — it’s a ‘test’…")
	want := `"Hello" - it's a 'test'...`
	if got != want {
		t.Errorf("cleanText() = %q, want %q", got, want)
	}
}

func TestImageType(t *testing.T) {
	if typ, err := imageType(testPNG(t)); err != nil || typ != "PNG" {
		t.Errorf("imageType(png) = %q, %v", typ, err)
	}
	if _, err := imageType([]byte("garbage bytes here")); err == nil {
		t.Error("expected error for unknown image data")
	}
}
