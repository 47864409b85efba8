package bookcompiler

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/russross/blackfriday/v2"
	"golang.org/x/net/html"
)

const (
	bodySize   = 12
	lineHeight = 5
)

// renderSection converts one section's markdown to HTML and walks the
// DOM into the PDF. The model mostly emits plain prose, but headings
// and emphasis survive when it doesn't.
func (sc *StoryCompiler) renderSection(text string) error {
	htmlContent := blackfriday.Run([]byte(text))

	doc, err := html.Parse(bytes.NewReader(htmlContent))
	if err != nil {
		return fmt.Errorf("error parsing HTML: %w", err)
	}

	sc.setBodyFont()
	sc.renderHTML(doc)
	if sc.pdf.Err() {
		return sc.pdf.Error()
	}
	return nil
}

func (sc *StoryCompiler) renderHTML(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		text := cleanText(n.Data)
		if strings.TrimSpace(text) != "" {
			sc.pdf.Write(lineHeight, sc.translate(text))
		}
		return
	case html.ElementNode:
		switch n.Data {
		case "h1":
			sc.pdf.SetFont(sc.titleFont, "B", 18)
			sc.renderChildren(n)
			sc.pdf.Ln(12)
			sc.setBodyFont()
			return
		case "h2":
			sc.pdf.SetFont(sc.titleFont, "B", 16)
			sc.renderChildren(n)
			sc.pdf.Ln(10)
			sc.setBodyFont()
			return
		case "h3", "h4":
			sc.pdf.SetFont(sc.titleFont, "B", 14)
			sc.renderChildren(n)
			sc.pdf.Ln(8)
			sc.setBodyFont()
			return
		case "p":
			sc.setBodyFont()
			sc.renderChildren(n)
			sc.pdf.Ln(8)
			return
		case "em":
			sc.pdf.SetFont(sc.textFont, "I", bodySize)
			sc.renderChildren(n)
			sc.setBodyFont()
			return
		case "strong":
			sc.pdf.SetFont(sc.textFont, "B", bodySize)
			sc.renderChildren(n)
			sc.setBodyFont()
			return
		case "ul", "ol":
			sc.pdf.Ln(3)
			sc.renderChildren(n)
			sc.pdf.Ln(3)
			return
		case "li":
			sc.pdf.Write(lineHeight, "- ")
			sc.renderChildren(n)
			sc.pdf.Ln(lineHeight)
			return
		}
	}

	sc.renderChildren(n)
}

func (sc *StoryCompiler) renderChildren(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sc.renderHTML(c)
	}
}

func (sc *StoryCompiler) setBodyFont() {
	sc.pdf.SetFont(sc.textFont, "", bodySize)
}
