package ocr

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/tsawler/obscura/model"
)

// ParseHOCR parses hOCR output (the HTML-based OCR interchange format
// emitted by Tesseract and most other engines) into raw tokens.
//
// Only word elements (class "ocrx_word") with a bbox in their title
// attribute are consumed. Line identity comes from the enclosing line-level
// element (ocr_line, ocr_header, ocr_caption, or ocr_textfloat), numbered
// in document order.
func ParseHOCR(r io.Reader) ([]model.RawToken, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse hOCR: %w", err)
	}

	p := &hocrParser{}
	p.walk(doc)
	return p.tokens, nil
}

// hocrParser accumulates word tokens while walking the hOCR node tree.
type hocrParser struct {
	tokens []model.RawToken
	lineID int
}

func (p *hocrParser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		class := getAttr(n, "class")
		switch {
		case isLineClass(class):
			p.lineID++
		case hasClass(class, "ocrx_word"):
			p.addWord(n)
			return // words have no nested words
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *hocrParser) addWord(n *html.Node) {
	text := strings.TrimSpace(getTextContent(n))
	if text == "" {
		return
	}

	box, conf, ok := parseTitle(getAttr(n, "title"))
	if !ok {
		return // word without a bbox carries no pixel position
	}

	p.tokens = append(p.tokens, model.RawToken{
		Text:       text,
		Box:        box,
		LineID:     p.lineID,
		Confidence: conf,
	})
}

// parseTitle extracts the bounding box and, when present, the word
// confidence from an hOCR title attribute such as
// "bbox 100 50 240 90; x_wconf 96".
func parseTitle(title string) (model.Rect, float64, bool) {
	var box model.Rect
	var conf float64
	found := false

	for _, part := range strings.Split(title, ";") {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "bbox":
			if len(fields) != 5 {
				continue
			}
			coords := make([]int, 4)
			valid := true
			for i, f := range fields[1:] {
				v, err := strconv.Atoi(f)
				if err != nil {
					valid = false
					break
				}
				coords[i] = v
			}
			if !valid {
				continue
			}
			box = model.Rect{
				X:      coords[0],
				Y:      coords[1],
				Width:  coords[2] - coords[0],
				Height: coords[3] - coords[1],
			}
			found = true
		case "x_wconf":
			if len(fields) == 2 {
				if v, err := strconv.ParseFloat(fields[1], 64); err == nil {
					conf = v
				}
			}
		}
	}

	return box, conf, found
}

// isLineClass reports whether the class attribute marks a line-level hOCR
// element.
func isLineClass(class string) bool {
	for _, c := range []string{"ocr_line", "ocr_header", "ocr_caption", "ocr_textfloat"} {
		if hasClass(class, c) {
			return true
		}
	}
	return false
}

// hasClass reports whether a space-separated class attribute contains the
// given class name.
func hasClass(attr, name string) bool {
	for _, c := range strings.Fields(attr) {
		if c == name {
			return true
		}
	}
	return false
}

// getAttr returns the value of an attribute on a node, or empty string if not found.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getTextContent returns the concatenated text of a node and its children.
func getTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}

	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(getTextContent(c))
	}
	return sb.String()
}
