//go:build ocr

// Package ocr adapts OCR engine output into raw tokens for the redaction
// engine.
//
// This file wraps the Tesseract OCR engine via gosseract. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/obscura/model"
)

// Client wraps Tesseract for OCR operations.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client.
// The client should be closed when no longer needed to release resources.
func New() (*Client, error) {
	client := gosseract.NewClient()
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeTokens performs OCR on image data (PNG, TIFF, JPEG, etc.) and
// returns word-level raw tokens with pixel bounding boxes. Line identity is
// derived from Tesseract's block, paragraph, and line numbering, so tokens
// on the same visual line share a LineID that sorts in reading order.
func (c *Client) RecognizeTokens(imageData []byte) ([]model.RawToken, error) {
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return nil, fmt.Errorf("failed to set image: %w", err)
	}

	boxes, err := c.client.GetBoundingBoxesVerbose()
	if err != nil {
		return nil, fmt.Errorf("OCR failed: %w", err)
	}

	tokens := make([]model.RawToken, 0, len(boxes))
	for _, b := range boxes {
		word := strings.TrimSpace(b.Word)
		if word == "" {
			continue
		}
		tokens = append(tokens, model.RawToken{
			Text:       word,
			Box:        model.FromImageRect(b.Box),
			LineID:     lineKey(b.BlockNum, b.ParNum, b.LineNum),
			Confidence: b.Confidence,
		})
	}

	return tokens, nil
}

// SetLanguage sets the language(s) for OCR recognition.
// Multiple languages can be specified as a "+" separated string (e.g. "eng+fra").
// Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// This affects how Tesseract analyzes the page layout.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}

// lineKey flattens Tesseract's block/paragraph/line numbering into a single
// identifier that sorts in reading order.
func lineKey(block, par, line int) int {
	return (block*1000+par)*1000 + line
}
