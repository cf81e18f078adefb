//go:build ocr

package ocr

import (
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Client is an Engine backed by a gosseract client.
type Client struct {
	client *gosseract.Client
}

// New starts a Tesseract client. Close it when done.
func New() (*Client, error) {
	return &Client{client: gosseract.NewClient()}, nil
}

// NewEngine is the default Factory.
func NewEngine() (Engine, error) {
	c, err := New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Close releases the native client. Later calls are no-ops.
func (c *Client) Close() error {
	if c.client == nil {
		return nil
	}
	err := c.client.Close()
	c.client = nil
	return err
}

// RecognizeImage returns the text in an encoded image, trimmed.
func (c *Client) RecognizeImage(imageData []byte) (string, error) {
	if c.client == nil {
		return "", errClosed
	}
	if err := c.client.SetImageFromBytes(imageData); err != nil {
		return "", fmt.Errorf("loading image: %w", err)
	}

	text, err := c.client.Text()
	if err != nil {
		return "", fmt.Errorf("recognizing text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

// SetLanguage sets a "+"-separated Tesseract language list.
func (c *Client) SetLanguage(lang string) error {
	if c.client == nil {
		return errClosed
	}
	return c.client.SetLanguage(lang)
}
