//go:build !ocr

package ocr

// Client stands in for the Tesseract engine in builds without the "ocr"
// tag. It cannot be created.
type Client struct{}

// New always fails with ErrOCRNotEnabled.
func New() (*Client, error) {
	return nil, ErrOCRNotEnabled
}

// NewEngine always fails with ErrOCRNotEnabled.
func NewEngine() (Engine, error) {
	return nil, ErrOCRNotEnabled
}

// Close does nothing. It is safe on a nil *Client.
func (c *Client) Close() error {
	return nil
}

// RecognizeImage fails with ErrOCRNotEnabled.
func (c *Client) RecognizeImage([]byte) (string, error) {
	return "", ErrOCRNotEnabled
}

// SetLanguage fails with ErrOCRNotEnabled.
func (c *Client) SetLanguage(string) error {
	return ErrOCRNotEnabled
}
