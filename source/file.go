// Package source reads user-selected files.
//
// A File carries the name and MIME type used to route it, plus a way to
// open its content. Files come from disk (Open) or from memory (FromBytes),
// for example when a GUI dialog hands over an already-open stream.
package source

import (
	"bytes"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// sniffLen is the number of bytes inspected when the extension does not
// give a MIME type.
const sniffLen = 512

// ReadError wraps a failure to read a file's content.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// File is a selected file.
type File struct {
	// Name is the base name, used for extension routing.
	Name string

	// MIME is the media type, used for text/ and image/ routing.
	// It may carry parameters such as charset.
	MIME string

	// Size is the content length in bytes, or -1 when unknown.
	Size int64

	open func() (io.ReadCloser, error)
}

// Open stats the file at path and guesses its MIME type, first from the
// extension and then by sniffing the leading bytes. The content is read
// later by ReadAsBytes or ReadAsText.
func Open(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &ReadError{Name: path, Err: err}
	}
	if info.IsDir() {
		return nil, &ReadError{Name: path, Err: fmt.Errorf("is a directory")}
	}

	f := &File{
		Name: filepath.Base(path),
		Size: info.Size(),
		open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}

	f.MIME = typeByExtension(path)
	if f.MIME == "" {
		f.MIME, err = sniff(f)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

// FromBytes wraps in-memory content. An empty mimeType is sniffed from data.
func FromBytes(name, mimeType string, data []byte) *File {
	if mimeType == "" {
		mimeType = typeByExtension(name)
	}
	if mimeType == "" && len(data) > 0 {
		mimeType = http.DetectContentType(data)
	}

	return &File{
		Name: name,
		MIME: mimeType,
		Size: int64(len(data)),
		open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

// ReadAsBytes returns the full content of the file.
func (f *File) ReadAsBytes() ([]byte, error) {
	if f.open == nil {
		return nil, &ReadError{Name: f.Name, Err: fmt.Errorf("file has no content")}
	}

	rc, err := f.open()
	if err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, &ReadError{Name: f.Name, Err: err}
	}
	return data, nil
}

// ReadAsText returns the content decoded to UTF-8. See Decode.
func (f *File) ReadAsText() (string, error) {
	data, err := f.ReadAsBytes()
	if err != nil {
		return "", err
	}

	text, err := Decode(data, f.MIME)
	if err != nil {
		return "", &ReadError{Name: f.Name, Err: err}
	}
	return text, nil
}

// textExtensions covers plain-text files the host mime.types may not list.
var textExtensions = map[string]string{
	".txt":  "text/plain",
	".text": "text/plain",
	".md":   "text/markdown",
	".csv":  "text/csv",
	".tsv":  "text/tab-separated-values",
	".log":  "text/plain",
}

// typeByExtension returns the media type for the extension of name, or ""
// when it is unknown.
func typeByExtension(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return textExtensions[ext]
}

// sniff reads the leading bytes of f and returns the detected content type.
// An empty file has no type.
func sniff(f *File) (string, error) {
	rc, err := f.open()
	if err != nil {
		return "", &ReadError{Name: f.Name, Err: err}
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return "", &ReadError{Name: f.Name, Err: err}
	}
	if n == 0 {
		return "", nil
	}
	return http.DetectContentType(head[:n]), nil
}
