// Package docx extracts raw text from DOCX (Office Open XML) documents.
//
// Only the text layer is read: every paragraph of word/document.xml,
// including paragraphs inside tables and text boxes, in document order.
// Styles, numbering and layout are ignored.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Reader provides access to DOCX document content.
type Reader struct {
	zipReader  *zip.Reader
	coreProps  *corePropertiesXML
	paragraphs []string
}

// Metadata holds the document properties found in docProps/core.xml.
type Metadata struct {
	Title    string
	Author   string
	Subject  string
	Keywords []string
}

// OpenBytes parses a DOCX document held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r := &Reader{
		zipReader: zr,
	}

	// Validate required files exist
	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	// Metadata is optional
	r.parseCoreProperties()

	return r, nil
}

// validate checks that required DOCX files exist.
func (r *Reader) validate() error {
	for _, name := range []string{partContentTypes, partDocument} {
		if r.getFile(name) == nil {
			return fmt.Errorf("missing required file: %s", name)
		}
	}
	return nil
}

// getFile returns a zip.File by name.
func (r *Reader) getFile(name string) *zip.File {
	for _, f := range r.zipReader.File {
		if f.Name == name {
			return f
		}
	}
	return nil
}

// Text returns the raw text: each paragraph followed by a blank line.
func (r *Reader) Text() string {
	var result strings.Builder
	for _, para := range r.paragraphs {
		result.WriteString(para)
		result.WriteString("\n\n")
	}
	return result.String()
}

// Metadata returns document metadata.
func (r *Reader) Metadata() Metadata {
	meta := Metadata{}
	if r.coreProps == nil {
		return meta
	}

	meta.Title = r.coreProps.Title
	meta.Author = r.coreProps.Creator
	meta.Subject = r.coreProps.Subject
	if r.coreProps.Keywords != "" {
		for _, kw := range strings.Split(r.coreProps.Keywords, ",") {
			meta.Keywords = append(meta.Keywords, strings.TrimSpace(kw))
		}
	}
	return meta
}

// parseDocument streams word/document.xml and collects paragraph text.
func (r *Reader) parseDocument() error {
	rc, err := r.getFile(partDocument).Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	paragraphs, err := readParagraphs(rc)
	if err != nil {
		return fmt.Errorf("reading %s: %w", partDocument, err)
	}
	r.paragraphs = paragraphs
	return nil
}

// readParagraphs walks a WordprocessingML body. Paragraphs nested in text
// boxes are emitted before the paragraph that anchors them.
func readParagraphs(rd io.Reader) ([]string, error) {
	dec := xml.NewDecoder(rd)

	var (
		paragraphs []string
		stack      []*strings.Builder
		inText     bool
	)

	write := func(s string) {
		if len(stack) > 0 {
			stack[len(stack)-1].WriteString(s)
		}
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			// Fallback repeats the content of the preferred Choice.
			if t.Name.Space == nsMC && t.Name.Local == "Fallback" {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}
			if t.Name.Space != nsW {
				continue
			}
			if skipped[t.Name.Local] {
				if err := dec.Skip(); err != nil {
					return nil, err
				}
				continue
			}

			switch t.Name.Local {
			case "p":
				stack = append(stack, &strings.Builder{})
			case "t":
				inText = true
			case "tab":
				write("\t")
			case "br", "cr":
				write("\n")
			case "noBreakHyphen":
				write("-")
			}

		case xml.EndElement:
			if t.Name.Space != nsW {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				if len(stack) == 0 {
					continue
				}
				paragraphs = append(paragraphs, stack[len(stack)-1].String())
				stack = stack[:len(stack)-1]
			}

		case xml.CharData:
			if inText {
				write(string(t))
			}
		}
	}

	return paragraphs, nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	f := r.getFile(partCore)
	if f == nil {
		return
	}
	rc, err := f.Open()
	if err != nil {
		return
	}
	defer rc.Close()

	props := &corePropertiesXML{}
	if err := xml.NewDecoder(rc).Decode(props); err != nil {
		return
	}
	r.coreProps = props
}
