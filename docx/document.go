package docx

import "encoding/xml"

// XML namespaces used in DOCX files
const (
	nsW  = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsMC = "http://schemas.openxmlformats.org/markup-compatibility/2006"
)

// Package parts read by the Reader.
const (
	partContentTypes = "[Content_Types].xml"
	partDocument     = "word/document.xml"
	partCore         = "docProps/core.xml"
)

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata).
type corePropertiesXML struct {
	XMLName  xml.Name `xml:"coreProperties"`
	Title    string   `xml:"title"`
	Subject  string   `xml:"subject"`
	Creator  string   `xml:"creator"`
	Keywords string   `xml:"keywords"`
}

// skipped lists WordprocessingML elements whose subtrees carry no document
// text: run and paragraph properties (which contain tab-stop definitions),
// section properties, field instructions, and deleted revisions.
var skipped = map[string]bool{
	"pPr":       true,
	"rPr":       true,
	"sectPr":    true,
	"instrText": true,
	"del":       true,
}
