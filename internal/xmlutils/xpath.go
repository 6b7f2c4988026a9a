package xmlutils

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// CharsetReader decodes documents that declare a non-UTF-8 encoding, such as
// the ISO-8859-1 files Promob writes.
func CharsetReader(label string, input io.Reader) (io.Reader, error) {
	return charset.NewReaderLabel(label, input)
}

// NewDecoder returns a strict decoder that understands declared encodings.
func NewDecoder(r io.Reader) *xml.Decoder {
	d := xml.NewDecoder(r)
	d.CharsetReader = CharsetReader
	return d
}

// ParseXML parses raw XML into an xmlpath root node. Documents must carry
// exactly one root element.
func ParseXML(raw []byte) (*xmlpath.Node, error) {
	if err := checkSingleRoot(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root, err := xmlpath.ParseDecoder(NewDecoder(bytes.NewReader(raw)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// ReadDocument parses raw XML into an etree document.
func ReadDocument(raw []byte) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = CharsetReader
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	if n := len(doc.ChildElements()); n != 1 {
		return nil, fmt.Errorf("failed to parse XML: expected one root element, found %d", n)
	}
	return doc, nil
}

// checkSingleRoot scans raw and fails unless it holds exactly one top-level
// element.
func checkSingleRoot(raw []byte) error {
	d := NewDecoder(bytes.NewReader(raw))
	depth, roots := 0, 0
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				roots++
			}
			depth++
		case xml.EndElement:
			depth--
		}
	}
	if roots != 1 {
		return fmt.Errorf("expected one root element, found %d", roots)
	}
	return nil
}

// SelectNodes returns every node matched by xpath, in document order.
func SelectNodes(root *xmlpath.Node, xpath string) ([]*xmlpath.Node, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath: %w", err)
	}

	var nodes []*xmlpath.Node
	iter := path.Iter(root)
	for iter.Next() {
		nodes = append(nodes, iter.Node())
	}
	return nodes, nil
}

// FieldText returns the cleaned text of the first child element named field
// under node, falling back to an attribute of the same name. Missing fields
// yield "".
func FieldText(node *xmlpath.Node, field string) string {
	for _, expr := range []string{field, "@" + field} {
		path, err := xmlpath.Compile(expr)
		if err != nil {
			continue
		}
		if v, ok := path.String(node); ok {
			if v = CleanText(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// CleanText collapses whitespace runs (including newlines and tabs) to a
// single space and trims the result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
