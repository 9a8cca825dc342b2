package epubtoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	utf16LEBOM  = []byte{0xFF, 0xFE}
	utf16BEBOM  = []byte{0xFE, 0xFF}
	utf16LEDecl = []byte{'<', 0, '?', 0}
	utf16BEDecl = []byte{0, '<', 0, '?'}
)

// xmlDeclEncoding matches the encoding pseudo-attribute of an XML declaration.
var xmlDeclEncoding = regexp.MustCompile(`^\s*<\?xml[^>]*?\sencoding\s*=\s*["']([A-Za-z0-9._:-]+)["']`)

// decodeXML decodes an ePub XML document into v. UTF-16 input is
// transcoded up front; any other declared encoding is handled by the
// decoder's CharsetReader. HTML named entities resolve to their characters.
func decodeXML(data []byte, v any) error {
	data, err := toUTF8(data)
	if err != nil {
		return err
	}
	d := xml.NewDecoder(bytes.NewReader(data))
	d.CharsetReader = charsetReader
	d.Entity = xml.HTMLEntity
	return d.Decode(v)
}

// toUTF8 transcodes UTF-16 documents to UTF-8 and drops any byte order mark.
// Other input is returned unchanged apart from the UTF-8 BOM.
func toUTF8(data []byte) ([]byte, error) {
	if enc := utf16Encoding(data); enc != nil {
		out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
		if err != nil {
			return nil, fmt.Errorf("epubtoc: decode UTF-16: %w", err)
		}
		data = out
	}
	return stripBOM(data), nil
}

// utf16Encoding returns the UTF-16 variant data is written in, judged by
// its byte order mark or the "<?" opening its XML declaration, or nil.
func utf16Encoding(data []byte) encoding.Encoding {
	switch {
	case bytes.HasPrefix(data, utf16LEBOM), bytes.HasPrefix(data, utf16LEDecl):
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)
	case bytes.HasPrefix(data, utf16BEBOM), bytes.HasPrefix(data, utf16BEDecl):
		return unicode.UTF16(unicode.BigEndian, unicode.UseBOM)
	}
	return nil
}

// charsetReader converts declared non-UTF-8 encodings to UTF-8. A UTF-16
// label reaching the decoder is stale: toUTF8 has already transcoded it.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if isUTF16Label(label) {
		return input, nil
	}
	return charset.NewReaderLabel(label, input)
}

// lenientReader returns data as a UTF-8 stream for the HTML tree builder,
// honouring the encoding named in the XML declaration.
func lenientReader(data []byte) (io.Reader, error) {
	data, err := toUTF8(data)
	if err != nil {
		return nil, err
	}
	contentType := ""
	if label := declaredEncoding(data); label != "" && !isUTF16Label(label) {
		contentType = "text/xml; charset=" + label
	}
	return charset.NewReader(bytes.NewReader(data), contentType)
}

// declaredEncoding returns the encoding named in the XML declaration of
// data, or "".
func declaredEncoding(data []byte) string {
	if len(data) > 1024 {
		data = data[:1024]
	}
	m := xmlDeclEncoding.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}

func isUTF16Label(label string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(label)), "utf-16")
}
