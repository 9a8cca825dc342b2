package epubtoc

import (
	"encoding/xml"
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// --- NCX XML decoding structs ---

// ncxDocument represents the root <ncx> element of an NCX file.
type ncxDocument struct {
	XMLName xml.Name  `xml:"ncx"`
	NavMap  ncxNavMap `xml:"navMap"`
}

// ncxNavMap represents the <navMap> element containing top-level navPoints.
type ncxNavMap struct {
	NavPoints []ncxNavPoint `xml:"navPoint"`
}

// ncxNavPoint represents a <navPoint> element which may contain nested navPoints.
type ncxNavPoint struct {
	ID       string        `xml:"id,attr"`
	Labels   []ncxNavLabel `xml:"navLabel"`
	Content  ncxContent    `xml:"content"`
	Children []ncxNavPoint `xml:"navPoint"`
}

// ncxNavLabel represents the <navLabel> element containing the display text.
type ncxNavLabel struct {
	Text []string `xml:"text"`
}

// ncxContent represents the <content> element with its src attribute.
type ncxContent struct {
	Src string `xml:"src,attr"`
}

// parseNCX decodes NCX data and returns the top-level navPoints of its navMap.
// ncxPath is the ZIP-internal path to the NCX file (e.g., "OEBPS/toc.ncx"),
// used to resolve relative content sources to ZIP root-relative paths.
func parseNCX(data []byte, ncxPath string) ([]NavPoint, error) {
	var doc ncxDocument
	if err := decodeXML(data, &doc); err != nil {
		return nil, fmt.Errorf("epubtoc: parse NCX: %w", err)
	}

	return convertNavPoints(doc.NavMap.NavPoints, ncxPath), nil
}

// convertNavPoints recursively converts ncxNavPoint elements into NavPoint entries.
func convertNavPoints(points []ncxNavPoint, ncxPath string) []NavPoint {
	if len(points) == 0 {
		return nil
	}

	out := make([]NavPoint, 0, len(points))
	for _, np := range points {
		item := NavPoint{
			ID:    np.ID,
			Label: firstLabel(np.Labels),
			Src:   resolveSrc(ncxPath, np.Content.Src),
		}
		item.Children = convertNavPoints(np.Children, ncxPath)
		out = append(out, item)
	}
	return out
}

// firstLabel returns the trimmed text of the first <text> element across
// the navLabels of a navPoint.
func firstLabel(labels []ncxNavLabel) string {
	for _, l := range labels {
		if len(l.Text) > 0 {
			return strings.TrimSpace(l.Text[0])
		}
	}
	return ""
}

// resolveSrc resolves a content src relative to the NCX file location.
// An empty or unsafe src yields "".
func resolveSrc(ncxPath, src string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}
	return resolveRelativePath(ncxPath, src)
}

// parseNCXLenient builds the navPoint tree from NCX data that encoding/xml
// rejected. The HTML tree builder never fails on bad markup; element names
// come back lowercased.
func parseNCXLenient(data []byte, ncxPath string) ([]NavPoint, error) {
	r, err := lenientReader(data)
	if err != nil {
		return nil, fmt.Errorf("epubtoc: parse NCX: %w", err)
	}
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("epubtoc: parse NCX: %w", err)
	}

	root := doc
	if navMap := findElement(doc, "navmap"); navMap != nil {
		root = navMap
	}
	return collectNavPoints(root, ncxPath), nil
}

// collectNavPoints returns the navpoint elements below n that have no
// navpoint ancestor between them and n. Non-navpoint wrappers are
// descended through, since the HTML tree builder does not honour
// self-closing tags like <content/> and may nest siblings inside them.
func collectNavPoints(n *html.Node, ncxPath string) []NavPoint {
	var out []NavPoint
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		if c.Data != "navpoint" {
			out = append(out, collectNavPoints(c, ncxPath)...)
			continue
		}
		np := NavPoint{
			ID:       getAttr(c, "id"),
			Label:    lenientLabel(c),
			Children: collectNavPoints(c, ncxPath),
		}
		if content := findOwnElement(c, "content"); content != nil {
			np.Src = resolveSrc(ncxPath, getAttr(content, "src"))
		}
		out = append(out, np)
	}
	return out
}

// lenientLabel returns the text of the first <text> inside the navpoint's
// own navlabel.
func lenientLabel(np *html.Node) string {
	label := findOwnElement(np, "navlabel")
	if label == nil {
		return ""
	}
	text := findElement(label, "text")
	if text == nil {
		return ""
	}
	return strings.TrimSpace(nodeTextContent(text))
}

// findOwnElement performs a depth-first search for the first descendant
// element with the given tag that does not belong to a nested navpoint.
func findOwnElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data == "navpoint" {
			continue
		}
		if c.Data == tag {
			return c
		}
		if found := findOwnElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// findElement performs a depth-first search for the first descendant
// element with the given tag name.
func findElement(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == tag {
			return c
		}
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

// getAttr returns the value of the attribute with the given key on n.
func getAttr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// nodeTextContent recursively collects all text content within a node.
func nodeTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(nodeTextContent(c))
	}
	return sb.String()
}
