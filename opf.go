package epubtoc

import (
	"encoding/xml"
	"fmt"
)

// opfPackage represents the root <package> element of an OPF file.
// Only the parts needed to locate the navigation document are decoded.
type opfPackage struct {
	XMLName  xml.Name    `xml:"package"`
	Version  string      `xml:"version,attr"`
	Metadata opfMetadata `xml:"metadata"`
	Manifest opfManifest `xml:"manifest"`
	Spine    opfSpine    `xml:"spine"`
}

// opfMetadata holds the raw metadata elements from the OPF file.
type opfMetadata struct {
	Titles []opfDCElement `xml:"http://purl.org/dc/elements/1.1/ title"`
}

// opfDCElement holds a Dublin Core element value.
type opfDCElement struct {
	Value string `xml:",chardata"`
}

// opfManifest wraps the <manifest> element.
type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

// opfManifestItem represents a single <item> in the manifest.
type opfManifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// opfSpine wraps the <spine> element. Toc names the NCX manifest item.
type opfSpine struct {
	Toc string `xml:"toc,attr"`
}

// parseOPF parses the OPF file content and returns the parsed package structure.
func parseOPF(data []byte) (*opfPackage, error) {
	var pkg opfPackage
	if err := decodeXML(data, &pkg); err != nil {
		return nil, fmt.Errorf("epubtoc: parse OPF: %w", err)
	}

	if pkg.Version == "" {
		// Default to 2.0 if version attribute is missing.
		pkg.Version = "2.0"
	}

	return &pkg, nil
}

// buildManifestIndex creates a lookup map keyed by manifest item id.
// The first item wins when ids repeat.
func buildManifestIndex(manifest opfManifest) map[string]*ManifestItem {
	byID := make(map[string]*ManifestItem, len(manifest.Items))
	for _, item := range manifest.Items {
		if _, exists := byID[item.ID]; exists {
			continue
		}
		byID[item.ID] = &ManifestItem{
			ID:        item.ID,
			Href:      item.Href,
			MediaType: item.MediaType,
		}
	}
	return byID
}
