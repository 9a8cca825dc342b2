package epubtoc

// NavPoint is one entry of the NCX navigation tree.
type NavPoint struct {
	// ID is the navPoint id attribute.
	ID string

	// Label is the text of the entry's navLabel. Empty when the NCX has
	// no <text> for this entry.
	Label string

	// Src is the content reference resolved to a ZIP-internal path
	// (may include a fragment, e.g., "OEBPS/chapter01.xhtml#section2").
	Src string

	// Children contains the navPoints nested under this entry.
	Children []NavPoint
}

// Title returns the label, or placeholder when the label is absent.
func (np NavPoint) Title(placeholder string) string {
	if np.Label == "" {
		return placeholder
	}
	return np.Label
}

// ManifestItem is an entry in the OPF <manifest> element.
type ManifestItem struct {
	// ID is the unique identifier of this manifest item.
	ID string

	// Href is the file path relative to the OPF file location.
	Href string

	// MediaType is the MIME type of the resource.
	MediaType string
}
