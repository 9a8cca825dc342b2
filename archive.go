package epubtoc

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// maxEntrySize caps the decompressed size of a single ZIP entry (zip bomb guard).
const maxEntrySize int64 = 256 * 1024 * 1024

// containerPath is the well-known location of container.xml in an ePub archive.
const containerPath = "META-INF/container.xml"

// opfMediaType marks the package document among container rootfiles.
const opfMediaType = "application/oebps-package+xml"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// containerXML models META-INF/container.xml.
type containerXML struct {
	XMLName   xml.Name `xml:"container"`
	RootFiles []struct {
		FullPath  string `xml:"full-path,attr"`
		MediaType string `xml:"media-type,attr"`
	} `xml:"rootfiles>rootfile"`
}

// lookupEntry finds a ZIP entry by exact name, then case-insensitively.
func lookupEntry(zr *zip.Reader, name string) *zip.File {
	var folded *zip.File
	for _, f := range zr.File {
		if f.Name == name {
			return f
		}
		if folded == nil && strings.EqualFold(f.Name, name) {
			folded = f
		}
	}
	return folded
}

// parseContainer returns the ZIP-internal path of the OPF file. Without a
// container.xml it settles for the first ".opf" entry in the archive.
func parseContainer(zr *zip.Reader) (string, error) {
	f := lookupEntry(zr, containerPath)
	if f == nil {
		for _, e := range zr.File {
			if strings.HasSuffix(strings.ToLower(e.Name), ".opf") {
				return e.Name, nil
			}
		}
		return "", fmt.Errorf("epubtoc: no OPF file found in archive: %w", ErrInvalidEPub)
	}

	data, err := readZipFile(f)
	if err != nil {
		return "", fmt.Errorf("epubtoc: read container.xml: %w", err)
	}
	var c containerXML
	if err := decodeXML(data, &c); err != nil {
		return "", fmt.Errorf("epubtoc: parse container.xml: %w", err)
	}

	// Prefer the rootfile declared as a package document; otherwise the
	// first one with a path.
	first := ""
	for _, rf := range c.RootFiles {
		p := strings.TrimSpace(rf.FullPath)
		if p == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), opfMediaType) {
			return p, nil
		}
		if first == "" {
			first = p
		}
	}
	if first == "" {
		return "", fmt.Errorf("epubtoc: container.xml names no rootfile: %w", ErrInvalidEPub)
	}
	return first, nil
}

// readZipFile reads a whole ZIP entry, refusing unsafe names and entries
// larger than maxEntrySize.
func readZipFile(f *zip.File) ([]byte, error) {
	return readZipFileLimit(f, maxEntrySize)
}

func readZipFileLimit(f *zip.File, limit int64) ([]byte, error) {
	if !isSafePath(f.Name) {
		return nil, fmt.Errorf("epubtoc: unsafe zip entry path: %s", f.Name)
	}
	if f.UncompressedSize64 > uint64(limit) {
		return nil, fmt.Errorf("epubtoc: zip entry %s too large: %d bytes (max %d)", f.Name, f.UncompressedSize64, limit)
	}

	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("epubtoc: open zip entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	// The declared size may lie; read one byte past the limit to notice.
	data, err := io.ReadAll(io.LimitReader(rc, limit+1))
	if err != nil {
		return nil, fmt.Errorf("epubtoc: read zip entry %s: %w", f.Name, err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("epubtoc: zip entry %s exceeds limit (%d bytes)", f.Name, limit)
	}
	return data, nil
}

// resolveRelativePath resolves href against the directory of basePath.
// Both are forward-slash ZIP paths. Absolute hrefs and results that climb
// out of the archive root yield "".
func resolveRelativePath(basePath, href string) string {
	href = strings.TrimSpace(href)
	if strings.HasPrefix(href, "/") {
		return ""
	}
	if decoded, err := url.PathUnescape(href); err == nil {
		href = decoded
	}
	resolved := path.Join(path.Dir(basePath), href)
	if !isSafePath(resolved) {
		return ""
	}
	return resolved
}

// isSafePath reports whether p stays inside the archive root.
func isSafePath(p string) bool {
	p = path.Clean(p)
	return !strings.HasPrefix(p, "/") && p != ".." && !strings.HasPrefix(p, "../")
}

// stripBOM drops a leading UTF-8 byte order mark.
func stripBOM(data []byte) []byte {
	return bytes.TrimPrefix(data, utf8BOM)
}
