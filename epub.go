package epubtoc

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// expectedMimetype is the required content of the "mimetype" file in a valid ePub.
const expectedMimetype = "application/epub+zip"

// Package is an opened ePub archive.
// Use Open or NewReader to create a Package instance.
//
// A Package is not safe for concurrent use by multiple goroutines.
type Package struct {
	zip          *zip.Reader
	zipExact     map[string]*zip.File // exact-match ZIP file index
	zipLower     map[string]*zip.File // lowercase ZIP file index
	closer       io.Closer            // non-nil only when created via Open()
	opfPath      string
	opfDir       string
	opf          *opfPackage
	manifestByID map[string]*ManifestItem
	warnings     []string
}

// Open opens an ePub file at the given path.
// The caller must call Close when done reading from the package.
func Open(path string) (*Package, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("epubtoc: open %s: %w", path, err)
	}

	p, err := initPackage(&zrc.Reader, zrc)
	if err != nil {
		zrc.Close()
		return nil, err
	}
	return p, nil
}

// NewReader creates a Package from an io.ReaderAt with the given size.
// The caller is responsible for the lifetime of r; Close only cleans
// up internal state.
func NewReader(r io.ReaderAt, size int64) (*Package, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("epubtoc: open zip: %w", err)
	}

	return initPackage(zr, nil)
}

// initPackage performs common initialisation: mimetype validation, container
// parsing, DRM detection and OPF parsing.
func initPackage(zr *zip.Reader, closer io.Closer) (*Package, error) {
	p := &Package{
		zip:    zr,
		closer: closer,
	}

	p.buildZipIndex()
	p.validateMimetype()

	opfPath, err := parseContainer(zr)
	if err != nil {
		return nil, err
	}
	p.opfPath = opfPath
	p.opfDir = path.Dir(opfPath)

	fontObfuscation, err := checkDRM(zr)
	if err != nil {
		return nil, err
	}
	if fontObfuscation {
		p.warnings = append(p.warnings, "font obfuscation detected")
	}

	opfFile := p.findFile(opfPath)
	if opfFile == nil {
		return nil, fmt.Errorf("epubtoc: OPF file not found in archive: %s: %w", opfPath, ErrInvalidEPub)
	}
	opfData, err := readZipFile(opfFile)
	if err != nil {
		return nil, fmt.Errorf("epubtoc: read OPF file: %w", err)
	}

	pkg, err := parseOPF(opfData)
	if err != nil {
		return nil, err
	}
	p.opf = pkg
	p.manifestByID = buildManifestIndex(pkg.Manifest)

	return p, nil
}

// validateMimetype checks that the first ZIP entry is named "mimetype" and
// contains "application/epub+zip". Deviations are recorded as warnings.
func (p *Package) validateMimetype() {
	if len(p.zip.File) == 0 {
		p.warnings = append(p.warnings, "empty ZIP archive; mimetype entry missing")
		return
	}

	first := p.zip.File[0]
	if first.Name != "mimetype" {
		p.warnings = append(p.warnings, "first ZIP entry is not \"mimetype\"")
		return
	}

	data, err := readZipFile(first)
	if err != nil {
		p.warnings = append(p.warnings, fmt.Sprintf("cannot read mimetype entry: %v", err))
		return
	}

	if string(data) != expectedMimetype {
		p.warnings = append(p.warnings, fmt.Sprintf("unexpected mimetype: %q", string(data)))
	}
}

// Close releases resources held by the Package. When the Package was created
// via Open, Close closes the underlying file. Close is idempotent.
func (p *Package) Close() error {
	if p.closer != nil {
		err := p.closer.Close()
		p.closer = nil
		return err
	}
	return nil
}

// Version returns the OPF package version (e.g., "2.0").
func (p *Package) Version() string {
	return p.opf.Version
}

// Title returns the first non-empty dc:title, or "".
func (p *Package) Title() string {
	for _, t := range p.opf.Metadata.Titles {
		if v := strings.TrimSpace(t.Value); v != "" {
			return v
		}
	}
	return ""
}

// SpineTOC returns the manifest id the spine's toc attribute points at,
// or "" when the attribute is absent.
func (p *Package) SpineTOC() string {
	return p.opf.Spine.Toc
}

// Warnings returns the list of non-fatal warnings accumulated during parsing.
func (p *Package) Warnings() []string {
	return append([]string(nil), p.warnings...)
}

// ItemByID returns the manifest item with the given id.
func (p *Package) ItemByID(id string) (ManifestItem, bool) {
	mi, ok := p.manifestByID[id]
	if !ok {
		return ManifestItem{}, false
	}
	return *mi, true
}

// ReadItem reads the content of a manifest item. The item href is resolved
// relative to the OPF directory.
func (p *Package) ReadItem(item ManifestItem) ([]byte, error) {
	return p.ReadFile(p.resolveOPFPath(item.Href))
}

// ReadFile reads a file from the ePub archive by its ZIP-internal path.
// The lookup is case-insensitive as a fallback.
func (p *Package) ReadFile(name string) ([]byte, error) {
	f := p.findFile(name)
	if f == nil {
		return nil, ErrFileNotFound
	}
	return readZipFile(f)
}

// NavMap reads the navigation item with the given manifest id and returns
// its top-level navPoints. It returns ErrNavNotFound when the item is
// missing from the manifest or the archive, or has no content.
func (p *Package) NavMap(id string) ([]NavPoint, error) {
	item, ok := p.ItemByID(id)
	if !ok {
		return nil, fmt.Errorf("epubtoc: no manifest item %q: %w", id, ErrNavNotFound)
	}

	ncxPath := p.resolveOPFPath(item.Href)
	data, err := p.ReadItem(item)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return nil, fmt.Errorf("epubtoc: %s: %w", ncxPath, ErrNavNotFound)
		}
		return nil, err
	}
	if text, err := toUTF8(data); err == nil && len(strings.TrimSpace(string(text))) == 0 {
		return nil, fmt.Errorf("epubtoc: %s is empty: %w", ncxPath, ErrNavNotFound)
	}

	points, err := parseNCX(data, ncxPath)
	if err != nil {
		// Fall back to a tolerant tree parse, the way a recovering XML
		// parser would, so a single bad entity does not hide the TOC.
		p.warnings = append(p.warnings, fmt.Sprintf("NCX is not well-formed, parsed leniently: %v", err))
		return parseNCXLenient(data, ncxPath)
	}
	return points, nil
}

// buildZipIndex builds exact-match and lowercase ZIP file indexes for O(1) lookups.
func (p *Package) buildZipIndex() {
	p.zipExact = make(map[string]*zip.File, len(p.zip.File))
	p.zipLower = make(map[string]*zip.File, len(p.zip.File))
	for _, f := range p.zip.File {
		if _, exists := p.zipExact[f.Name]; !exists {
			p.zipExact[f.Name] = f // first match wins for exact
		}
		lower := strings.ToLower(f.Name)
		if _, exists := p.zipLower[lower]; !exists {
			p.zipLower[lower] = f // first match wins for case-insensitive
		}
	}
}

// findFile looks up a ZIP entry by path using the pre-built index.
// It tries an exact match first, then falls back to a case-insensitive match.
func (p *Package) findFile(name string) *zip.File {
	if f, ok := p.zipExact[name]; ok {
		return f
	}
	if f, ok := p.zipLower[strings.ToLower(name)]; ok {
		return f
	}
	return nil
}

// resolveOPFPath resolves a path relative to the OPF directory.
// If href is empty, returns empty. If opfDir is ".", returns href as-is.
func (p *Package) resolveOPFPath(href string) string {
	if href == "" {
		return ""
	}
	if p.opfDir == "." {
		return href
	}
	return path.Join(p.opfDir, href)
}
