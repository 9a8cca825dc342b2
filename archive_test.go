package epubtoc

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestParseContainer(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    string
		wantErr error
	}{
		{
			name:  "normal",
			files: map[string]string{"META-INF/container.xml": testContainerXML},
			want:  "OEBPS/content.opf",
		},
		{
			name:  "case insensitive container path",
			files: map[string]string{"meta-inf/Container.XML": testContainerXML},
			want:  "OEBPS/content.opf",
		},
		{
			name:  "BOM",
			files: map[string]string{"META-INF/container.xml": "\xEF\xBB\xBF" + testContainerXML},
			want:  "OEBPS/content.opf",
		},
		{
			name: "prefers package media type",
			files: map[string]string{"META-INF/container.xml": `<container><rootfiles>
<rootfile full-path="other.xml" media-type="text/xml"/>
<rootfile full-path="book.opf" media-type="application/oebps-package+xml"/>
</rootfiles></container>`},
			want: "book.opf",
		},
		{
			name: "first rootfile without media type",
			files: map[string]string{"META-INF/container.xml": `<container><rootfiles>
<rootfile full-path=" "/><rootfile full-path="a.opf"/>
</rootfiles></container>`},
			want: "a.opf",
		},
		{
			name:    "no rootfiles",
			files:   map[string]string{"META-INF/container.xml": `<container><rootfiles/></container>`},
			wantErr: ErrInvalidEPub,
		},
		{
			name:  "fallback to opf scan",
			files: map[string]string{"OEBPS/Book.OPF": "<package/>"},
			want:  "OEBPS/Book.OPF",
		},
		{
			name:    "nothing to find",
			files:   map[string]string{"readme.txt": "x"},
			wantErr: ErrInvalidEPub,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseContainer(buildTestZip(t, tt.files))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseContainer = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLookupEntry_PrefersExactMatch(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"file.txt": "lower",
		"File.txt": "exact",
	})
	if got := lookupEntry(zr, "File.txt"); got == nil || got.Name != "File.txt" {
		t.Errorf("lookupEntry returned %v, want File.txt", got)
	}
	if got := lookupEntry(zr, "FILE.TXT"); got == nil {
		t.Error("lookupEntry returned nil for case-insensitive match")
	}
	if got := lookupEntry(zr, "missing"); got != nil {
		t.Errorf("lookupEntry(missing) = %q, want nil", got.Name)
	}
}

func TestResolveRelativePath(t *testing.T) {
	tests := []struct {
		basePath string
		href     string
		want     string
	}{
		{"OEBPS/toc.ncx", "ch1.xhtml", "OEBPS/ch1.xhtml"},
		{"OEBPS/toc.ncx", "ch1.xhtml#s2", "OEBPS/ch1.xhtml#s2"},
		{"OEBPS/toc.ncx", "../text/ch1.xhtml", "text/ch1.xhtml"},
		{"OEBPS/toc.ncx", "Text/Chapter%201.xhtml", "OEBPS/Text/Chapter 1.xhtml"},
		{"toc.ncx", "./ch1.xhtml", "ch1.xhtml"},
		{"OEBPS/toc.ncx", "../../secret", ""},
		{"OEBPS/toc.ncx", "/etc/passwd", ""},
	}
	for _, tt := range tests {
		if got := resolveRelativePath(tt.basePath, tt.href); got != tt.want {
			t.Errorf("resolveRelativePath(%q, %q) = %q, want %q", tt.basePath, tt.href, got, tt.want)
		}
	}
}

func TestIsSafePath(t *testing.T) {
	tests := map[string]bool{
		"OEBPS/content.opf": true,
		"mimetype":          true,
		".":                 true,
		"..":                false,
		"../etc/passwd":     false,
		"a/../../etc":       false,
		"/etc/passwd":       false,
	}
	for p, want := range tests {
		if got := isSafePath(p); got != want {
			t.Errorf("isSafePath(%q) = %v, want %v", p, got, want)
		}
	}
}

func TestStripBOM(t *testing.T) {
	tests := []struct {
		in, want []byte
	}{
		{[]byte("\xEF\xBB\xBFhello"), []byte("hello")},
		{[]byte("hello"), []byte("hello")},
		{[]byte("\xEF\xBB"), []byte("\xEF\xBB")},
		{[]byte("a\xEF\xBB\xBF"), []byte("a\xEF\xBB\xBF")},
		{[]byte{}, []byte{}},
	}
	for _, tt := range tests {
		if got := stripBOM(tt.in); !bytes.Equal(got, tt.want) {
			t.Errorf("stripBOM(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestReadZipFileLimit(t *testing.T) {
	zr := buildTestZip(t, map[string]string{
		"small.txt": "hello",
		"big.txt":   strings.Repeat("A", 200),
	})

	data, err := readZipFileLimit(lookupEntry(zr, "small.txt"), 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "hello" {
		t.Errorf("data = %q, want %q", data, "hello")
	}

	if _, err := readZipFileLimit(lookupEntry(zr, "big.txt"), 100); err == nil {
		t.Fatal("expected error for oversized entry")
	}
}
