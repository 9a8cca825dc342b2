package epubtoc

import (
	"testing"
)

func TestParseOPF(t *testing.T) {
	pkg, err := parseOPF([]byte(testOPF))
	if err != nil {
		t.Fatalf("parseOPF returned error: %v", err)
	}
	if pkg.Version != "2.0" {
		t.Errorf("Version = %q, want %q", pkg.Version, "2.0")
	}
	if len(pkg.Metadata.Titles) != 1 || pkg.Metadata.Titles[0].Value != "Test Book" {
		t.Errorf("Titles = %+v", pkg.Metadata.Titles)
	}
	if len(pkg.Manifest.Items) != 2 {
		t.Errorf("manifest has %d items, want 2", len(pkg.Manifest.Items))
	}
	if pkg.Spine.Toc != "ncx" {
		t.Errorf("Spine.Toc = %q, want %q", pkg.Spine.Toc, "ncx")
	}
}

func TestParseOPF_Variants(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		wantVersion string
		wantTitle   string
		wantErr     bool
	}{
		{"version default", `<package><metadata/></package>`, "2.0", "", false},
		{"ePub 3", `<package version="3.0"/>`, "3.0", "", false},
		{"BOM", "\xEF\xBB\xBF" + `<package version="2.0"/>`, "2.0", "", false},
		{
			name:        "HTML entities in title",
			data:        `<package xmlns:dc="http://purl.org/dc/elements/1.1/"><metadata><dc:title>Les Mis&eacute;rables</dc:title></metadata></package>`,
			wantVersion: "2.0",
			wantTitle:   "Les Misérables",
		},
		{"invalid XML", `<package><manifest>`, "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, err := parseOPF([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseOPF returned error: %v", err)
			}
			if pkg.Version != tt.wantVersion {
				t.Errorf("Version = %q, want %q", pkg.Version, tt.wantVersion)
			}
			var title string
			if len(pkg.Metadata.Titles) > 0 {
				title = pkg.Metadata.Titles[0].Value
			}
			if title != tt.wantTitle {
				t.Errorf("title = %q, want %q", title, tt.wantTitle)
			}
		})
	}
}

func TestBuildManifestIndex(t *testing.T) {
	idx := buildManifestIndex(opfManifest{Items: []opfManifestItem{
		{ID: "ncx", Href: "toc.ncx", MediaType: "application/x-dtbncx+xml"},
		{ID: "ch1", Href: "ch1.xhtml", MediaType: "application/xhtml+xml"},
		{ID: "ncx", Href: "dup.ncx", MediaType: "application/x-dtbncx+xml"},
	}})

	if len(idx) != 2 {
		t.Fatalf("index has %d entries, want 2", len(idx))
	}
	if got := idx["ncx"].Href; got != "toc.ncx" {
		t.Errorf("ncx Href = %q, want first declaration %q", got, "toc.ncx")
	}
	if got := idx["ch1"].MediaType; got != "application/xhtml+xml" {
		t.Errorf("ch1 MediaType = %q", got)
	}
}
