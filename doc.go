// Package epubtoc reads the legacy NCX table of contents of an ePub file
// and prints it as a flat listing.
//
// # Opening a package
//
// Use [Open] to open a file by path, or [NewReader] to read from an [io.ReaderAt]:
//
//	pkg, err := epubtoc.Open("book.epub")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pkg.Close()
//
// # Navigation
//
// [Package.NavMap] looks up the navigation item by manifest id (normally "ncx")
// and parses it into a tree of [NavPoint] entries. [Flatten] walks a tree in
// pre-order:
//
//	points, err := pkg.NavMap("ncx")
//	for _, np := range epubtoc.Flatten(points) {
//	    fmt.Println(np.Title("Untitled"))
//	}
//
// # Printing
//
// An [Extractor] combines the above and writes the listing to an [io.Writer].
// It never returns an error; the [Outcome] reports which case was hit.
//
// # Error Handling
//
// The package defines sentinel errors for common failure cases:
//   - [ErrDRMProtected] – the file is DRM encrypted
//   - [ErrInvalidEPub] – structural validation failed
//   - [ErrFileNotFound] – a requested file is not in the archive
//   - [ErrNavNotFound] – the navigation item is missing or empty
package epubtoc
