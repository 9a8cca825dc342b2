package epubtoc

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// Defaults used when the corresponding ExtractorOptions field is empty.
const (
	DefaultNavID    = "ncx"
	DefaultUntitled = "Untitled"
)

// Outcome reports which case an extraction ended in.
type Outcome int

const (
	// Printed means the table of contents was written out.
	Printed Outcome = iota
	// NotFound means the package has no (or an empty) navigation item.
	NotFound
	// Empty means the navigation item holds no navPoints.
	Empty
	// Failed means the package could not be opened or read.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Printed:
		return "printed"
	case NotFound:
		return "not found"
	case Empty:
		return "empty"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// NavID is the manifest id of the navigation item. Defaults to "ncx".
	NavID string

	// Untitled is printed for navPoints without a label. Defaults to "Untitled".
	Untitled string
}

// Extractor prints the flattened table of contents of ePub files.
type Extractor struct {
	logger   *zap.Logger
	out      io.Writer
	navID    string
	untitled string
}

// NewExtractor returns an Extractor that writes listings to out and
// records outcomes on logger.
func NewExtractor(logger *zap.Logger, out io.Writer, opts ExtractorOptions) *Extractor {
	if opts.NavID == "" {
		opts.NavID = DefaultNavID
	}
	if opts.Untitled == "" {
		opts.Untitled = DefaultUntitled
	}
	return &Extractor{
		logger:   logger,
		out:      out,
		navID:    opts.NavID,
		untitled: opts.Untitled,
	}
}

// Extract opens the ePub at path and prints its table of contents.
//
// Each top-level navPoint is printed, followed by every navPoint nested
// under it at any depth in pre-order. All lines share one indentation.
// Errors are printed and logged, never returned; the package is closed
// before Extract returns.
func (e *Extractor) Extract(path string) Outcome {
	pkg, err := Open(path)
	if err != nil {
		e.logger.Error("Error reading file", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(e.out, "Error reading file: %v\n", err)
		return Failed
	}
	defer pkg.Close()

	points, err := pkg.NavMap(e.navID)
	for _, w := range pkg.Warnings() {
		e.logger.Warn("ePub warning", zap.String("path", path), zap.String("warning", w))
	}
	if err != nil {
		if errors.Is(err, ErrNavNotFound) {
			fmt.Fprintln(e.out, "Table of Contents not found.")
			fields := []zap.Field{zap.String("path", path), zap.String("nav_id", e.navID)}
			if toc := pkg.SpineTOC(); toc != "" && toc != e.navID {
				fields = append(fields, zap.String("spine_toc", toc))
			}
			e.logger.Warn("No TOC found in the file", fields...)
			return NotFound
		}
		e.logger.Error("Error reading file", zap.String("path", path), zap.Error(err))
		fmt.Fprintf(e.out, "Error reading file: %v\n", err)
		return Failed
	}

	if len(points) == 0 {
		fmt.Fprintln(e.out, "No entries found in the Table of Contents.")
		e.logger.Info("TOC has no entries", zap.String("path", path))
		return Empty
	}

	fmt.Fprintln(e.out, "Table of Contents:")
	for _, np := range points {
		e.printEntry(np)
		for _, sub := range np.Descendants() {
			e.printEntry(sub)
		}
	}

	e.logger.Info("Successfully extracted TOC",
		zap.String("path", path),
		zap.String("title", pkg.Title()),
		zap.Int("entries", Count(points)),
	)
	return Printed
}

func (e *Extractor) printEntry(np NavPoint) {
	fmt.Fprintf(e.out, " - %s\n", np.Title(e.untitled))
}
