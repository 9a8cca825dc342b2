// Package locate finds the ePub file to read in a directory, asking the
// user to confirm or choose when needed.
package locate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/simp-lee/epubtoc/internal/prompt"
)

// Kind tells the cases of a Result apart.
type Kind int

const (
	// Found means Result.Path holds the selected file.
	Found Kind = iota
	// NotFound means the directory has no matching files.
	NotFound
	// Cancelled means the user declined the only candidate.
	Cancelled
	// Failed means listing or prompting failed; Result.Err says why.
	Failed
)

func (k Kind) String() string {
	switch k {
	case Found:
		return "found"
	case NotFound:
		return "not found"
	case Cancelled:
		return "cancelled"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Result is the outcome of Locate.
type Result struct {
	Kind Kind
	Path string // absolute path, set when Kind is Found
	Err  error  // set when Kind is Failed
}

// Locator scans a directory for ePub files.
type Locator struct {
	logger    *zap.Logger
	prompter  *prompt.Prompter
	extension string
	readDir   func(string) ([]os.DirEntry, error)
}

// New returns a Locator matching file names that end with extension
// (".epub" when empty).
func New(logger *zap.Logger, p *prompt.Prompter, extension string) *Locator {
	if extension == "" {
		extension = ".epub"
	}
	return &Locator{logger: logger, prompter: p, extension: extension, readDir: os.ReadDir}
}

// Locate lists the immediate entries of dir and returns the ePub file the
// user settles on. A single match must be confirmed; several matches are
// listed and picked by number.
func (l *Locator) Locate(dir string) Result {
	out := l.prompter.Out()

	if dir == "" {
		fmt.Fprintln(out, "Error: No directory specified.")
		return Result{Kind: Failed, Err: errors.New("locate: no directory specified")}
	}

	names, err := l.scan(dir)
	if err != nil {
		switch {
		case errors.Is(err, fs.ErrNotExist):
			fmt.Fprintf(out, "Error: The directory '%s' does not exist.\n", dir)
		case errors.Is(err, fs.ErrPermission):
			fmt.Fprintf(out, "Error: Permission denied for directory '%s'.\n", dir)
		default:
			fmt.Fprintf(out, "Unexpected error accessing directory '%s': %v\n", dir, err)
		}
		l.logger.Error("Cannot list directory", zap.String("dir", dir), zap.Error(err))
		return Result{Kind: Failed, Err: err}
	}

	switch len(names) {
	case 0:
		fmt.Fprintf(out, "No %s files found in the current directory.\n", l.extension)
		l.logger.Info("No ePub files found", zap.String("dir", dir))
		return Result{Kind: NotFound}
	case 1:
		return l.confirm(dir, names[0])
	default:
		return l.choose(dir, names)
	}
}

// scan returns the names of regular entries of dir ending with the
// extension, in directory listing order.
func (l *Locator) scan(dir string) ([]string, error) {
	entries, err := l.readDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), l.extension) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func (l *Locator) confirm(dir, name string) Result {
	out := l.prompter.Out()
	fmt.Fprintf(out, "One %s file found: %s\n", l.extension, name)

	ok, err := prompt.Confirm(l.prompter,
		"Do you want to proceed with this file? (y/n)",
		"Invalid input. Please enter 'y' or 'n'.")
	if err != nil {
		l.logger.Error("Confirmation aborted", zap.Error(err))
		return Result{Kind: Failed, Err: err}
	}
	if !ok {
		fmt.Fprintln(out, "Operation cancelled by user.")
		return Result{Kind: Cancelled}
	}
	return l.found(dir, name)
}

func (l *Locator) choose(dir string, names []string) Result {
	out := l.prompter.Out()
	fmt.Fprintf(out, "Multiple %s files found\n", l.extension)
	for i, name := range names {
		fmt.Fprintf(out, "%d.%s\n", i+1, name)
	}

	idx, err := prompt.Ask(l.prompter, "Enter the number of the file you want to select: ",
		func(answer string) (int, string) {
			n, err := strconv.Atoi(answer)
			if err != nil {
				return 0, "Invalid input. Please enter a valid number."
			}
			if n < 1 || n > len(names) {
				return 0, fmt.Sprintf("Please enter a number between 1 and %d.", len(names))
			}
			return n - 1, ""
		})
	if err != nil {
		l.logger.Error("Selection aborted", zap.Error(err))
		return Result{Kind: Failed, Err: err}
	}
	return l.found(dir, names[idx])
}

func (l *Locator) found(dir, name string) Result {
	p, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		l.logger.Error("Cannot resolve file path", zap.String("name", name), zap.Error(err))
		return Result{Kind: Failed, Err: err}
	}
	l.logger.Info("Selected ePub file", zap.String("path", p))
	return Result{Kind: Found, Path: p}
}
