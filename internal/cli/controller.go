// Package cli wires the interactive menu that drives a run.
package cli

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simp-lee/epubtoc"
	"github.com/simp-lee/epubtoc/internal/locate"
	"github.com/simp-lee/epubtoc/internal/pathutil"
	"github.com/simp-lee/epubtoc/internal/prompt"
)

// Extractor prints the table of contents of one ePub file.
type Extractor interface {
	Extract(path string) epubtoc.Outcome
}

// Controller runs the two-branch menu: scan the working directory, or ask
// for a directory, then locate an ePub and print its table of contents.
type Controller struct {
	logger    *zap.Logger
	prompter  *prompt.Prompter
	validator *pathutil.Validator
	locator   *locate.Locator
	extractor Extractor
}

// NewController returns a Controller. All collaborators must be non-nil.
func NewController(logger *zap.Logger, p *prompt.Prompter, v *pathutil.Validator, l *locate.Locator, e Extractor) *Controller {
	return &Controller{
		logger:    logger,
		prompter:  p,
		validator: v,
		locator:   l,
		extractor: e,
	}
}

// Run performs one pass through the menu. It returns nil on every
// ordinary ending, including invalid directories, cancelled selections
// and exhausted input.
func (c *Controller) Run() error {
	out := c.prompter.Out()
	fmt.Fprintln(out, "Select an option:")
	fmt.Fprintln(out, "1. Use an .epub file in the current directory")
	fmt.Fprintln(out, "2. Enter a directory path to search for .epub file")

	choice, err := prompt.OneOf(c.prompter, "Enter your choice (1 or 2):",
		"Invalid choice. Please enter 1 or 2.", "1", "2")
	if err != nil {
		return c.inputEnded(err)
	}

	dir := "."
	if choice == "2" {
		raw, err := prompt.NonEmpty(c.prompter, "Enter the directory path of the .epub file:",
			"Error: Directory path cannot be empty. Please enter a valid path.")
		if err != nil {
			return c.inputEnded(err)
		}
		dir = pathutil.Sanitize(raw)
		if !c.validator.Validate(dir) {
			return nil
		}
	}

	res := c.locator.Locate(dir)
	if res.Kind != locate.Found {
		c.logger.Info("No file selected", zap.String("dir", dir), zap.Stringer("result", res.Kind))
		return nil
	}

	outcome := c.extractor.Extract(res.Path)
	c.logger.Info("Extraction finished", zap.String("path", res.Path), zap.Stringer("outcome", outcome))
	return nil
}

func (c *Controller) inputEnded(err error) error {
	if errors.Is(err, prompt.ErrNoInput) {
		c.logger.Warn("Input ended before a choice was made")
		return nil
	}
	return err
}
