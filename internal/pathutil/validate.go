package pathutil

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Validator checks directory paths, printing the reason for a rejection
// to out and logging it.
type Validator struct {
	logger *zap.Logger
	out    io.Writer

	stat     func(string) (os.FileInfo, error)
	readable func(string) error
}

// NewValidator returns a Validator.
func NewValidator(logger *zap.Logger, out io.Writer) *Validator {
	return &Validator{
		logger:   logger,
		out:      out,
		stat:     os.Stat,
		readable: checkReadable,
	}
}

// Validate reports whether path names an existing directory the process
// can read. Any failure to tell counts as invalid.
func (v *Validator) Validate(path string) bool {
	if path == "" {
		v.logger.Error("No directory path provided.")
		fmt.Fprintln(v.out, "Error: No directory path provided.")
		return false
	}

	info, err := v.stat(path)
	if err != nil || !info.IsDir() {
		fields := []zap.Field{zap.String("path", path)}
		if err != nil {
			fields = append(fields, zap.Error(err))
		}
		v.logger.Error("Provided path is not a directory", fields...)
		fmt.Fprintln(v.out, "Error: The path is not to a valid directory.")
		return false
	}

	if err := v.readable(path); err != nil {
		v.logger.Error("Access denied for directory", zap.String("path", path), zap.Error(err))
		fmt.Fprintln(v.out, "Error: You do not have permission to access this directory.")
		return false
	}

	return true
}

// checkReadable opens the directory and reads one entry.
func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.Readdirnames(1); err != nil && err != io.EOF {
		return err
	}
	return nil
}
