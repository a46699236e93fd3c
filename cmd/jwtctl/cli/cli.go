// Package cli implements the jwtctl commands
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/boddle/jwtplay/internal/token"
)

// Cli provides CLI context to run commands
type Cli struct {
	// stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// errOutput is the destination for errors.
	// If not set, errors will be written to os.Stderr
	errOutput io.Writer
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for command output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for notices and errors, kept apart from the
// JSON written to Writer
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// WriteValue prints v as indented JSON, keeping member order
func (c *Cli) WriteValue(v token.Value) error {
	s, err := v.Indent("  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(c.Writer(), s)
	return err
}

// WriteJSON prints any JSON-marshalable value, indented
func (c *Cli) WriteJSON(value interface{}) error {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = fmt.Fprintln(c.Writer(), string(b))
	return err
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		return io.ReadAll(c.Reader())
	}
	return os.ReadFile(filename)
}

// readDocument returns the inline JSON, or the contents of file when inline is empty
func (c *Cli) readDocument(name, inline, file string) (token.Value, error) {
	var data []byte
	switch {
	case inline != "" && file != "":
		return token.Value{}, fmt.Errorf("--%s and --%s-file are mutually exclusive", name, name)
	case inline != "":
		data = []byte(inline)
	case file != "":
		b, err := c.ReadFile(file)
		if err != nil {
			return token.Value{}, fmt.Errorf("unable to read %s file: %w", name, err)
		}
		data = b
	default:
		return token.Value{}, fmt.Errorf("--%s or --%s-file is required", name, name)
	}

	v, err := token.ParseJSON(data)
	if err != nil {
		return token.Value{}, fmt.Errorf("invalid %s JSON: %w", name, err)
	}
	return v, nil
}
