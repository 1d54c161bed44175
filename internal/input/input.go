// Package input reads the piped error text from standard input.
package input

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// MaxInputBytes bounds how much piped output is kept. Build logs can be
// huge; the failure is almost always at the end.
const MaxInputBytes = 64 * 1024

var (
	// ErrNoInput indicates stdin was empty or whitespace only.
	ErrNoInput = errors.New("no input received")

	// ErrInteractive indicates stdin is a terminal rather than a pipe.
	ErrInteractive = errors.New("stdin is a terminal")
)

// Result is the text read from stdin.
type Result struct {
	Text      string
	Truncated bool // true if leading output was dropped to fit the limit
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Read consumes r to EOF. Whitespace-only input is ErrNoInput. Input longer
// than limit keeps its last limit bytes, starting at a line boundary when
// one exists. A limit <= 0 disables truncation.
func Read(r io.Reader, limit int64) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrNoInput
	}

	res := &Result{}
	if limit > 0 && int64(len(data)) > limit {
		data = data[int64(len(data))-limit:]
		if i := bytes.IndexByte(data, '\n'); i >= 0 && i < len(data)-1 {
			data = data[i+1:]
		}
		res.Truncated = true
	}

	res.Text = strings.ToValidUTF8(string(data), "�")
	return res, nil
}
