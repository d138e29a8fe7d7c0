// Package source loads quiz markup from disk.
package source

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ErrBinary is returned for files that do not look like text.
var ErrBinary = errors.New("not a text file")

// File is a decoded markup source.
type File struct {
	Path    string
	Text    string
	ModTime time.Time
	Size    int64
}

// Lines splits the text on newlines. A trailing carriage return is left for
// the parser to drop.
func (f File) Lines() []string {
	if f.Text == "" {
		return nil
	}
	return strings.Split(f.Text, "\n")
}

// Stamp identifies the on-disk revision that produced f.
func (f File) Stamp() Stamp {
	return Stamp{ModTime: f.ModTime, Size: f.Size}
}

// Stamp is the cheap change detector used by watch mode.
type Stamp struct {
	ModTime time.Time
	Size    int64
}

func (s Stamp) Equal(o Stamp) bool {
	return s.Size == o.Size && s.ModTime.Equal(o.ModTime)
}

// StatStamp reads the current stamp of path without loading it.
func StatStamp(path string) (Stamp, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Stamp{}, err
	}
	return Stamp{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Stdin is the path that reads standard input.
const Stdin = "-"

// Load reads path, rejects binary content, decodes it and composes it to NFC.
func Load(path string) (File, error) {
	if path == Stdin {
		return Read(Stdin, os.Stdin)
	}
	info, err := os.Stat(path)
	if err != nil {
		return File{}, fmt.Errorf("load markup: %w", err)
	}
	if info.IsDir() {
		return File{}, fmt.Errorf("load markup %s: is a directory", path)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("load markup: %w", err)
	}
	f, err := FromBytes(path, content)
	if err != nil {
		return File{}, err
	}
	f.ModTime = info.ModTime()
	f.Size = info.Size()
	return f, nil
}

// Read loads markup from r; name is used in errors only.
func Read(name string, r io.Reader) (File, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("read markup %s: %w", name, err)
	}
	return FromBytes(name, content)
}

func FromBytes(name string, content []byte) (File, error) {
	if !IsText(content) {
		return File{}, fmt.Errorf("load markup %s: %w", name, ErrBinary)
	}
	text, err := Decode(content)
	if err != nil {
		return File{}, fmt.Errorf("decode markup %s: %w", name, err)
	}
	return File{Path: name, Text: norm.NFC.String(text), Size: int64(len(content))}, nil
}
