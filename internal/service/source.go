package service

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexanderramin/timecard/internal/domain"
)

// Source is one input file (or stdin) of a run.
type Source struct {
	Name string
	Kind domain.SourceKind
	Data []byte
	// Err records a read failure; the source then contributes a warning
	// instead of records.
	Err error
}

// ErrUnsupportedSource is returned for files whose extension names no
// supported input kind.
var ErrUnsupportedSource = errors.New("unsupported file type")

var kindByExt = map[string]domain.SourceKind{
	".txt":  domain.SourceText,
	".text": domain.SourceText,
	".png":  domain.SourceImage,
	".jpg":  domain.SourceImage,
	".jpeg": domain.SourceImage,
	".csv":  domain.SourceTable,
}

// KindOf returns the source kind implied by the file extension.
func KindOf(path string) (domain.SourceKind, bool) {
	k, ok := kindByExt[strings.ToLower(filepath.Ext(path))]
	return k, ok
}

// LoadSource reads a file and classifies it by extension. On a read error
// the returned Source still carries the name and kind.
func LoadSource(path string) (Source, error) {
	kind, ok := KindOf(path)
	if !ok {
		return Source{}, fmt.Errorf("%w %q (want .txt, .png, .jpg, .jpeg or .csv)", ErrUnsupportedSource, filepath.Ext(path))
	}
	src := Source{Name: filepath.Base(path), Kind: kind}
	data, err := os.ReadFile(path)
	if err != nil {
		return src, fmt.Errorf("reading %s: %w", path, err)
	}
	src.Data = data
	return src, nil
}

// ReadSource reads transcript text from r, typically stdin.
func ReadSource(name string, r io.Reader) (Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Source{}, fmt.Errorf("reading %s: %w", name, err)
	}
	return Source{Name: name, Kind: domain.SourceText, Data: data}, nil
}

// LoadDir loads every supported file directly inside dir, in name order.
func LoadDir(dir string) ([]Source, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}
	var sources []Source
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := KindOf(e.Name()); !ok {
			continue
		}
		src, err := LoadSource(filepath.Join(dir, e.Name()))
		if err != nil {
			src.Err = err
		}
		sources = append(sources, src)
	}
	return sources, nil
}
