package osm

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/corbanbrook/osmio/internal/codec"
)

// UnsupportedFormatError indicates a file extension isn't recognized by
// the format dispatcher.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("osmio: unsupported format extension %q", e.Ext)
}

// Format identifies which on-disk representation a path maps to.
type Format int

const (
	FormatXML Format = iota
	FormatO5M
)

// DetectFormat sniffs a file extension and returns the format it maps to:
// ".osm" and ".xml" select XML, ".o5m" selects o5m. Any other extension
// fails with UnsupportedFormatError.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".osm", ".xml":
		return FormatXML, nil
	case ".o5m":
		return FormatO5M, nil
	default:
		return 0, &UnsupportedFormatError{Ext: filepath.Ext(path)}
	}
}

// Read opens path, dispatches to the XML or o5m reader based on its
// extension, and returns the decoded container.
func Read(path string) (*Osm, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, &codec.IoError{Op: "open", Err: err}
	}
	defer f.Close()

	switch format {
	case FormatO5M:
		return codec.ReadO5M(f)
	default:
		return codec.ReadXML(f)
	}
}

// Write dispatches to the XML or o5m writer based on path's extension and
// writes osm to it, truncating any existing file.
func Write(path string, osm *Osm) error {
	format, err := DetectFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return &codec.IoError{Op: "create", Err: err}
	}
	defer f.Close()

	switch format {
	case FormatO5M:
		return codec.NewO5MWriter(f).Write(osm)
	default:
		return codec.WriteXML(f, osm)
	}
}
