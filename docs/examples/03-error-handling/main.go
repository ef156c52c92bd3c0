package main

import (
	"fmt"
	"log"

	"github.com/corbanbrook/osmio/pkg/osm"
)

func safeRead(path string) (*osm.Osm, error) {
	m, err := osm.Read(path)
	if err != nil {
		switch e := err.(type) {
		case *osm.UnsupportedFormatError:
			return nil, fmt.Errorf("don't know how to read %q: %w", path, e)
		case *osm.IoError:
			return nil, fmt.Errorf("could not open %s: %w", path, e)
		case *osm.BadMagicError:
			return nil, fmt.Errorf("%s is not a valid o5m file: %w", path, e)
		case *osm.XmlSyntaxError:
			return nil, fmt.Errorf("%s has malformed XML at %d:%d: %w", path, e.Line, e.Col, e)
		default:
			return nil, err
		}
	}
	if len(m.Nodes) == 0 {
		log.Printf("warning: %s contains no nodes", path)
	}
	return m, nil
}

func main() {
	m, err := safeRead("map.o5m")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	fmt.Printf("Loaded %d nodes, %d ways, %d relations\n", len(m.Nodes), len(m.Ways), len(m.Relations))

	if _, err := safeRead("missing.o5m"); err != nil {
		log.Printf("expected error: %v", err)
	}
}
