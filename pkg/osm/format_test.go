package osm

import (
	"path/filepath"
	"testing"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		path string
		want Format
	}{
		{"map.osm", FormatXML},
		{"map.xml", FormatXML},
		{"map.o5m", FormatO5M},
		{"MAP.O5M", FormatO5M},
	}
	for _, c := range cases {
		got, err := DetectFormat(c.path)
		if err != nil {
			t.Errorf("DetectFormat(%q): %v", c.path, err)
		}
		if got != c.want {
			t.Errorf("DetectFormat(%q) = %v, want %v", c.path, got, c.want)
		}
	}
}

func TestDetectFormatUnsupported(t *testing.T) {
	_, err := DetectFormat("map.geojson")
	if _, ok := err.(*UnsupportedFormatError); !ok {
		t.Fatalf("want UnsupportedFormatError, got %v", err)
	}
}

func TestWriteReadRoundTripXML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.osm")

	m := New()
	m.AddNode(&Node{ID: 1, Coordinate: Coordinate{LatE7: 10, LonE7: 20}})

	if err := Write(path, m); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Nodes[1]; !ok {
		t.Fatal("node 1 missing after XML write/read round trip")
	}
}

func TestWriteReadRoundTripO5M(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.o5m")

	m := New()
	m.AddNode(&Node{ID: 1, Coordinate: Coordinate{LatE7: 10, LonE7: 20}})

	if err := Write(path, m); err != nil {
		t.Fatal(err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := got.Nodes[1]; !ok {
		t.Fatal("node 1 missing after o5m write/read round trip")
	}
}

func TestReadUnsupportedExtension(t *testing.T) {
	_, err := Read("map.geojson")
	if _, ok := err.(*UnsupportedFormatError); !ok {
		t.Fatalf("want UnsupportedFormatError, got %v", err)
	}
}
