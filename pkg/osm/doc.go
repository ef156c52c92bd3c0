// Package osm reads, writes, and builds OpenStreetMap data.
//
// Two on-disk formats are supported: OSM XML v0.6 and the compact binary
// o5m format. Read and Write pick the format from the file extension via
// DetectFormat; this package has no reader or writer that takes an
// explicit format.
//
//	m, err := osm.Read("map.o5m")
//	if err != nil {
//		return err
//	}
//	if err := osm.Write("map.xml", m); err != nil {
//		return err
//	}
//
// Builder assembles a container from geometric primitives without the
// caller tracking object ids:
//
//	b := osm.NewBuilder()
//	ring := []osm.CoordinateConvertible{
//		osm.NewCoordinate(0, 0), osm.NewCoordinate(0, 1),
//		osm.NewCoordinate(1, 1), osm.NewCoordinate(0, 0),
//	}
//	wayID, err := b.AddPolygon([][]osm.CoordinateConvertible{ring},
//		osm.Tag{Key: "natural", Value: "water"})
//	m := b.Build()
//
// NodeIndex answers bounding-box queries over a container's nodes, and
// DocumentCache bounds repeated reads of the same path by an LRU count.
// Neither is required for the basic Read/Write/Builder path.
package osm
