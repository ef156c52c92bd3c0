package osm

import "github.com/dhconnelly/rtreego"

// NodeIndex provides fast bounding-box queries over a container's nodes.
// This library's unit of work is always a single Osm document, not a
// directory of extracts to discover and filter, so the index scope is
// one container's nodes rather than a multi-file catalog.
//
// This is pure data access, not geometric analysis: it answers "which
// node ids fall in this box," nothing about area, projection, or
// topology, which remain non-goals.
type NodeIndex struct {
	rtree *rtreego.Rtree
}

// nodeSpatial adapts a node id/coordinate pair to rtreego.Spatial.
type nodeSpatial struct {
	id  int64
	lat int64
	lon int64
}

func (n nodeSpatial) Bounds() rtreego.Rect {
	point := rtreego.Point{float64(n.lon), float64(n.lat)}
	rect, _ := rtreego.NewRect(point, []float64{1, 1})
	return rect
}

// NewNodeIndex builds an index over every node in osm.
func NewNodeIndex(osm *Osm) *NodeIndex {
	tree := rtreego.NewTree(2, 25, 50)
	for _, n := range osm.Nodes {
		tree.Insert(nodeSpatial{id: n.ID, lat: n.Coordinate.LatE7, lon: n.Coordinate.LonE7})
	}
	return &NodeIndex{rtree: tree}
}

// Query returns the ids of every indexed node whose coordinate falls
// within b, inclusive of the edges.
func (idx *NodeIndex) Query(b Bounds) []int64 {
	// Each node occupies a 1x1 cell starting at its coordinate, and
	// rtreego does not count rectangles that merely touch as intersecting,
	// so the search rectangle extends one unit past the max edges to keep
	// nodes lying exactly on them (and zero-width boxes) in the candidates.
	point := rtreego.Point{float64(b.MinLon), float64(b.MinLat)}
	lengths := []float64{float64(b.MaxLon-b.MinLon) + 1, float64(b.MaxLat-b.MinLat) + 1}
	rect, err := rtreego.NewRect(point, lengths)
	if err != nil {
		// An inverted box (max below min) contains nothing; Contains below
		// rejects every candidate of this fallback.
		rect, _ = rtreego.NewRect(point, []float64{1, 1})
	}

	var ids []int64
	for _, spatial := range idx.rtree.SearchIntersect(rect) {
		n := spatial.(nodeSpatial)
		if b.Contains(Coordinate{LatE7: n.lat, LonE7: n.lon}) {
			ids = append(ids, n.id)
		}
	}
	return ids
}
