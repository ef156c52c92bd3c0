package main

import (
	"fmt"
	"log"

	"github.com/corbanbrook/osmio/pkg/osm"
)

func main() {
	m, err := osm.Read("map.o5m")
	if err != nil {
		log.Fatal(err)
	}

	// Boston Harbor, roughly.
	viewport := osm.Bounds{
		MinLat: 42_3000000, MaxLat: 42_4000000,
		MinLon: -71_1000000, MaxLon: -71_0000000,
	}

	idx := osm.NewNodeIndex(m)
	ids := idx.Query(viewport)

	fmt.Printf("Nodes in viewport: %d\n", len(ids))
	for _, id := range ids {
		n := m.Nodes[id]
		fmt.Printf("  node %d at (%.7f, %.7f)\n", n.ID, n.Coordinate.Lat(), n.Coordinate.Lon())
	}
}
