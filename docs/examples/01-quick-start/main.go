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

	fmt.Printf("Nodes: %d\n", len(m.Nodes))
	fmt.Printf("Ways: %d\n", len(m.Ways))
	fmt.Printf("Relations: %d\n", len(m.Relations))

	if m.Bounds != nil {
		fmt.Printf("Bounds: [%.7f,%.7f] to [%.7f,%.7f]\n",
			float64(m.Bounds.MinLon)/1e7, float64(m.Bounds.MinLat)/1e7,
			float64(m.Bounds.MaxLon)/1e7, float64(m.Bounds.MaxLat)/1e7)
	}
}
