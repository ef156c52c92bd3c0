package codec

// o5mDelta is the flat bag of signed running totals the o5m codec keeps
// per field, all zero at file start and reset atomically on every 0xff
// dataset-reset marker. Kept as a plain struct rather than hidden inside
// package-level state so a reader or writer instance never leaks deltas
// across documents.
type o5mDelta struct {
	nodeID, nodeLat, nodeLon int64
	wayID, wayRef            int64
	relationID                int64
	relRefNode                int64
	relRefWay                 int64
	relRefRelation            int64
	changeset, timestamp      int64
}

func (d *o5mDelta) reset() { *d = o5mDelta{} }

// o5mMarker enumerates the single-byte record markers framing an o5m file.
type o5mMarker byte

const (
	markerReset     o5mMarker = 0xff // file start magic / dataset reset
	markerEOF       o5mMarker = 0xfe
	markerNode      o5mMarker = 0x10
	markerWay       o5mMarker = 0x11
	markerRelation  o5mMarker = 0x12
	markerBBox      o5mMarker = 0xdb
	markerTimestamp o5mMarker = 0xdc
	markerHeader    o5mMarker = 0xe0
)

const o5mHeaderBody = "o5m2"
