package codec

import (
	"io"
	"sort"
	"strconv"
)

// O5MWriter encodes an Osm container as an o5m byte stream. A writer
// instance owns its own string table and delta accumulators; nothing is
// shared across writer instances or goroutines.
type O5MWriter struct {
	w     io.Writer
	table *StringTable
	delta o5mDelta
}

// NewO5MWriter creates a writer over w.
func NewO5MWriter(w io.Writer) *O5MWriter {
	return &O5MWriter{w: w, table: NewStringTable()}
}

// Write emits osm in full: magic, header, optional bounding box, nodes,
// ways, relations, then the end marker. A single call never needs more
// than the initial reset marker since it encodes exactly one logical
// dataset.
func (w *O5MWriter) Write(osm *Osm) error {
	w.table.Reset()
	w.delta.reset()
	if err := w.writeByte(byte(markerReset)); err != nil {
		return err
	}
	if err := w.writeRecord(markerHeader, []byte(o5mHeaderBody)); err != nil {
		return err
	}
	if osm.Bounds != nil {
		var body []byte
		body = AppendSigned(body, osm.Bounds.MinLon)
		body = AppendSigned(body, osm.Bounds.MinLat)
		body = AppendSigned(body, osm.Bounds.MaxLon)
		body = AppendSigned(body, osm.Bounds.MaxLat)
		if err := w.writeRecord(markerBBox, body); err != nil {
			return err
		}
	}

	for _, id := range sortedKeys(osm.Nodes) {
		if err := w.writeNode(osm.Nodes[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(osm.Ways) {
		if err := w.writeWay(osm.Ways[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(osm.Relations) {
		if err := w.writeRelation(osm.Relations[id]); err != nil {
			return err
		}
	}

	return w.writeByte(byte(markerEOF))
}

func sortedKeys[T any](m map[int64]*T) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

func (w *O5MWriter) writeByte(b byte) error {
	_, err := w.w.Write([]byte{b})
	if err != nil {
		return &IoError{Op: "write", Err: err}
	}
	return nil
}

func (w *O5MWriter) writeRecord(marker o5mMarker, body []byte) error {
	var framed []byte
	framed = append(framed, byte(marker))
	framed = AppendUnsigned(framed, uint64(len(body)))
	framed = append(framed, body...)
	if _, err := w.w.Write(framed); err != nil {
		return &IoError{Op: "write", Err: err}
	}
	return nil
}

func (w *O5MWriter) writeNode(n *Node) error {
	var body []byte
	body = AppendSigned(body, n.ID-w.delta.nodeID)
	w.delta.nodeID = n.ID

	body = w.appendAuthor(body, n.Meta)

	body = AppendSigned(body, n.Coordinate.LonE7-w.delta.nodeLon)
	w.delta.nodeLon = n.Coordinate.LonE7
	body = AppendSigned(body, n.Coordinate.LatE7-w.delta.nodeLat)
	w.delta.nodeLat = n.Coordinate.LatE7

	body = w.appendTags(body, n.Meta.Tags)
	return w.writeRecord(markerNode, body)
}

func (w *O5MWriter) writeWay(way *Way) error {
	var body []byte
	body = AppendSigned(body, way.ID-w.delta.wayID)
	w.delta.wayID = way.ID

	body = w.appendAuthor(body, way.Meta)

	var refs []byte
	for _, ref := range way.Refs {
		refs = AppendSigned(refs, ref-w.delta.wayRef)
		w.delta.wayRef = ref
	}
	body = AppendUnsigned(body, uint64(len(refs)))
	body = append(body, refs...)

	body = w.appendTags(body, way.Meta.Tags)
	return w.writeRecord(markerWay, body)
}

func (w *O5MWriter) writeRelation(rel *Relation) error {
	var body []byte
	body = AppendSigned(body, rel.ID-w.delta.relationID)
	w.delta.relationID = rel.ID

	body = w.appendAuthor(body, rel.Meta)

	var members []byte
	for _, m := range rel.Members {
		acc := w.memberAccumulator(m.Kind)
		members = AppendSigned(members, m.Ref-*acc)
		*acc = m.Ref
		members = w.appendSingle(members, string(memberKindDigit(m.Kind))+m.Role)
	}
	body = AppendUnsigned(body, uint64(len(members)))
	body = append(body, members...)

	body = w.appendTags(body, rel.Meta.Tags)
	return w.writeRecord(markerRelation, body)
}

func (w *O5MWriter) memberAccumulator(kind MemberKind) *int64 {
	switch kind {
	case MemberWay:
		return &w.delta.relRefWay
	case MemberRelation:
		return &w.delta.relRefRelation
	default:
		return &w.delta.relRefNode
	}
}

func memberKindDigit(kind MemberKind) byte {
	switch kind {
	case MemberWay:
		return '1'
	case MemberRelation:
		return '2'
	default:
		return '0'
	}
}

func (w *O5MWriter) appendAuthor(body []byte, m Meta) []byte {
	version := 0
	if m.Version != nil {
		version = *m.Version
	}
	body = AppendUnsigned(body, uint64(version))
	if version == 0 {
		return body
	}

	var created, changeset, uid int64
	var user string
	if m.Author != nil {
		created = m.Author.Created
		changeset = m.Author.ChangeSet
		uid = m.Author.Uid
		user = m.Author.User
	}

	body = AppendSigned(body, created-w.delta.timestamp)
	w.delta.timestamp = created
	body = AppendSigned(body, changeset-w.delta.changeset)
	w.delta.changeset = changeset

	return w.appendPair(body, strconv.FormatInt(uid, 10), user)
}

func (w *O5MWriter) appendTags(body []byte, tags []Tag) []byte {
	for _, t := range tags {
		body = w.appendPair(body, t.Key, t.Value)
	}
	return body
}

// appendPair emits a string-table reference for (key, value), inserting
// the inline literal first if the pair is new or too long to intern.
func (w *O5MWriter) appendPair(body []byte, key, value string) []byte {
	pair := PairKey(key, value)
	if ref, ok := w.table.FindRef(pair); ok {
		return AppendUnsigned(body, uint64(ref))
	}
	body = AppendUnsigned(body, 0)
	body = append(body, key...)
	body = append(body, 0)
	body = append(body, value...)
	body = append(body, 0)
	if Eligible(pair) {
		w.table.Insert(pair)
	}
	return body
}

// appendSingle emits a string-table reference for a single-string slot
// (used for the role field of a relation member).
func (w *O5MWriter) appendSingle(body []byte, s string) []byte {
	key := SingleKey(s)
	if ref, ok := w.table.FindRef(key); ok {
		return AppendUnsigned(body, uint64(ref))
	}
	body = AppendUnsigned(body, 0)
	body = append(body, s...)
	body = append(body, 0)
	if Eligible(key) {
		w.table.Insert(key)
	}
	return body
}
