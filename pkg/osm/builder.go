package osm

// CoordinateConvertible is the capability a caller-supplied value must
// satisfy to be usable wherever this package expects a Coordinate. This
// is a conversion contract at the call boundary, not runtime
// polymorphism: Coordinate itself satisfies it trivially, so callers who
// already have Coordinates pay nothing extra.
type CoordinateConvertible interface {
	ToCoordinate() Coordinate
}

// TagConvertible is the equivalent capability for Tag.
type TagConvertible interface {
	ToTag() Tag
}

// idAllocator issues a single monotonic counter across nodes, ways, and
// relations for the lifetime of one Builder.
type idAllocator struct {
	next int64
}

func newIDAllocator() *idAllocator {
	return &idAllocator{next: 1}
}

func (a *idAllocator) nextID() int64 {
	id := a.next
	a.next++
	return id
}

// Builder assembles an Osm container from geometric primitives — points,
// polylines, and polygons with holes — without the caller managing
// object ids itself. A Builder is single-use: create one, call Add*
// methods, then Build.
type Builder struct {
	ids *idAllocator
	osm *Osm
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{ids: newIDAllocator(), osm: New()}
}

// AddPoint adds a single node and returns its id.
func (b *Builder) AddPoint(c CoordinateConvertible, tags ...TagConvertible) int64 {
	id := b.ids.nextID()
	b.osm.AddNode(&Node{
		ID:         id,
		Coordinate: c.ToCoordinate(),
		Meta:       Meta{Tags: convertTags(tags)},
	})
	return id
}

// AddPolyline adds a way following coords, returning its id. coords must
// contain at least two coordinates; a single-coordinate input fails with
// InvalidGeometryError. Each coordinate becomes a fresh node — the
// builder performs no coordinate deduplication.
func (b *Builder) AddPolyline(coords []CoordinateConvertible, tags ...TagConvertible) (int64, error) {
	if len(coords) < 2 {
		return 0, &InvalidGeometryError{Reason: "polyline requires at least two coordinates"}
	}

	refs := b.addRingNodes(coords)
	id := b.ids.nextID()
	b.osm.AddWay(&Way{ID: id, Refs: refs, Meta: Meta{Tags: convertTags(tags)}})
	return id, nil
}

// AddPolygon adds a polygon described by rings — the first ring is the
// outer boundary, any remaining rings are holes — and returns the id of
// the entity that represents it.
//
// A single ring (no holes) is emitted as one tagged way. Two or more
// rings are emitted as one untagged way per ring plus a multipolygon
// relation: the outer ring first with role "outer", then each hole with
// role "inner", tagged with the caller's tags plus the synthetic
// type=multipolygon tag.
//
// Each ring must have at least two coordinates (the builder does not
// auto-close a ring — the caller's first and last coordinate should
// already match).
func (b *Builder) AddPolygon(rings [][]CoordinateConvertible, tags ...TagConvertible) (int64, error) {
	if len(rings) == 0 {
		return 0, &InvalidGeometryError{Reason: "polygon requires at least one ring"}
	}
	for _, ring := range rings {
		if len(ring) < 2 {
			return 0, &InvalidGeometryError{Reason: "ring requires at least two coordinates"}
		}
	}

	wayIDs := make([]int64, len(rings))
	for i, ring := range rings {
		refs := b.addRingNodes(ring)
		wayIDs[i] = b.ids.nextID()
		b.osm.AddWay(&Way{ID: wayIDs[i], Refs: refs})
	}

	if len(rings) == 1 {
		b.osm.Ways[wayIDs[0]].Meta.Tags = convertTags(tags)
		return wayIDs[0], nil
	}

	members := make([]Member, 0, len(wayIDs))
	members = append(members, Member{Kind: MemberWay, Ref: wayIDs[0], Role: "outer"})
	for _, id := range wayIDs[1:] {
		members = append(members, Member{Kind: MemberWay, Ref: id, Role: "inner"})
	}

	relTags := append(convertTags(tags), Tag{Key: "type", Value: "multipolygon"})
	relID := b.ids.nextID()
	b.osm.AddRelation(&Relation{ID: relID, Members: members, Meta: Meta{Tags: relTags}})
	return relID, nil
}

// Build returns the assembled container.
func (b *Builder) Build() *Osm {
	return b.osm
}

func (b *Builder) addRingNodes(coords []CoordinateConvertible) []int64 {
	refs := make([]int64, len(coords))
	for i, c := range coords {
		refs[i] = b.ids.nextID()
		b.osm.AddNode(&Node{ID: refs[i], Coordinate: c.ToCoordinate()})
	}
	return refs
}

func convertTags(tags []TagConvertible) []Tag {
	if len(tags) == 0 {
		return nil
	}
	out := make([]Tag, len(tags))
	for i, t := range tags {
		out[i] = t.ToTag()
	}
	return out
}
