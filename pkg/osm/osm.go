// Package osm provides a clean public API for reading and writing
// OpenStreetMap data in XML and o5m form, plus a builder facade for
// assembling a map from geometric primitives.
package osm

import "github.com/corbanbrook/osmio/internal/codec"

// Coordinate, Tag, AuthorInformation, Meta, Member, MemberKind, Node, Way,
// Relation, Osm, and Bounds are the shared data model described in
// internal/codec/model.go — aliased here rather than copied, since the
// codec layer and the public facade speak the exact same vocabulary.
// These are plain value types with no encapsulation to add at the public
// boundary, so one definition suffices for both layers.
type (
	Coordinate        = codec.Coordinate
	Tag               = codec.Tag
	AuthorInformation = codec.AuthorInformation
	Meta              = codec.Meta
	MemberKind        = codec.MemberKind
	Member            = codec.Member
	Node              = codec.Node
	Way               = codec.Way
	Relation          = codec.Relation
	Osm               = codec.Osm
	Bounds            = codec.Bounds
)

const (
	MemberNode     = codec.MemberNode
	MemberWay      = codec.MemberWay
	MemberRelation = codec.MemberRelation
)

// NewCoordinate builds a Coordinate from floating-point degrees,
// truncating to nano-degree (10^-7 degree) resolution.
func NewCoordinate(lat, lon float64) Coordinate {
	return codec.NewCoordinate(lat, lon)
}

// New returns an empty Osm container.
func New() *Osm {
	return codec.New()
}
