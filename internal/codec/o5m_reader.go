package codec

import (
	"io"
	"strconv"
	"strings"
)

// ReadO5M decodes a complete o5m stream into an Osm container. The whole
// stream is read into memory first, matching this library's "reader
// materializes the entire document" contract (streaming incremental
// reads are a non-goal).
func ReadO5M(r io.Reader) (*Osm, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &IoError{Op: "read", Err: err}
	}
	return DecodeO5M(data)
}

// DecodeO5M decodes an in-memory o5m byte slice into an Osm container.
func DecodeO5M(data []byte) (*Osm, error) {
	if len(data) == 0 || data[0] != byte(markerReset) {
		got := byte(0)
		if len(data) > 0 {
			got = data[0]
		}
		return nil, &BadMagicError{Got: got}
	}

	osm := New()
	table := NewStringTable()
	var delta o5mDelta

	pos := 0
	for pos < len(data) {
		marker := data[pos]
		pos++

		switch o5mMarker(marker) {
		case markerReset:
			table.Reset()
			delta.reset()
			continue
		case markerEOF:
			return osm, nil
		}

		body, next, err := readFramedBody(data, pos)
		if err != nil {
			return nil, err
		}
		pos = next

		switch o5mMarker(marker) {
		case markerNode:
			if err := decodeNode(body, osm, table, &delta); err != nil {
				return nil, err
			}
		case markerWay:
			if err := decodeWay(body, osm, table, &delta); err != nil {
				return nil, err
			}
		case markerRelation:
			if err := decodeRelation(body, osm, table, &delta); err != nil {
				return nil, err
			}
		case markerBBox:
			b, err := decodeBBox(body)
			if err != nil {
				return nil, err
			}
			osm.Bounds = b
		case markerTimestamp, markerHeader:
			// not modeled in the data model; body already consumed above.
		default:
			// reserved/unrecognized marker: framing guarantees a length
			// prefix for everything but markerReset/markerEOF, so this is
			// always safely skippable.
		}
	}

	return osm, nil
}

// readFramedBody reads the unsigned-LEB128 body length at pos and returns
// the body slice plus the offset just past it.
func readFramedBody(data []byte, pos int) ([]byte, int, error) {
	length, next, err := ReadUnsigned(data, pos)
	if err != nil {
		return nil, pos, err
	}
	end := next + int(length)
	if end > len(data) {
		return nil, pos, &TruncatedRecordError{Want: int(length), Got: len(data) - next}
	}
	return data[next:end], end, nil
}

func decodeBBox(body []byte) (*Bounds, error) {
	minLon, pos, err := ReadSigned(body, 0)
	if err != nil {
		return nil, err
	}
	minLat, pos, err := ReadSigned(body, pos)
	if err != nil {
		return nil, err
	}
	maxLon, pos, err := ReadSigned(body, pos)
	if err != nil {
		return nil, err
	}
	maxLat, _, err := ReadSigned(body, pos)
	if err != nil {
		return nil, err
	}
	return &Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
}

func decodeNode(body []byte, osm *Osm, table *StringTable, delta *o5mDelta) error {
	idDelta, pos, err := ReadSigned(body, 0)
	if err != nil {
		return err
	}
	delta.nodeID += idDelta

	version, author, pos, err := decodeAuthor(body, pos, table, delta)
	if err != nil {
		return err
	}

	node := &Node{ID: delta.nodeID}
	if version > 0 {
		v := version
		node.Meta.Version = &v
	}
	node.Meta.Author = author

	if pos >= len(body) {
		// No coordinate section: treat as a tombstone and omit from the
		// container. This library's Osm model has no delete/diff entity,
		// since applying o5m change-files is out of scope.
		return nil
	}

	lonDelta, pos, err := ReadSigned(body, pos)
	if err != nil {
		return err
	}
	delta.nodeLon += lonDelta
	latDelta, pos, err := ReadSigned(body, pos)
	if err != nil {
		return err
	}
	delta.nodeLat += latDelta
	node.Coordinate = Coordinate{LatE7: delta.nodeLat, LonE7: delta.nodeLon}

	tags, _, err := decodeTags(body, pos, table)
	if err != nil {
		return err
	}
	node.Meta.Tags = tags

	osm.AddNode(node)
	return nil
}

func decodeWay(body []byte, osm *Osm, table *StringTable, delta *o5mDelta) error {
	idDelta, pos, err := ReadSigned(body, 0)
	if err != nil {
		return err
	}
	delta.wayID += idDelta

	version, author, pos, err := decodeAuthor(body, pos, table, delta)
	if err != nil {
		return err
	}

	refsLen, pos, err := ReadUnsigned(body, pos)
	if err != nil {
		return err
	}
	refsEnd := pos + int(refsLen)
	if refsEnd > len(body) {
		return &TruncatedRecordError{Want: int(refsLen), Got: len(body) - pos}
	}

	var refs []int64
	for pos < refsEnd {
		d, next, err := ReadSigned(body, pos)
		if err != nil {
			return err
		}
		pos = next
		delta.wayRef += d
		refs = append(refs, delta.wayRef)
	}
	pos = refsEnd

	tags, _, err := decodeTags(body, pos, table)
	if err != nil {
		return err
	}

	way := &Way{ID: delta.wayID, Refs: refs}
	if version > 0 {
		v := version
		way.Meta.Version = &v
	}
	way.Meta.Author = author
	way.Meta.Tags = tags

	osm.AddWay(way)
	return nil
}

func decodeRelation(body []byte, osm *Osm, table *StringTable, delta *o5mDelta) error {
	idDelta, pos, err := ReadSigned(body, 0)
	if err != nil {
		return err
	}
	delta.relationID += idDelta

	version, author, pos, err := decodeAuthor(body, pos, table, delta)
	if err != nil {
		return err
	}

	membersLen, pos, err := ReadUnsigned(body, pos)
	if err != nil {
		return err
	}
	membersEnd := pos + int(membersLen)
	if membersEnd > len(body) {
		return &TruncatedRecordError{Want: int(membersLen), Got: len(body) - pos}
	}

	var members []Member
	for pos < membersEnd {
		m, next, err := decodeMember(body, pos, table, delta)
		if err != nil {
			return err
		}
		pos = next
		members = append(members, m)
	}
	pos = membersEnd

	tags, _, err := decodeTags(body, pos, table)
	if err != nil {
		return err
	}

	rel := &Relation{ID: delta.relationID, Members: members}
	if version > 0 {
		v := version
		rel.Meta.Version = &v
	}
	rel.Meta.Author = author
	rel.Meta.Tags = tags

	osm.AddRelation(rel)
	return nil
}

func decodeMember(body []byte, pos int, table *StringTable, delta *o5mDelta) (Member, int, error) {
	rawDelta, pos, err := ReadSigned(body, pos)
	if err != nil {
		return Member{}, pos, err
	}

	roleStr, pos, err := decodeStringSingle(body, pos, table)
	if err != nil {
		return Member{}, pos, err
	}
	if len(roleStr) == 0 {
		return Member{}, pos, &BadAttributeValueError{Name: "member_kind", Value: ""}
	}

	var kind MemberKind
	var acc *int64
	switch roleStr[0] {
	case '0':
		kind, acc = MemberNode, &delta.relRefNode
	case '1':
		kind, acc = MemberWay, &delta.relRefWay
	case '2':
		kind, acc = MemberRelation, &delta.relRefRelation
	default:
		return Member{}, pos, &BadAttributeValueError{Name: "member_kind", Value: roleStr[:1]}
	}

	*acc += rawDelta
	return Member{Kind: kind, Ref: *acc, Role: roleStr[1:]}, pos, nil
}

// decodeAuthor reads the version varint and, if non-zero, the rest of the
// author block. Returns the raw version (0 meaning absent).
func decodeAuthor(body []byte, pos int, table *StringTable, delta *o5mDelta) (int, *AuthorInformation, int, error) {
	version, pos, err := ReadUnsigned(body, pos)
	if err != nil {
		return 0, nil, pos, err
	}
	if version == 0 {
		return 0, nil, pos, nil
	}

	tsDelta, pos, err := ReadSigned(body, pos)
	if err != nil {
		return 0, nil, pos, err
	}
	delta.timestamp += tsDelta

	csDelta, pos, err := ReadSigned(body, pos)
	if err != nil {
		return 0, nil, pos, err
	}
	delta.changeset += csDelta

	uidStr, user, pos, err := decodeStringPair(body, pos, table)
	if err != nil {
		return 0, nil, pos, err
	}
	uid, _ := strconv.ParseInt(uidStr, 10, 64)

	return int(version), &AuthorInformation{
		Created:   delta.timestamp,
		ChangeSet: delta.changeset,
		Uid:       uid,
		User:      user,
	}, pos, nil
}

func decodeTags(body []byte, pos int, table *StringTable) ([]Tag, int, error) {
	var tags []Tag
	for pos < len(body) {
		key, value, next, err := decodeStringPair(body, pos, table)
		if err != nil {
			return nil, pos, err
		}
		pos = next
		tags = append(tags, Tag{Key: key, Value: value})
	}
	return tags, pos, nil
}

func decodeStringPair(body []byte, pos int, table *StringTable) (string, string, int, error) {
	ref, pos, err := ReadUnsigned(body, pos)
	if err != nil {
		return "", "", pos, err
	}
	if ref == 0 {
		key, pos, err := readCString(body, pos)
		if err != nil {
			return "", "", pos, err
		}
		value, pos, err := readCString(body, pos)
		if err != nil {
			return "", "", pos, err
		}
		pair := PairKey(key, value)
		if Eligible(pair) {
			table.Insert(pair)
		}
		return key, value, pos, nil
	}

	stored, err := table.Lookup(int(ref))
	if err != nil {
		return "", "", pos, err
	}
	key, value := splitPair(stored)
	return key, value, pos, nil
}

func decodeStringSingle(body []byte, pos int, table *StringTable) (string, int, error) {
	ref, pos, err := ReadUnsigned(body, pos)
	if err != nil {
		return "", pos, err
	}
	if ref == 0 {
		s, pos, err := readCString(body, pos)
		if err != nil {
			return "", pos, err
		}
		key := SingleKey(s)
		if Eligible(key) {
			table.Insert(key)
		}
		return s, pos, nil
	}

	stored, err := table.Lookup(int(ref))
	if err != nil {
		return "", pos, err
	}
	return strings.TrimSuffix(stored, "\x00"), pos, nil
}

// splitPair reverses PairKey's "key\0value\0" stored form.
func splitPair(pair string) (string, string) {
	i := strings.IndexByte(pair, 0)
	if i < 0 {
		return pair, ""
	}
	rest := pair[i+1:]
	j := strings.IndexByte(rest, 0)
	if j < 0 {
		return pair[:i], rest
	}
	return pair[:i], rest[:j]
}

func readCString(body []byte, pos int) (string, int, error) {
	start := pos
	for pos < len(body) && body[pos] != 0 {
		pos++
	}
	if pos >= len(body) {
		return "", pos, &TruncatedRecordError{Want: 1, Got: 0}
	}
	return string(body[start:pos]), pos + 1, nil
}
