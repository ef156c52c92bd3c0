package codec

import (
	"encoding/xml"
	"io"
	"math"
	"strconv"
	"time"
)

// ReadXML decodes an OSM XML v0.6 document into an Osm container using a
// streaming token loop over encoding/xml.Decoder. Root and entity elements
// may appear in any order; unknown elements at any level are skipped with
// their subtree balanced.
func ReadXML(r io.Reader) (*Osm, error) {
	dec := xml.NewDecoder(r)
	osm := New()

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, syntaxErr(dec, err.Error())
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch start.Name.Local {
		case "osm":
			// root element; attributes are informational only.
		case "bounds":
			b, err := parseBounds(start)
			if err != nil {
				return nil, err
			}
			osm.Bounds = b
			if err := skipToEnd(dec, start.Name); err != nil {
				return nil, err
			}
		case "node":
			n, err := parseNode(dec, start)
			if err != nil {
				return nil, err
			}
			osm.AddNode(n)
		case "way":
			w, err := parseWay(dec, start)
			if err != nil {
				return nil, err
			}
			osm.AddWay(w)
		case "relation":
			rel, err := parseRelation(dec, start)
			if err != nil {
				return nil, err
			}
			osm.AddRelation(rel)
		default:
			if err := skipToEnd(dec, start.Name); err != nil {
				return nil, err
			}
		}
	}

	return osm, nil
}

func syntaxErr(dec *xml.Decoder, msg string) *XmlSyntaxError {
	line, col := dec.InputPos()
	return &XmlSyntaxError{Line: line, Col: col, Msg: msg}
}

// skipToEnd consumes tokens until the matching end tag for name, balancing
// any nested elements so unknown content never desynchronizes the parser.
func skipToEnd(dec *xml.Decoder, name xml.Name) error {
	depth := 1
	for depth > 0 {
		tok, err := dec.Token()
		if err != nil {
			return syntaxErr(dec, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == name.Local {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == name.Local {
				depth--
			}
		}
	}
	return nil
}

func attr(start xml.StartElement, name string) (string, bool) {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func requireAttr(start xml.StartElement, name string) (string, error) {
	v, ok := attr(start, name)
	if !ok {
		return "", &MissingAttributeError{Name: name}
	}
	return v, nil
}

func parseInt64Attr(start xml.StartElement, name string) (int64, error) {
	v, err := requireAttr(start, name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, &BadAttributeValueError{Name: name, Value: v}
	}
	return n, nil
}

func parseDegreesAttr(start xml.StartElement, name string) (int64, error) {
	v, err := requireAttr(start, name)
	if err != nil {
		return 0, err
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &BadAttributeValueError{Name: name, Value: v}
	}
	return int64(math.Round(f * 1e7)), nil
}

func parseBounds(start xml.StartElement) (*Bounds, error) {
	minLat, err := parseDegreesAttr(start, "minlat")
	if err != nil {
		return nil, err
	}
	minLon, err := parseDegreesAttr(start, "minlon")
	if err != nil {
		return nil, err
	}
	maxLat, err := parseDegreesAttr(start, "maxlat")
	if err != nil {
		return nil, err
	}
	maxLon, err := parseDegreesAttr(start, "maxlon")
	if err != nil {
		return nil, err
	}
	return &Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
}

// parseMeta reads the optional version/timestamp/changeset/uid/user
// attributes shared by node, way, and relation elements.
func parseMeta(start xml.StartElement) (Meta, error) {
	var m Meta

	if v, ok := attr(start, "version"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return m, &BadAttributeValueError{Name: "version", Value: v}
		}
		m.Version = &n
	}

	ts, hasTs := attr(start, "timestamp")
	if !hasTs {
		return m, nil
	}
	t, err := time.Parse("2006-01-02T15:04:05Z", ts)
	if err != nil {
		return m, &BadAttributeValueError{Name: "timestamp", Value: ts}
	}
	changeset, err := parseInt64Attr(start, "changeset")
	if err != nil {
		return m, err
	}
	uid, err := parseInt64Attr(start, "uid")
	if err != nil {
		return m, err
	}
	user, err := requireAttr(start, "user")
	if err != nil {
		return m, err
	}

	m.Author = &AuthorInformation{
		Created:   t.Unix(),
		ChangeSet: changeset,
		Uid:       uid,
		User:      user,
	}
	return m, nil
}

func parseNode(dec *xml.Decoder, start xml.StartElement) (*Node, error) {
	id, err := parseInt64Attr(start, "id")
	if err != nil {
		return nil, err
	}
	lat, err := parseDegreesAttr(start, "lat")
	if err != nil {
		return nil, err
	}
	lon, err := parseDegreesAttr(start, "lon")
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(start)
	if err != nil {
		return nil, err
	}

	n := &Node{ID: id, Coordinate: Coordinate{LatE7: lat, LonE7: lon}, Meta: meta}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxErr(dec, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == "tag" {
				tag, err := parseTag(t)
				if err != nil {
					return nil, err
				}
				n.Meta.Tags = append(n.Meta.Tags, tag)
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			} else if err := skipToEnd(dec, t.Name); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return n, nil
			}
		}
	}
}

func parseWay(dec *xml.Decoder, start xml.StartElement) (*Way, error) {
	id, err := parseInt64Attr(start, "id")
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(start)
	if err != nil {
		return nil, err
	}

	w := &Way{ID: id, Meta: meta}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxErr(dec, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "nd":
				ref, err := parseInt64Attr(t, "ref")
				if err != nil {
					return nil, err
				}
				w.Refs = append(w.Refs, ref)
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			case "tag":
				tag, err := parseTag(t)
				if err != nil {
					return nil, err
				}
				w.Meta.Tags = append(w.Meta.Tags, tag)
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			default:
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return w, nil
			}
		}
	}
}

func parseRelation(dec *xml.Decoder, start xml.StartElement) (*Relation, error) {
	id, err := parseInt64Attr(start, "id")
	if err != nil {
		return nil, err
	}
	meta, err := parseMeta(start)
	if err != nil {
		return nil, err
	}

	rel := &Relation{ID: id, Meta: meta}

	for {
		tok, err := dec.Token()
		if err != nil {
			return nil, syntaxErr(dec, err.Error())
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "member":
				m, err := parseMember(t)
				if err != nil {
					return nil, err
				}
				rel.Members = append(rel.Members, m)
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			case "tag":
				tag, err := parseTag(t)
				if err != nil {
					return nil, err
				}
				rel.Meta.Tags = append(rel.Meta.Tags, tag)
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			default:
				if err := skipToEnd(dec, t.Name); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return rel, nil
			}
		}
	}
}

func parseMember(start xml.StartElement) (Member, error) {
	typ, err := requireAttr(start, "type")
	if err != nil {
		return Member{}, err
	}
	var kind MemberKind
	switch typ {
	case "node":
		kind = MemberNode
	case "way":
		kind = MemberWay
	case "relation":
		kind = MemberRelation
	default:
		return Member{}, &BadAttributeValueError{Name: "type", Value: typ}
	}

	ref, err := parseInt64Attr(start, "ref")
	if err != nil {
		return Member{}, err
	}
	role, _ := attr(start, "role")

	return Member{Kind: kind, Ref: ref, Role: role}, nil
}

func parseTag(start xml.StartElement) (Tag, error) {
	k, err := requireAttr(start, "k")
	if err != nil {
		return Tag{}, err
	}
	v, err := requireAttr(start, "v")
	if err != nil {
		return Tag{}, err
	}
	return Tag{Key: k, Value: v}, nil
}
