package codec

import (
	"bufio"
	"encoding/xml"
	"fmt"
	"io"
	"time"
)

// WriteXML writes osm as OSM XML v0.6. Output is deterministic: attributes
// in the fixed order below, <nd>/<member> children before <tag> children,
// two-space indentation, LF line endings, UTF-8 declaration.
func WriteXML(w io.Writer, osm *Osm) error {
	bw := bufio.NewWriter(w)

	fmt.Fprint(bw, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	fmt.Fprint(bw, "<osm version=\"0.6\" generator=\"osmio\">\n")

	if osm.Bounds != nil {
		fmt.Fprintf(bw, "  <bounds minlat=\"%s\" minlon=\"%s\" maxlat=\"%s\" maxlon=\"%s\"/>\n",
			formatDegrees(osm.Bounds.MinLat), formatDegrees(osm.Bounds.MinLon),
			formatDegrees(osm.Bounds.MaxLat), formatDegrees(osm.Bounds.MaxLon))
	}

	for _, id := range sortedKeys(osm.Nodes) {
		if err := writeNodeXML(bw, osm.Nodes[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(osm.Ways) {
		if err := writeWayXML(bw, osm.Ways[id]); err != nil {
			return err
		}
	}
	for _, id := range sortedKeys(osm.Relations) {
		if err := writeRelationXML(bw, osm.Relations[id]); err != nil {
			return err
		}
	}

	fmt.Fprint(bw, "</osm>\n")

	if err := bw.Flush(); err != nil {
		return &IoError{Op: "write", Err: err}
	}
	return nil
}

func writeNodeXML(bw *bufio.Writer, n *Node) error {
	fmt.Fprintf(bw, "  <node id=\"%d\" lat=\"%s\" lon=\"%s\"%s>\n",
		n.ID, formatDegrees(n.Coordinate.LatE7), formatDegrees(n.Coordinate.LonE7), metaAttrs(n.Meta))
	writeTagsXML(bw, n.Meta.Tags, "    ")
	fmt.Fprint(bw, "  </node>\n")
	return nil
}

func writeWayXML(bw *bufio.Writer, w *Way) error {
	fmt.Fprintf(bw, "  <way id=\"%d\"%s>\n", w.ID, metaAttrs(w.Meta))
	for _, ref := range w.Refs {
		fmt.Fprintf(bw, "    <nd ref=\"%d\"/>\n", ref)
	}
	writeTagsXML(bw, w.Meta.Tags, "    ")
	fmt.Fprint(bw, "  </way>\n")
	return nil
}

func writeRelationXML(bw *bufio.Writer, r *Relation) error {
	fmt.Fprintf(bw, "  <relation id=\"%d\"%s>\n", r.ID, metaAttrs(r.Meta))
	for _, m := range r.Members {
		fmt.Fprintf(bw, "    <member type=\"%s\" ref=\"%d\" role=\"%s\"/>\n",
			m.Kind.String(), m.Ref, escapeXML(m.Role))
	}
	writeTagsXML(bw, r.Meta.Tags, "    ")
	fmt.Fprint(bw, "  </relation>\n")
	return nil
}

func writeTagsXML(bw *bufio.Writer, tags []Tag, indent string) {
	for _, t := range tags {
		fmt.Fprintf(bw, "%s<tag k=\"%s\" v=\"%s\"/>\n", indent, escapeXML(t.Key), escapeXML(t.Value))
	}
}

// metaAttrs renders the optional version/timestamp/changeset/uid/user
// attributes, in that order, as a leading-space-prefixed fragment.
func metaAttrs(m Meta) string {
	if m.Version == nil && m.Author == nil {
		return ""
	}
	var out string
	if m.Version != nil {
		out += fmt.Sprintf(" version=\"%d\"", *m.Version)
	}
	if m.Author != nil {
		out += fmt.Sprintf(" timestamp=\"%s\" changeset=\"%d\" uid=\"%d\" user=\"%s\"",
			formatTimestamp(m.Author.Created), m.Author.ChangeSet, m.Author.Uid, escapeXML(m.Author.User))
	}
	return out
}

func formatTimestamp(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02T15:04:05Z")
}

func formatDegrees(nanoDegrees int64) string {
	return fmt.Sprintf("%.7f", float64(nanoDegrees)/1e7)
}

// escapeXML escapes the five characters the OSM XML attribute/text
// contract calls out (& < > " '), via the standard library's XML escaper.
func escapeXML(s string) string {
	var buf []byte
	w := xmlByteWriter{&buf}
	_ = xml.EscapeText(w, []byte(s))
	return string(buf)
}

type xmlByteWriter struct {
	buf *[]byte
}

func (w xmlByteWriter) Write(p []byte) (int, error) {
	*w.buf = append(*w.buf, p...)
	return len(p), nil
}
