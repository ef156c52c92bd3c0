package osm

import "github.com/corbanbrook/osmio/internal/codec"

// The codec-level error taxonomy surfaces to callers of this package
// unchanged, since Read/Write pass codec errors straight through.
type (
	IoError                = codec.IoError
	TruncatedInputError    = codec.TruncatedInputError
	TruncatedRecordError   = codec.TruncatedRecordError
	OverflowError          = codec.OverflowError
	BadMagicError          = codec.BadMagicError
	UnknownRecordError     = codec.UnknownRecordError
	BadStringRefError      = codec.BadStringRefError
	XmlSyntaxError         = codec.XmlSyntaxError
	MissingAttributeError  = codec.MissingAttributeError
	BadAttributeValueError = codec.BadAttributeValueError
)

// InvalidGeometryError indicates the builder received a ring or line with
// too few coordinates to form valid geometry.
type InvalidGeometryError struct {
	Reason string
}

func (e *InvalidGeometryError) Error() string {
	return "osmio: invalid geometry: " + e.Reason
}
