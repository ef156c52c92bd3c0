package codec

// Variable-length integer encoding shared by every o5m record. Unsigned
// values are emitted seven bits per byte, little-endian, with the high bit
// set on every non-terminal byte. Signed values go through a zig-zag
// mapping first so small-magnitude negatives stay compact.
//
// Reference: the o5m format's varint is the same LEB128 used by protobuf;
// see https://wiki.openstreetmap.org/wiki/O5m#Numbers

const maxVarintBytes = 10

// AppendUnsigned appends the LEB128 encoding of x to dst and returns the
// extended slice. Always succeeds: a 64-bit value needs at most 10 bytes.
func AppendUnsigned(dst []byte, x uint64) []byte {
	for x >= 0x80 {
		dst = append(dst, byte(x)|0x80)
		x >>= 7
	}
	return append(dst, byte(x))
}

// AppendSigned zig-zag encodes n and appends its unsigned LEB128 form.
func AppendSigned(dst []byte, n int64) []byte {
	return AppendUnsigned(dst, zigzagEncode(n))
}

func zigzagEncode(n int64) uint64 {
	return (uint64(n) << 1) ^ uint64(n>>63)
}

func zigzagDecode(u uint64) int64 {
	return int64(u>>1) ^ -int64(u&1)
}

// ReadUnsigned decodes a LEB128 unsigned integer from data starting at
// offset, returning the value and the offset just past the terminator
// byte. It fails with TruncatedInputError if data ends before a
// terminator is seen, and OverflowError if more than 10 bytes are
// consumed without one.
func ReadUnsigned(data []byte, offset int) (uint64, int, error) {
	var result uint64
	var shift uint
	for i := 0; i < maxVarintBytes; i++ {
		if offset >= len(data) {
			return 0, offset, &TruncatedInputError{}
		}
		b := data[offset]
		offset++
		result |= uint64(b&0x7f) << shift
		if b&0x80 == 0 {
			return result, offset, nil
		}
		shift += 7
	}
	return 0, offset, &OverflowError{}
}

// ReadSigned decodes a zig-zag LEB128 signed integer, mirroring ReadUnsigned.
func ReadSigned(data []byte, offset int) (int64, int, error) {
	u, next, err := ReadUnsigned(data, offset)
	if err != nil {
		return 0, next, err
	}
	return zigzagDecode(u), next, nil
}
