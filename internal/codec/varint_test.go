package codec

import (
	"bytes"
	"testing"
)

func TestAppendUnsignedKnownEncodings(t *testing.T) {
	cases := []struct {
		val  uint64
		want []byte
	}{
		{0, []byte{0x00}},
		{1, []byte{0x01}},
		{127, []byte{0x7f}},
		{128, []byte{0x80, 0x01}},
		{624485, []byte{0xe5, 0x8e, 0x26}},
	}
	for _, c := range cases {
		got := AppendUnsigned(nil, c.val)
		if !bytes.Equal(got, c.want) {
			t.Errorf("AppendUnsigned(%d) = % x, want % x", c.val, got, c.want)
		}
	}
}

func TestAppendSignedKnownEncodings(t *testing.T) {
	cases := []struct {
		val  int64
		want []byte
	}{
		{0, []byte{0x00}},
		{-1, []byte{0x01}},
		{1, []byte{0x02}},
		{-2, []byte{0x03}},
	}
	for _, c := range cases {
		got := AppendSigned(nil, c.val)
		if !bytes.Equal(got, c.want) {
			t.Errorf("AppendSigned(%d) = % x, want % x", c.val, got, c.want)
		}
	}
}

func TestVarintRoundTripUnsigned(t *testing.T) {
	vals := []uint64{0, 1, 127, 128, 300, 624485, 1 << 32, ^uint64(0)}
	for _, v := range vals {
		buf := AppendUnsigned(nil, v)
		got, n, err := ReadUnsigned(buf, 0)
		if err != nil {
			t.Fatalf("ReadUnsigned(%d): %v", v, err)
		}
		if got != v || n != len(buf) {
			t.Errorf("round trip %d: got %d consumed %d, want %d consumed %d", v, got, n, v, len(buf))
		}
	}
}

func TestVarintRoundTripSigned(t *testing.T) {
	vals := []int64{0, -1, 1, -2, 2, 1000000, -1000000}
	for _, v := range vals {
		buf := AppendSigned(nil, v)
		got, n, err := ReadSigned(buf, 0)
		if err != nil {
			t.Fatalf("ReadSigned(%d): %v", v, err)
		}
		if got != v || n != len(buf) {
			t.Errorf("round trip %d: got %d consumed %d, want %d consumed %d", v, got, n, v, len(buf))
		}
	}
}

func TestReadUnsignedTruncated(t *testing.T) {
	_, _, err := ReadUnsigned([]byte{0x80, 0x80}, 0)
	if _, ok := err.(*TruncatedInputError); !ok {
		t.Fatalf("want TruncatedInputError, got %v", err)
	}
}

func TestReadUnsignedOverflow(t *testing.T) {
	data := bytes.Repeat([]byte{0x80}, 11)
	_, _, err := ReadUnsigned(data, 0)
	if _, ok := err.(*OverflowError); !ok {
		t.Fatalf("want OverflowError, got %v", err)
	}
}

func TestReadUnsignedAtOffset(t *testing.T) {
	buf := append([]byte{0xff, 0xff}, AppendUnsigned(nil, 624485)...)
	got, n, err := ReadUnsigned(buf, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 624485 {
		t.Errorf("got %d, want 624485", got)
	}
	if n != len(buf) {
		t.Errorf("consumed %d, want %d", n, len(buf))
	}
}
