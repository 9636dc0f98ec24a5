package radix

import "testing"

import "github.com/stretchr/testify/assert"

func TestBitTest(t *testing.T) {
	stream := []byte{0b10100000, 0x00}
	assert.True(t, bitTest(stream, 0))
	assert.False(t, bitTest(stream, 1))
	assert.True(t, bitTest(stream, 2))
	assert.False(t, bitTest(stream, 8))
}

func TestChop(t *testing.T) {
	stream := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	chop(stream, 20)
	assert.Equal(t, []byte{0xFF, 0xFF, 0xF0, 0x00}, stream)
}

func TestChopByteAligned(t *testing.T) {
	stream := []byte{0xFF, 0xFF, 0xFF, 0xFF}
	chop(stream, 16)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00, 0x00}, stream)
}

func TestChopNoop(t *testing.T) {
	stream := []byte{0xFF, 0xFF}
	chop(stream, 16)
	assert.Equal(t, []byte{0xFF, 0xFF}, stream)
}

func TestChopped(t *testing.T) {
	stream := []byte{0xFF, 0xFF}
	out := chopped(stream, 8)
	assert.Equal(t, []byte{0xFF, 0x00}, out)
	assert.Equal(t, []byte{0xFF, 0xFF}, stream, "original must be untouched")
}

func TestFirstDiffer(t *testing.T) {
	cases := []struct {
		name string
		a, b []byte
		want int
	}{
		{"identical", []byte{0x00, 0x00}, []byte{0x00, 0x00}, 16},
		{"diverge first bit", []byte{0x80, 0x00}, []byte{0x00, 0x00}, 0},
		{"diverge mid byte", []byte{0xF0, 0x00}, []byte{0xF8, 0x00}, 4},
		{"diverge second byte", []byte{0xFF, 0x01}, []byte{0xFF, 0x00}, 15},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, firstDiffer(tc.a, tc.b, 16))
		})
	}
}

func TestFirstDifferRespectsLimit(t *testing.T) {
	a := []byte{0xFF, 0xFF}
	b := []byte{0xFF, 0x00}
	assert.Equal(t, 8, firstDiffer(a, b, 8))
}
