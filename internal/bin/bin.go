// Package bin reads little-endian scalar values out of byte segments with
// explicit bounds checking. All Aurora-era file formats (GFF, ERF, KEY/BIF,
// TLK) are little-endian; this package is the one place offset arithmetic
// is checked.
package bin

import (
	"encoding/binary"
	"errors"
	"math"
)

// ErrBounds is returned when a read would leave the segment.
var ErrBounds = errors.New("buffer bounds error")

// Segm is a segment of byte data. Readers throughout the module use it to
// navigate binary payloads; a Segm never owns its bytes.
type Segm []byte

// Size returns the segment length in bytes.
func (b Segm) Size() int {
	return len(b)
}

// View returns n bytes at the given offset as a sub-segment of b.
func (b Segm) View(offset, n int) (Segm, error) {
	if offset < 0 || n < 0 || offset+n > len(b) || offset+n < 0 {
		return nil, ErrBounds
	}
	return b[offset : offset+n], nil
}

// U8 returns the byte at offset i.
func (b Segm) U8(i int) (uint8, error) {
	if i < 0 || i >= len(b) {
		return 0, ErrBounds
	}
	return b[i], nil
}

// U16 returns the uint16 at the relative offset i.
func (b Segm) U16(i int) (uint16, error) {
	buf, err := b.View(i, 2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(buf), nil
}

// U32 returns the uint32 at the relative offset i.
func (b Segm) U32(i int) (uint32, error) {
	buf, err := b.View(i, 4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(buf), nil
}

// U64 returns the uint64 at the relative offset i.
func (b Segm) U64(i int) (uint64, error) {
	buf, err := b.View(i, 8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(buf), nil
}

// F32 returns the float32 at the relative offset i.
func (b Segm) F32(i int) (float32, error) {
	n, err := b.U32(i)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(n), nil
}

// F64 returns the float64 at the relative offset i.
func (b Segm) F64(i int) (float64, error) {
	n, err := b.U64(i)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(n), nil
}

// Soft accessors return the zero value on a bounds miss. Callers on the
// navigation path use these; parsers that must distinguish damage use the
// checked variants above.

// U16At is the soft variant of U16.
func (b Segm) U16At(i int) uint16 {
	n, err := b.U16(i)
	if err != nil {
		return 0
	}
	return n
}

// U32At is the soft variant of U32.
func (b Segm) U32At(i int) uint32 {
	n, err := b.U32(i)
	if err != nil {
		return 0
	}
	return n
}

// PutU16 appends a little-endian uint16.
func PutU16(dst []byte, n uint16) []byte {
	return append(dst, byte(n), byte(n>>8))
}

// PutU32 appends a little-endian uint32.
func PutU32(dst []byte, n uint32) []byte {
	return append(dst, byte(n), byte(n>>8), byte(n>>16), byte(n>>24))
}

// PutU64 appends a little-endian uint64.
func PutU64(dst []byte, n uint64) []byte {
	dst = PutU32(dst, uint32(n))
	return PutU32(dst, uint32(n>>32))
}

// PutF32 appends a little-endian float32.
func PutF32(dst []byte, f float32) []byte {
	return PutU32(dst, math.Float32bits(f))
}

// PutF64 appends a little-endian float64.
func PutF64(dst []byte, f float64) []byte {
	return PutU64(dst, math.Float64bits(f))
}
