/*
Package codec converts bitmaps to and from their stored forms.

A Serialized record is the side length plus the exact packed buffer. In JSON
it is written as

	{"size": 8, "data": [0, 24, 36, 66, 126, 66, 66, 0]}

The hex form is the packed buffer as two lowercase hex digits per byte.

The binary record is a single byte holding the side length followed by the
packed buffer, (size*size+7)/8 bytes. There is no compression so a record is
between 9 and 513 bytes long.
*/
package codec

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/bodgit/pixelfont/bitmap"
)

var (
	// ErrInvalidHex is returned when a hex string contains something other
	// than pairs of hex digits.
	ErrInvalidHex = errors.New("codec: invalid hex")

	errNotEnough = errors.New("codec: not enough bitmap data")
)

// Bytes is a byte slice written to JSON as an array of numbers rather than
// base64.
type Bytes []byte

// MarshalJSON implements json.Marshaler.
func (b Bytes) MarshalJSON() ([]byte, error) {
	values := make([]uint16, len(b))
	for i, v := range b {
		values[i] = uint16(v)
	}
	return json.Marshal(values)
}

// UnmarshalJSON implements json.Unmarshaler.
func (b *Bytes) UnmarshalJSON(p []byte) error {
	var values []uint16
	if err := json.Unmarshal(p, &values); err != nil {
		return err
	}
	out := make(Bytes, len(values))
	for i, v := range values {
		if v > 0xff {
			return fmt.Errorf("codec: byte value %d out of range", v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

// Serialized is the stored form of a bitmap. It is treated as immutable once
// created.
type Serialized struct {
	Size int   `json:"size"`
	Data Bytes `json:"data"`
}

// Valid returns an error unless s describes a bitmap that can be built.
func (s Serialized) Valid() error {
	if !bitmap.ValidSize(s.Size) {
		return fmt.Errorf("%w: %d", bitmap.ErrInvalidSize, s.Size)
	}
	if want := bitmap.BufferLen(s.Size); len(s.Data) != want {
		return fmt.Errorf("%w: got %d bytes, want %d", bitmap.ErrInvalidLength, len(s.Data), want)
	}
	return nil
}

// Serialize returns the stored form of b.
func Serialize(b *bitmap.Bitmap) Serialized {
	return Serialized{
		Size: b.Size(),
		Data: b.Data(),
	}
}

// Deserialize builds a bitmap from its stored form.
func Deserialize(s Serialized, opts ...bitmap.Option) (*bitmap.Bitmap, error) {
	if err := s.Valid(); err != nil {
		return nil, err
	}
	b, err := bitmap.New(s.Size, opts...)
	if err != nil {
		return nil, err
	}
	if err := b.SetData(s.Data); err != nil {
		return nil, err
	}
	return b, nil
}

// ToHex returns the packed buffer of b as lowercase hex.
func ToHex(b *bitmap.Bitmap) string {
	return hex.EncodeToString(b.Data())
}

// FromHex builds a bitmap of the given size from the output of ToHex.
func FromHex(s string, size int, opts ...bitmap.Option) (*bitmap.Bitmap, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return Deserialize(Serialized{Size: size, Data: data}, opts...)
}

// MarshalBinary implements encoding.BinaryMarshaler.
func (s Serialized) MarshalBinary() ([]byte, error) {
	if err := s.Valid(); err != nil {
		return nil, err
	}
	return append([]byte{byte(s.Size)}, s.Data...), nil
}

// UnmarshalBinary implements encoding.BinaryUnmarshaler. p must hold exactly
// one record.
func (s *Serialized) UnmarshalBinary(p []byte) error {
	if len(p) == 0 {
		return errNotEnough
	}
	r := Serialized{
		Size: int(p[0]),
		Data: append(Bytes(nil), p[1:]...),
	}
	if err := r.Valid(); err != nil {
		return err
	}
	*s = r
	return nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}

// Write writes b to w as a binary record.
func Write(w io.Writer, b *bitmap.Bitmap) error {
	p, err := Serialize(b).MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(p)
	return err
}

// Read reads one binary record from r. Reading stops at the end of the
// record so several can be read back to back.
func Read(r io.Reader, opts ...bitmap.Option) (*bitmap.Bitmap, error) {
	var size [1]byte
	if err := readFull(r, size[:]); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	s := Serialized{Size: int(size[0])}
	if !bitmap.ValidSize(s.Size) {
		return nil, fmt.Errorf("%w: %d", bitmap.ErrInvalidSize, s.Size)
	}

	s.Data = make(Bytes, bitmap.BufferLen(s.Size))
	if err := readFull(r, s.Data); err != nil {
		if err != io.ErrUnexpectedEOF {
			return nil, err
		}
		return nil, errNotEnough
	}

	return Deserialize(s, opts...)
}

// SerializeMap returns the stored form of every bitmap in m under the same
// key.
func SerializeMap(m map[string]*bitmap.Bitmap) map[string]Serialized {
	out := make(map[string]Serialized, len(m))
	for k, b := range m {
		out[k] = Serialize(b)
	}
	return out
}

// DeserializeMap is the inverse of SerializeMap. It stops at the first
// record that fails, naming its key.
func DeserializeMap(m map[string]Serialized, opts ...bitmap.Option) (map[string]*bitmap.Bitmap, error) {
	out := make(map[string]*bitmap.Bitmap, len(m))
	for k, s := range m {
		b, err := Deserialize(s, opts...)
		if err != nil {
			for _, d := range out {
				d.Release()
			}
			return nil, fmt.Errorf("codec: glyph %q: %w", k, err)
		}
		out[k] = b
	}
	return out, nil
}
