/*
Package archive implements the font archive, a set of glyph bitmaps keyed by
the single character they draw.

In JSON an archive is an object mapping each key to its serialized bitmap,
the shape stored alongside a font project:

	{"A": {"size": 8, "data": [...]}, "B": {"size": 8, "data": [...]}}

The binary form is written as the four byte magic "PXFA", a version byte,
then a little-endian uint16 count of glyphs. Each glyph follows, sorted by
key, as a one byte key length, the UTF-8 key and the binary bitmap record
(one size byte and the packed buffer). The final four bytes are a big-endian
CRC-32/BZIP2 of everything before them.
*/
package archive

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"unicode/utf8"

	"github.com/bodgit/pixelfont/bitmap"
	"github.com/bodgit/pixelfont/codec"
	"github.com/bodgit/pixelfont/crc32"
)

const (
	magic   = "PXFA"
	version = 1

	maxEntries = 1<<16 - 1
)

var (
	// ErrInvalidKey is returned for a key that isn't exactly one character.
	ErrInvalidKey = errors.New("archive: key must be a single character")

	errBadMagic    = errors.New("archive: bad magic")
	errBadVersion  = errors.New("archive: unsupported version")
	errBadChecksum = errors.New("archive: checksum mismatch")
	errNotEnough   = errors.New("archive: not enough data")
	errTooMuch     = errors.New("archive: too much data")
)

// ValidKey reports whether key is a single valid UTF-8 encoded character.
func ValidKey(key string) bool {
	r, n := utf8.DecodeRuneInString(key)
	return n > 0 && n == len(key) && r != utf8.RuneError
}

// Archive is a set of serialized glyphs. It implements the
// encoding.BinaryMarshaler, encoding.BinaryUnmarshaler, json.Marshaler and
// json.Unmarshaler interfaces. The zero value is an empty archive.
type Archive struct {
	glyphs map[string]codec.Serialized
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{
		glyphs: make(map[string]codec.Serialized),
	}
}

// Len returns the number of glyphs.
func (a *Archive) Len() int {
	return len(a.glyphs)
}

// Set stores s under key, replacing any existing glyph.
func (a *Archive) Set(key string, s codec.Serialized) error {
	if !ValidKey(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	if err := s.Valid(); err != nil {
		return fmt.Errorf("archive: glyph %q: %w", key, err)
	}
	if len(a.glyphs) == maxEntries {
		if _, ok := a.glyphs[key]; !ok {
			return fmt.Errorf("archive: more than %d entries", maxEntries)
		}
	}
	if a.glyphs == nil {
		a.glyphs = make(map[string]codec.Serialized)
	}
	a.glyphs[key] = s
	return nil
}

// Get returns the glyph stored under key.
func (a *Archive) Get(key string) (codec.Serialized, bool) {
	s, ok := a.glyphs[key]
	return s, ok
}

// Delete removes the glyph stored under key, if any.
func (a *Archive) Delete(key string) {
	delete(a.glyphs, key)
}

// Keys returns every key in sorted order.
func (a *Archive) Keys() []string {
	keys := make([]string, 0, len(a.glyphs))
	for k := range a.glyphs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Glyphs returns a copy of the key to glyph mapping.
func (a *Archive) Glyphs() map[string]codec.Serialized {
	m := make(map[string]codec.Serialized, len(a.glyphs))
	for k, v := range a.glyphs {
		m[k] = v
	}
	return m
}

// MarshalJSON implements json.Marshaler.
func (a *Archive) MarshalJSON() ([]byte, error) {
	if a.glyphs == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a.glyphs)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *Archive) UnmarshalJSON(p []byte) error {
	var m map[string]codec.Serialized
	if err := json.Unmarshal(p, &m); err != nil {
		return err
	}

	n := New()
	for k, s := range m {
		if err := n.Set(k, s); err != nil {
			return err
		}
	}
	a.glyphs = n.glyphs
	return nil
}

// MarshalBinary encodes the archive into binary form and returns the result.
func (a *Archive) MarshalBinary() ([]byte, error) {
	b := new(bytes.Buffer)
	h := crc32.New()
	w := io.MultiWriter(b, h)

	if _, err := io.WriteString(w, magic); err != nil {
		return nil, err
	}
	if _, err := w.Write([]byte{version}); err != nil {
		return nil, err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(a.glyphs))); err != nil {
		return nil, err
	}

	for _, k := range a.Keys() {
		record, err := a.glyphs[k].MarshalBinary()
		if err != nil {
			return nil, fmt.Errorf("archive: glyph %q: %w", k, err)
		}
		if _, err := w.Write(append([]byte{byte(len(k))}, k...)); err != nil {
			return nil, err
		}
		if _, err := w.Write(record); err != nil {
			return nil, err
		}
	}

	return h.Sum(b.Bytes()), nil
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = errNotEnough
	}
	return err
}

// UnmarshalBinary decodes the archive from binary form.
func (a *Archive) UnmarshalBinary(p []byte) error {
	if len(p) < len(magic)+1+2+crc32.Size {
		return errNotEnough
	}

	body, trailer := p[:len(p)-crc32.Size], p[len(p)-crc32.Size:]
	if !bytes.HasPrefix(body, []byte(magic)) {
		return errBadMagic
	}
	if body[len(magic)] != version {
		return fmt.Errorf("%w: %d", errBadVersion, body[len(magic)])
	}
	if crc32.Checksum(body) != binary.BigEndian.Uint32(trailer) {
		return errBadChecksum
	}

	r := bytes.NewReader(body[len(magic)+1:])

	var count uint16
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return errNotEnough
	}

	glyphs := make(map[string]codec.Serialized, count)
	for i := 0; i < int(count); i++ {
		var n [1]byte
		if err := readFull(r, n[:]); err != nil {
			return err
		}
		key := make([]byte, n[0])
		if err := readFull(r, key); err != nil {
			return err
		}
		if !ValidKey(string(key)) {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
		if _, ok := glyphs[string(key)]; ok {
			return fmt.Errorf("archive: duplicate key %q", key)
		}

		var size [1]byte
		if err := readFull(r, size[:]); err != nil {
			return err
		}
		if !bitmap.ValidSize(int(size[0])) {
			return fmt.Errorf("archive: glyph %q: %w: %d", key, bitmap.ErrInvalidSize, size[0])
		}
		record := make([]byte, 1+bitmap.BufferLen(int(size[0])))
		record[0] = size[0]
		if err := readFull(r, record[1:]); err != nil {
			return err
		}

		var s codec.Serialized
		if err := s.UnmarshalBinary(record); err != nil {
			return fmt.Errorf("archive: glyph %q: %w", key, err)
		}
		glyphs[string(key)] = s
	}

	if r.Len() != 0 {
		return errTooMuch
	}

	a.glyphs = glyphs
	return nil
}
