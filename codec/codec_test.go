package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	"math/rand/v2"
	"testing"

	"github.com/bodgit/pixelfont/bitmap"
	"github.com/bodgit/pixelfont/pool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aRandomBitmap(r *rand.Rand, size int) *bitmap.Bitmap {
	b := bitmap.MustNew(size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			b.Set(x, y, r.IntN(2) == 1)
		}
	}
	return b
}

func TestRoundTrip(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	for _, size := range bitmap.Sizes {
		for i := 0; i < 5; i++ {
			b := aRandomBitmap(r, size)
			t.Run(fmt.Sprintf("%s %d", b, i), func(t *testing.T) {
				s := Serialize(b)
				assert.Equal(t, size, s.Size)

				got, err := Deserialize(s)
				require.NoError(t, err)
				assert.True(t, b.Equal(got))

				got, err = FromHex(ToHex(b), size)
				require.NoError(t, err)
				assert.True(t, b.Equal(got))

				var buf bytes.Buffer
				require.NoError(t, Write(&buf, b))
				got, err = Read(&buf)
				require.NoError(t, err)
				assert.True(t, b.Equal(got))
			})
		}
	}
}

func TestSerializeIsASnapshot(t *testing.T) {
	b := bitmap.MustNew(8).Set(0, 0, true)
	s := Serialize(b)
	b.Set(1, 0, true)
	assert.Equal(t, Bytes{0x80, 0, 0, 0, 0, 0, 0, 0}, s.Data)
}

func TestDeserializeInvalid(t *testing.T) {
	_, err := Deserialize(Serialized{Size: 8, Data: make(Bytes, 7)})
	assert.ErrorIs(t, err, bitmap.ErrInvalidLength)

	_, err = Deserialize(Serialized{Size: 16, Data: make(Bytes, 8)})
	assert.ErrorIs(t, err, bitmap.ErrInvalidLength)

	_, err = Deserialize(Serialized{Size: 9, Data: make(Bytes, 11)})
	assert.ErrorIs(t, err, bitmap.ErrInvalidSize)
}

func TestDeserializeWithAllocator(t *testing.T) {
	p := pool.New(0)
	b, err := Deserialize(Serialize(bitmap.MustNew(8).Set(3, 4, true)), bitmap.WithAllocator(p))
	require.NoError(t, err)
	b.Release()
	assert.Equal(t, 1, p.Free(8))
}

func TestHex(t *testing.T) {
	b := bitmap.MustNew(8).Set(0, 0, true).Set(7, 0, true).Set(4, 7, true)
	assert.Equal(t, "8100000000000008", ToHex(b))
	assert.Equal(t, "0000000000000000", ToHex(bitmap.MustNew(8)))

	_, err := FromHex("zz00000000000008", 8)
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = FromHex("810", 8)
	assert.ErrorIs(t, err, ErrInvalidHex)

	_, err = FromHex("8100", 8)
	assert.ErrorIs(t, err, bitmap.ErrInvalidLength)

	got, err := FromHex("8100000000000008", 8)
	require.NoError(t, err)
	assert.True(t, b.Equal(got))
}

func TestJSON(t *testing.T) {
	s := Serialize(bitmap.MustNew(8).Set(0, 0, true).Set(7, 7, true))

	p, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"size": 8, "data": [128, 0, 0, 0, 0, 0, 0, 1]}`, string(p))

	var got Serialized
	require.NoError(t, json.Unmarshal(p, &got))
	assert.Equal(t, s, got)

	assert.Error(t, json.Unmarshal([]byte(`{"size": 8, "data": [256]}`), &got))
	assert.Error(t, json.Unmarshal([]byte(`{"size": 8, "data": "AAAA"}`), &got))
}

func TestBinary(t *testing.T) {
	s := Serialize(bitmap.MustNew(8).Set(0, 0, true))

	p, err := s.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, []byte{8, 0x80, 0, 0, 0, 0, 0, 0, 0}, p)

	var got Serialized
	require.NoError(t, got.UnmarshalBinary(p))
	assert.Equal(t, s, got)

	assert.Error(t, got.UnmarshalBinary(nil))
	assert.ErrorIs(t, got.UnmarshalBinary(p[:5]), bitmap.ErrInvalidLength)
	assert.ErrorIs(t, got.UnmarshalBinary(append(p, 0)), bitmap.ErrInvalidLength)
	assert.ErrorIs(t, got.UnmarshalBinary([]byte{3, 0, 0}), bitmap.ErrInvalidSize)

	_, err = Serialized{Size: 8}.MarshalBinary()
	assert.ErrorIs(t, err, bitmap.ErrInvalidLength)
}

func TestReadSequence(t *testing.T) {
	a := bitmap.MustNew(8).Set(1, 1, true)
	b := bitmap.MustNew(32).Set(31, 31, true)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, a))
	require.NoError(t, Write(&buf, b))
	assert.Equal(t, 9+129, buf.Len())

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.True(t, a.Equal(got))

	got, err = Read(&buf)
	require.NoError(t, err)
	assert.True(t, b.Equal(got))
}

func TestReadTruncated(t *testing.T) {
	_, err := Read(bytes.NewReader(nil))
	assert.Equal(t, errNotEnough, err)

	_, err = Read(bytes.NewReader([]byte{16, 0, 0}))
	assert.Equal(t, errNotEnough, err)

	_, err = Read(bytes.NewReader([]byte{12, 0, 0}))
	assert.ErrorIs(t, err, bitmap.ErrInvalidSize)
}

func TestMap(t *testing.T) {
	m := map[string]*bitmap.Bitmap{
		"A": bitmap.MustNew(16).DrawLine(image.Pt(0, 15), image.Pt(8, 0)),
		"b": bitmap.MustNew(16).DrawRectangle(image.Pt(2, 2), image.Pt(9, 9)),
		"é": bitmap.MustNew(16),
	}

	s := SerializeMap(m)
	assert.Len(t, s, len(m))
	for k := range m {
		assert.Contains(t, s, k)
	}

	got, err := DeserializeMap(s)
	require.NoError(t, err)
	require.Len(t, got, len(m))
	for k, b := range m {
		assert.True(t, b.Equal(got[k]), k)
	}

	s["b"] = Serialized{Size: 16, Data: Bytes{1}}
	_, err = DeserializeMap(s)
	assert.ErrorIs(t, err, bitmap.ErrInvalidLength)
	assert.Contains(t, err.Error(), `"b"`)
}

func TestEllipseSurvivesHex(t *testing.T) {
	b := bitmap.MustNew(16).DrawEllipse(image.Pt(8, 8), image.Pt(5, 3))
	want := make(map[image.Point]struct{})
	for _, p := range b.Points() {
		want[p] = struct{}{}
	}

	got, err := FromHex(ToHex(b), 16)
	require.NoError(t, err)

	have := make(map[image.Point]struct{})
	for _, p := range got.Points() {
		have[p] = struct{}{}
	}
	assert.Equal(t, want, have)
}
