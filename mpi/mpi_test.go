package mpi

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
)

func TestNew(t *testing.T) {
	m := New([]byte{0, 0, 0x01, 0x00, 0x01})
	assert.Equal(t, uint16(17), m.BitLength())
	assert.Equal(t, []byte{0x01, 0x00, 0x01}, m.Bytes())
	assert.Equal(t, 5, m.EncodedLength())
	assert.Equal(t, int64(65537), m.Big().Int64())

	z := New(nil)
	assert.Equal(t, uint16(0), z.BitLength())
	assert.Equal(t, 2, z.EncodedLength())

	assert.True(t, FromBig(big.NewInt(65537)).Equal(m))
	assert.False(t, FromBig(big.NewInt(3)).Equal(m))
}

func TestParseMarshal(t *testing.T) {
	b := cryptobyte.NewBuilder(nil)
	New([]byte{0x7F, 0xFF}).Marshal(b)
	raw, err := b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x0F, 0x7F, 0xFF}, raw)

	s := cryptobyte.String(append(raw, 0xAA))
	var m MPI
	require.NoError(t, m.Parse(&s))
	assert.Equal(t, uint16(15), m.BitLength())
	assert.Equal(t, []byte{0x7F, 0xFF}, m.Bytes())
	assert.Equal(t, cryptobyte.String([]byte{0xAA}), s)

	// non-canonical bit count is kept
	s = cryptobyte.String([]byte{0x00, 0x10, 0x00, 0x01})
	require.NoError(t, m.Parse(&s))
	assert.Equal(t, uint16(16), m.BitLength())
	b = cryptobyte.NewBuilder(nil)
	m.Marshal(b)
	raw, err = b.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00, 0x10, 0x00, 0x01}, raw)
}

func TestParseTruncated(t *testing.T) {
	for _, in := range [][]byte{nil, {0x00}, {0x00, 0x09, 0x01}} {
		s := cryptobyte.String(in)
		var m MPI
		err := m.Parse(&s)
		assert.ErrorIs(t, err, ErrTruncated)
	}
}

func TestChecksum(t *testing.T) {
	a := New([]byte{0x01, 0x02}) // 00 09 01 02
	c := New([]byte{0xFF})       // 00 08 FF
	assert.Equal(t, uint16(0x09+0x01+0x02+0x08+0xFF), Checksum(a, c))
	assert.Equal(t, uint16(0), Checksum())
}

func TestParseZero(t *testing.T) {
	s := cryptobyte.String([]byte{0x00, 0x00})
	var m MPI
	require.NoError(t, m.Parse(&s))
	assert.True(t, m.Equal(New(nil)))
	assert.Empty(t, s)
}
