package compression

import (
	"bytes"
	"testing"

	"github.com/effective-security/xpgp/algorithm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	p := New()
	data := bytes.Repeat([]byte("literal data packet contents\n"), 100)

	for _, alg := range []algorithm.Compression{
		algorithm.Uncompressed,
		algorithm.ZIP,
		algorithm.ZLIB,
		algorithm.BZip2,
	} {
		t.Run(alg.String(), func(t *testing.T) {
			c, err := p.Compress(alg, data)
			require.NoError(t, err)
			if alg != algorithm.Uncompressed {
				assert.Less(t, len(c), len(data))
			}

			d, err := p.Decompress(alg, c, int64(len(data)))
			require.NoError(t, err)
			assert.Equal(t, data, d)

			_, err = p.Decompress(alg, c, int64(len(data)-1))
			assert.ErrorIs(t, err, ErrTooLarge)
		})
	}
}

func TestUnsupported(t *testing.T) {
	p := New()
	_, err := p.Compress(algorithm.Compression(110), []byte("x"))
	assert.ErrorIs(t, err, ErrUnsupported)
	assert.EqualError(t, err, "Unknown(110): compression: unsupported algorithm")

	_, err = p.Decompress(algorithm.Compression(110), []byte("x"), 10)
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestCorrupt(t *testing.T) {
	p := New()
	garbage := []byte{0xDE, 0xAD, 0xBE, 0xEF, 0x00, 0x01, 0x02}
	for _, alg := range []algorithm.Compression{algorithm.ZIP, algorithm.ZLIB, algorithm.BZip2} {
		_, err := p.Decompress(alg, garbage, 1024)
		assert.ErrorIs(t, err, ErrCorrupt, alg.String())
	}
}

func TestLevel(t *testing.T) {
	p, err := NewWithLevel(9)
	require.NoError(t, err)
	c, err := p.Compress(algorithm.ZLIB, []byte("hello hello hello"))
	require.NoError(t, err)
	d, err := p.Decompress(algorithm.ZLIB, c, 100)
	require.NoError(t, err)
	assert.Equal(t, "hello hello hello", string(d))

	_, err = NewWithLevel(42)
	assert.EqualError(t, err, "compression: invalid level 42")
}
