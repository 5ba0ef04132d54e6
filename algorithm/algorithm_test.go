package algorithm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPubKey(t *testing.T) {
	assert.True(t, RSAEncryptOrSign.IsKnown())
	assert.True(t, RSASign.IsRSA())
	assert.False(t, DSA.IsRSA())
	assert.True(t, FormerlyElGamalEncryptOrSign.IsElGamal())
	assert.Equal(t, "DSA", DSA.String())

	unknown := PubKey(99)
	assert.False(t, unknown.IsKnown())
	assert.Equal(t, "Unknown(99)", unknown.String())
	assert.Equal(t, uint8(99), uint8(unknown))
}

func TestSymmetricBlockSize(t *testing.T) {
	tcases := []struct {
		alg  Symmetric
		size int
	}{
		{CAST5, 8},
		{TripleDES, 8},
		{AES128, 16},
		{AES256, 16},
		{Camellia192, 16},
		{Plaintext, 0},
		{Symmetric(77), 0},
	}
	for _, tc := range tcases {
		assert.Equal(t, tc.size, tc.alg.BlockSize(), tc.alg.String())
	}
}

func TestHash(t *testing.T) {
	assert.Equal(t, "SHA256", SHA256.String())
	assert.False(t, Hash(100).IsKnown())
	assert.Equal(t, "Unknown(100)", Hash(100).String())
}

func TestParseCompression(t *testing.T) {
	for _, name := range []string{"zip", "ZIP", "Zlib", "bzip2", "none", "uncompressed"} {
		_, err := ParseCompression(name)
		assert.NoError(t, err, name)
	}
	c, err := ParseCompression("none")
	require.NoError(t, err)
	assert.Equal(t, Uncompressed, c)

	_, err = ParseCompression("lz4")
	assert.EqualError(t, err, `unknown compression algorithm: "lz4"`)
}

func TestParseLiteralFormat(t *testing.T) {
	f, err := ParseLiteralFormat("t")
	require.NoError(t, err)
	assert.Equal(t, LiteralText, f)

	f, err = ParseLiteralFormat("utf8")
	require.NoError(t, err)
	assert.Equal(t, LiteralUTF8, f)

	_, err = ParseLiteralFormat("x")
	assert.Error(t, err)
}

func TestTrustFlags(t *testing.T) {
	f := TrustRevoked | TrustDisabled
	assert.True(t, f.Has(TrustRevoked))
	assert.False(t, f.Has(TrustSubRevoked))
	assert.Equal(t, []TrustFlags{TrustRevoked, TrustDisabled}, f.List())
	assert.Empty(t, TrustFlags(0).List())

	assert.Equal(t, "Ultimate", TrustUltimate.String())
	assert.Equal(t, "binary", LiteralBinary.String())
	assert.Equal(t, "PositiveCert", PositiveCert.String())
	assert.Equal(t, "IteratedSalted", S2KIteratedSalted.String())
}
