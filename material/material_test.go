package material

import (
	"crypto/rsa"
	"math/big"
	"testing"

	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/mpi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/cryptobyte"
)

func marshal(t *testing.T, f interface{ Marshal(b *cryptobyte.Builder) }) []byte {
	b := cryptobyte.NewBuilder(nil)
	f.Marshal(b)
	raw, err := b.Bytes()
	require.NoError(t, err)
	return raw
}

func roundTrip(t *testing.T, f Field, empty Field) {
	raw := marshal(t, f)
	s := cryptobyte.String(raw)
	require.NoError(t, empty.Parse(&s))
	assert.Empty(t, s)
	assert.Equal(t, f, empty)
	assert.Equal(t, raw, marshal(t, empty))
}

func TestFactories(t *testing.T) {
	tcases := []struct {
		alg  algorithm.PubKey
		kind Kind
		pub  PublicKey
		priv PrivateKey
		ct   Ciphertext
		sig  Signature
	}{
		{algorithm.RSAEncryptOrSign, KindRSA, new(RSAPublicKey), new(RSAPrivateKey), new(RSACiphertext), new(RSASignature)},
		{algorithm.RSAEncrypt, KindRSA, new(RSAPublicKey), new(RSAPrivateKey), new(RSACiphertext), new(RSASignature)},
		{algorithm.RSASign, KindRSA, new(RSAPublicKey), new(RSAPrivateKey), nil, new(RSASignature)},
		{algorithm.DSA, KindDSA, new(DSAPublicKey), new(DSAPrivateKey), nil, new(DSASignature)},
		{algorithm.ElGamal, KindElGamal, new(ElGamalPublicKey), new(ElGamalPrivateKey), new(ElGamalCiphertext), nil},
		{algorithm.FormerlyElGamalEncryptOrSign, KindElGamal, new(ElGamalPublicKey), new(ElGamalPrivateKey), new(ElGamalCiphertext), nil},
		{algorithm.EdDSA, KindOpaque, nil, nil, nil, nil},
		{algorithm.PubKey(99), KindOpaque, nil, nil, nil, nil},
	}

	for _, tc := range tcases {
		t.Run(tc.alg.String(), func(t *testing.T) {
			assert.Equal(t, tc.kind, KindOf(tc.alg))
			if tc.pub == nil {
				assert.Nil(t, NewPublicKey(tc.alg))
			} else {
				assert.Equal(t, tc.pub, NewPublicKey(tc.alg))
			}
			if tc.priv == nil {
				assert.Nil(t, NewPrivateKey(tc.alg))
			} else {
				assert.Equal(t, tc.priv, NewPrivateKey(tc.alg))
			}
			if tc.ct == nil {
				assert.Nil(t, NewCiphertext(tc.alg))
			} else {
				assert.Equal(t, tc.ct, NewCiphertext(tc.alg))
			}
			if tc.sig == nil {
				assert.Nil(t, NewSignature(tc.alg))
			} else {
				assert.Equal(t, tc.sig, NewSignature(tc.alg))
			}
		})
	}
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(algorithm.RSASign, false, new(RSAPublicKey)))
	assert.False(t, Compatible(algorithm.RSASign, true, new(RSAPublicKey)))
	assert.True(t, Compatible(algorithm.RSASign, true, new(RSAPrivateKey)))
	assert.False(t, Compatible(algorithm.DSA, false, new(RSAPublicKey)))
	assert.True(t, Compatible(algorithm.EdDSA, false, new(Opaque)))
	assert.False(t, Compatible(algorithm.DSA, false, new(Opaque)))
	assert.False(t, Compatible(algorithm.DSA, false, nil))
}

func TestRSAPublicKey(t *testing.T) {
	pub := &rsa.PublicKey{N: big.NewInt(0xC0FFEE), E: 65537}
	k := NewRSAPublicKey(pub)
	assert.Equal(t, KindRSA, k.Kind())
	assert.Equal(t, 5+5, k.PublicLength())
	assert.Equal(t, []byte{0x00, 0x18, 0xC0, 0xFF, 0xEE, 0x00, 0x11, 0x01, 0x00, 0x01}, marshal(t, k))
	roundTrip(t, k, new(RSAPublicKey))

	back, err := k.RSA()
	require.NoError(t, err)
	assert.Equal(t, pub, back)

	k.E = mpi.New([]byte{1, 0, 0, 0, 0, 0, 0, 0, 0})
	_, err = k.RSA()
	assert.EqualError(t, err, "material: RSA exponent too large")
}

func TestDSAAndElGamal(t *testing.T) {
	dsaKey := &DSAPublicKey{
		P: mpi.New([]byte{0x17}),
		Q: mpi.New([]byte{0x0B}),
		G: mpi.New([]byte{0x04}),
		Y: mpi.New([]byte{0x08}),
	}
	assert.Equal(t, 12, dsaKey.PublicLength())
	roundTrip(t, dsaKey, new(DSAPublicKey))
	assert.Equal(t, int64(0x17), dsaKey.DSA().P.Int64())

	elg := &ElGamalPublicKey{P: mpi.New([]byte{0x17}), G: mpi.New([]byte{0x05}), Y: mpi.New([]byte{0x02})}
	assert.Equal(t, 9, elg.PublicLength())
	roundTrip(t, elg, new(ElGamalPublicKey))
}

func TestValues(t *testing.T) {
	roundTrip(t, &RSACiphertext{C: mpi.New([]byte{0x01, 0x02, 0x03})}, new(RSACiphertext))
	roundTrip(t, &ElGamalCiphertext{GK: mpi.New([]byte{0x01}), MYK: mpi.New([]byte{0x02})}, new(ElGamalCiphertext))
	roundTrip(t, &RSASignature{S: mpi.New([]byte{0xAB, 0xCD})}, new(RSASignature))
	roundTrip(t, &DSASignature{R: mpi.New([]byte{0x01}), S: mpi.New([]byte{0x02})}, new(DSASignature))

	s := cryptobyte.String([]byte{0x00, 0x10, 0x01})
	err := new(DSASignature).Parse(&s)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestOpaque(t *testing.T) {
	s := cryptobyte.String([]byte{1, 2, 3})
	o := new(Opaque)
	require.NoError(t, o.Parse(&s))
	assert.Empty(t, s)
	assert.Equal(t, []byte{1, 2, 3}, o.Data)
	assert.Equal(t, 3, o.PublicLength())
	assert.Equal(t, KindOpaque, o.Kind())
	assert.Equal(t, []byte{1, 2, 3}, marshal(t, o))
}

func TestPrivateCleartext(t *testing.T) {
	k := &RSAPrivateKey{
		RSAPublicKey: RSAPublicKey{N: mpi.New([]byte{0xC0, 0xFF, 0xEE}), E: mpi.New([]byte{0x01, 0x00, 0x01})},
		D:            mpi.New([]byte{0x11}),
		P:            mpi.New([]byte{0x13}),
		Q:            mpi.New([]byte{0x17}),
		U:            mpi.New([]byte{0x05}),
	}
	assert.False(t, k.Protected())
	assert.Equal(t, 10, k.PublicLength())
	assert.Equal(t, &k.RSAPublicKey, k.Public())

	raw := marshal(t, k)
	// public, usage, 4 MPIs, checksum
	assert.Len(t, raw, 10+1+4*3+2)
	assert.Equal(t, byte(UsageCleartext), raw[10])
	roundTrip(t, k, new(RSAPrivateKey))

	// corrupt the checksum
	raw[len(raw)-1]++
	s := cryptobyte.String(raw)
	err := new(RSAPrivateKey).Parse(&s)
	assert.ErrorIs(t, err, ErrChecksum)
}

func TestPrivateProtected(t *testing.T) {
	k := &DSAPrivateKey{
		DSAPublicKey: DSAPublicKey{
			P: mpi.New([]byte{0x17}),
			Q: mpi.New([]byte{0x0B}),
			G: mpi.New([]byte{0x04}),
			Y: mpi.New([]byte{0x08}),
		},
		SecretKey: SecretKey{
			Usage:  UsageSHA1,
			Cipher: algorithm.AES128,
			S2K: &S2K{
				Type:  algorithm.S2KIteratedSalted,
				Hash:  algorithm.SHA256,
				Salt:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
				Count: 0x60,
			},
			IV:        []byte{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
			Encrypted: []byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
	}
	assert.True(t, k.Protected())
	assert.Equal(t, 65536, k.S2K.Iterations())
	roundTrip(t, k, new(DSAPrivateKey))

	legacy := &ElGamalPrivateKey{
		ElGamalPublicKey: ElGamalPublicKey{P: mpi.New([]byte{0x17}), G: mpi.New([]byte{0x05}), Y: mpi.New([]byte{0x02})},
		SecretKey: SecretKey{
			Usage:     uint8(algorithm.CAST5),
			Cipher:    algorithm.CAST5,
			IV:        []byte{1, 2, 3, 4, 5, 6, 7, 8},
			Encrypted: []byte{0x01},
		},
	}
	roundTrip(t, legacy, new(ElGamalPrivateKey))

	// unknown cipher keeps IV and data together
	unknown := &RSAPrivateKey{
		RSAPublicKey: RSAPublicKey{N: mpi.New([]byte{0x0F}), E: mpi.New([]byte{0x03})},
		SecretKey: SecretKey{
			Usage:     UsageChecksum,
			Cipher:    algorithm.Symmetric(200),
			S2K:       &S2K{Type: algorithm.S2KSimple, Hash: algorithm.SHA1},
			Encrypted: []byte{9, 9, 9, 9, 9},
		},
	}
	roundTrip(t, unknown, new(RSAPrivateKey))
}

func TestS2K(t *testing.T) {
	tcases := []*S2K{
		{Type: algorithm.S2KSimple, Hash: algorithm.MD5},
		{Type: algorithm.S2KSalted, Hash: algorithm.SHA1, Salt: []byte{1, 2, 3, 4, 5, 6, 7, 8}},
		{Type: algorithm.S2KIteratedSalted, Hash: algorithm.SHA512, Salt: []byte{8, 7, 6, 5, 4, 3, 2, 1}, Count: 0xFF},
		{Type: algorithm.S2KGNU, Hash: algorithm.Hash(0), GNUMode: GNUDummy},
		{Type: algorithm.S2KGNU, Hash: algorithm.Hash(0), GNUMode: GNUDivertToCard, Serial: []byte{0xD2, 0x76}},
	}
	for _, tc := range tcases {
		raw := marshal(t, tc)
		s := cryptobyte.String(raw)
		got := new(S2K)
		require.NoError(t, got.Parse(&s), tc.Type.String())
		assert.Empty(t, s)
		assert.Equal(t, raw, marshal(t, got))
		assert.Equal(t, tc.Type, got.Type)
		assert.Equal(t, tc.Salt, got.Salt)
	}

	s := cryptobyte.String([]byte{2, 2})
	err := new(S2K).Parse(&s)
	assert.ErrorIs(t, err, ErrUnsupportedS2K)

	s = cryptobyte.String([]byte{101, 0, 'X', 'Y', 'Z', 1})
	err = new(S2K).Parse(&s)
	assert.ErrorIs(t, err, ErrUnsupportedS2K)

	s = cryptobyte.String([]byte{3, 2, 1, 2})
	err = new(S2K).Parse(&s)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestGNUStub(t *testing.T) {
	k := &RSAPrivateKey{
		RSAPublicKey: RSAPublicKey{N: mpi.New([]byte{0x0F}), E: mpi.New([]byte{0x03})},
		SecretKey: SecretKey{
			Usage:  UsageChecksum,
			Cipher: algorithm.Plaintext,
			S2K:    &S2K{Type: algorithm.S2KGNU, GNUMode: GNUDummy},
		},
	}
	raw := marshal(t, k)
	s := cryptobyte.String(raw)
	got := new(RSAPrivateKey)
	require.NoError(t, got.Parse(&s))
	assert.True(t, got.Protected())
	assert.Nil(t, got.IV)
	assert.Equal(t, raw, marshal(t, got))
}
