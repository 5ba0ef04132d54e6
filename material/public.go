package material

import (
	"crypto/dsa" //nolint:staticcheck
	"crypto/rsa"
	"math/big"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/mpi"
	"golang.org/x/crypto/cryptobyte"
)

// RSAPublicKey is RSA public key material: modulus n and exponent e
type RSAPublicKey struct {
	N, E mpi.MPI
}

// NewRSAPublicKey returns material for the key
func NewRSAPublicKey(pub *rsa.PublicKey) *RSAPublicKey {
	return &RSAPublicKey{
		N: mpi.FromBig(pub.N),
		E: mpi.FromBig(big.NewInt(int64(pub.E))),
	}
}

// Kind returns KindRSA
func (k *RSAPublicKey) Kind() Kind { return KindRSA }

// PublicLength returns the encoded length
func (k *RSAPublicKey) PublicLength() int {
	return k.N.EncodedLength() + k.E.EncodedLength()
}

// Parse reads n and e
func (k *RSAPublicKey) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &k.N, &k.E)
}

// Marshal appends n and e
func (k *RSAPublicKey) Marshal(b *cryptobyte.Builder) {
	marshalMPIs(b, k.N, k.E)
}

// RSA returns rsa.PublicKey
func (k *RSAPublicKey) RSA() (*rsa.PublicKey, error) {
	e := k.E.Big()
	if !e.IsInt64() || e.Int64() > 1<<31-1 {
		return nil, errors.Errorf("material: RSA exponent too large")
	}
	return &rsa.PublicKey{N: k.N.Big(), E: int(e.Int64())}, nil
}

// DSAPublicKey is DSA public key material
type DSAPublicKey struct {
	P, Q, G, Y mpi.MPI
}

// NewDSAPublicKey returns material for the key
func NewDSAPublicKey(pub *dsa.PublicKey) *DSAPublicKey {
	return &DSAPublicKey{
		P: mpi.FromBig(pub.P),
		Q: mpi.FromBig(pub.Q),
		G: mpi.FromBig(pub.G),
		Y: mpi.FromBig(pub.Y),
	}
}

// Kind returns KindDSA
func (k *DSAPublicKey) Kind() Kind { return KindDSA }

// PublicLength returns the encoded length
func (k *DSAPublicKey) PublicLength() int {
	return encodedLength(k.P, k.Q, k.G, k.Y)
}

// Parse reads p, q, g and y
func (k *DSAPublicKey) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &k.P, &k.Q, &k.G, &k.Y)
}

// Marshal appends p, q, g and y
func (k *DSAPublicKey) Marshal(b *cryptobyte.Builder) {
	marshalMPIs(b, k.P, k.Q, k.G, k.Y)
}

// DSA returns dsa.PublicKey
func (k *DSAPublicKey) DSA() *dsa.PublicKey {
	return &dsa.PublicKey{
		Parameters: dsa.Parameters{P: k.P.Big(), Q: k.Q.Big(), G: k.G.Big()},
		Y:          k.Y.Big(),
	}
}

// ElGamalPublicKey is ElGamal public key material
type ElGamalPublicKey struct {
	P, G, Y mpi.MPI
}

// Kind returns KindElGamal
func (k *ElGamalPublicKey) Kind() Kind { return KindElGamal }

// PublicLength returns the encoded length
func (k *ElGamalPublicKey) PublicLength() int {
	return encodedLength(k.P, k.G, k.Y)
}

// Parse reads p, g and y
func (k *ElGamalPublicKey) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &k.P, &k.G, &k.Y)
}

// Marshal appends p, g and y
func (k *ElGamalPublicKey) Marshal(b *cryptobyte.Builder) {
	marshalMPIs(b, k.P, k.G, k.Y)
}

func parseMPIs(s *cryptobyte.String, values ...*mpi.MPI) error {
	for _, v := range values {
		if err := v.Parse(s); err != nil {
			return err
		}
	}
	return nil
}

func marshalMPIs(b *cryptobyte.Builder, values ...mpi.MPI) {
	for _, v := range values {
		v.Marshal(b)
	}
}

func encodedLength(values ...mpi.MPI) int {
	n := 0
	for _, v := range values {
		n += v.EncodedLength()
	}
	return n
}
