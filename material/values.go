package material

import (
	"github.com/effective-security/xpgp/mpi"
	"golang.org/x/crypto/cryptobyte"
)

// RSACiphertext is the RSA encrypted session key value m**e mod n
type RSACiphertext struct {
	C mpi.MPI
}

// Kind returns KindRSA
func (c *RSACiphertext) Kind() Kind { return KindRSA }

// Parse reads the value
func (c *RSACiphertext) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &c.C)
}

// Marshal appends the value
func (c *RSACiphertext) Marshal(b *cryptobyte.Builder) {
	c.C.Marshal(b)
}

// ElGamalCiphertext is the ElGamal encrypted session key pair
type ElGamalCiphertext struct {
	// GK is g**k mod p
	GK mpi.MPI
	// MYK is m * y**k mod p
	MYK mpi.MPI
}

// Kind returns KindElGamal
func (c *ElGamalCiphertext) Kind() Kind { return KindElGamal }

// Parse reads the pair
func (c *ElGamalCiphertext) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &c.GK, &c.MYK)
}

// Marshal appends the pair
func (c *ElGamalCiphertext) Marshal(b *cryptobyte.Builder) {
	marshalMPIs(b, c.GK, c.MYK)
}

// RSASignature is the RSA signature value m**d mod n
type RSASignature struct {
	S mpi.MPI
}

// Kind returns KindRSA
func (v *RSASignature) Kind() Kind { return KindRSA }

// Parse reads the value
func (v *RSASignature) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &v.S)
}

// Marshal appends the value
func (v *RSASignature) Marshal(b *cryptobyte.Builder) {
	v.S.Marshal(b)
}

// DSASignature is the DSA signature pair
type DSASignature struct {
	R, S mpi.MPI
}

// Kind returns KindDSA
func (v *DSASignature) Kind() Kind { return KindDSA }

// Parse reads r and s
func (v *DSASignature) Parse(s *cryptobyte.String) error {
	return parseMPIs(s, &v.R, &v.S)
}

// Marshal appends r and s
func (v *DSASignature) Marshal(b *cryptobyte.Builder) {
	marshalMPIs(b, v.R, v.S)
}
