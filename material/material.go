package material

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/mpi"
	"golang.org/x/crypto/cryptobyte"
)

// Kind of the algorithm-specific structure
type Kind uint8

// Kinds
const (
	KindOpaque Kind = iota
	KindRSA
	KindDSA
	KindElGamal
)

var kindName = map[Kind]string{
	KindOpaque:  "opaque",
	KindRSA:     "rsa",
	KindDSA:     "dsa",
	KindElGamal: "elgamal",
}

func (k Kind) String() string {
	return kindName[k]
}

// KindOf returns the key material kind used by the public-key algorithm
func KindOf(alg algorithm.PubKey) Kind {
	switch {
	case alg.IsRSA():
		return KindRSA
	case alg == algorithm.DSA:
		return KindDSA
	case alg.IsElGamal():
		return KindElGamal
	}
	return KindOpaque
}

// Field is a value encoded inside a packet body
type Field interface {
	// Parse reads the value from the cursor
	Parse(s *cryptobyte.String) error
	// Marshal appends the encoded value
	Marshal(b *cryptobyte.Builder)
	// Kind returns the structure kind
	Kind() Kind
}

// PublicKey is key material of a key packet
type PublicKey interface {
	Field
	// PublicLength returns the number of leading encoded octets
	// that hold the public part of the material
	PublicLength() int
}

// PrivateKey is key material of a secret key packet
type PrivateKey interface {
	PublicKey
	// Public returns the public part
	Public() PublicKey
	// Protected returns true if the secret part is encrypted
	Protected() bool
}

// Ciphertext is an encrypted session key
type Ciphertext interface {
	Field
}

// Signature is a signature value
type Signature interface {
	Field
}

// ErrChecksum is returned when a cleartext secret key fails its checksum
var ErrChecksum = errors.New("material: secret key checksum mismatch")

// ErrTruncated is returned when the input ends inside a field
var ErrTruncated = mpi.ErrTruncated

// NewPublicKey returns empty public key material for the algorithm,
// or nil if the algorithm has no modeled structure
func NewPublicKey(alg algorithm.PubKey) PublicKey {
	switch KindOf(alg) {
	case KindRSA:
		return new(RSAPublicKey)
	case KindDSA:
		return new(DSAPublicKey)
	case KindElGamal:
		return new(ElGamalPublicKey)
	}
	return nil
}

// NewPrivateKey returns empty secret key material for the algorithm,
// or nil if the algorithm has no modeled structure
func NewPrivateKey(alg algorithm.PubKey) PrivateKey {
	switch KindOf(alg) {
	case KindRSA:
		return new(RSAPrivateKey)
	case KindDSA:
		return new(DSAPrivateKey)
	case KindElGamal:
		return new(ElGamalPrivateKey)
	}
	return nil
}

// NewCiphertext returns empty session key ciphertext for the algorithm,
// or nil if the algorithm cannot encrypt
func NewCiphertext(alg algorithm.PubKey) Ciphertext {
	switch alg {
	case algorithm.RSAEncryptOrSign, algorithm.RSAEncrypt:
		return new(RSACiphertext)
	case algorithm.ElGamal, algorithm.FormerlyElGamalEncryptOrSign:
		return new(ElGamalCiphertext)
	}
	return nil
}

// NewSignature returns empty signature value for the algorithm,
// or nil if the algorithm cannot sign
func NewSignature(alg algorithm.PubKey) Signature {
	switch {
	case alg.IsRSA():
		return new(RSASignature)
	case alg == algorithm.DSA:
		return new(DSASignature)
	}
	return nil
}

// Compatible returns true if the key material can be carried by a key packet
// with the given algorithm and secrecy
func Compatible(alg algorithm.PubKey, private bool, m PublicKey) bool {
	if m == nil {
		return false
	}
	_, isPrivate := m.(PrivateKey)
	if m.Kind() == KindOpaque {
		return KindOf(alg) == KindOpaque
	}
	return m.Kind() == KindOf(alg) && isPrivate == private
}

// Opaque keeps the raw octets of a field whose structure is not modeled.
// It consumes the remainder of the packet body.
type Opaque struct {
	Data []byte
}

// Kind returns KindOpaque
func (o *Opaque) Kind() Kind {
	return KindOpaque
}

// Parse consumes the rest of the cursor
func (o *Opaque) Parse(s *cryptobyte.String) error {
	o.Data = *s
	*s = nil
	return nil
}

// Marshal appends the raw octets
func (o *Opaque) Marshal(b *cryptobyte.Builder) {
	b.AddBytes(o.Data)
}

// PublicLength returns the length of the raw octets
func (o *Opaque) PublicLength() int {
	return len(o.Data)
}
