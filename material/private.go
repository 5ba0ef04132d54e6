package material

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/mpi"
	"golang.org/x/crypto/cryptobyte"
)

// S2K usage conventions
const (
	UsageCleartext = 0
	UsageSHA1      = 254
	UsageChecksum  = 255
)

// SecretKey is the protection block that follows the public part of
// secret key material (RFC 4880, section 5.5.3)
type SecretKey struct {
	// Usage is 0 for cleartext material, 254 or 255 when an S2K specifier
	// follows, otherwise it is the cipher of a legacy protected key
	Usage  uint8
	Cipher algorithm.Symmetric
	S2K    *S2K
	IV     []byte
	// Encrypted holds the protected secret part, including its checksum or hash
	Encrypted []byte
}

// Protected returns true if the secret part is encrypted
func (k *SecretKey) Protected() bool {
	return k.Usage != UsageCleartext
}

// parse reads the protection block; for protected keys it also consumes the
// encrypted remainder, so the caller only reads MPIs when it is not protected
func (k *SecretKey) parse(s *cryptobyte.String) error {
	if !s.ReadUint8(&k.Usage) {
		return errors.WithStack(ErrTruncated)
	}
	switch k.Usage {
	case UsageCleartext:
		return nil
	case UsageSHA1, UsageChecksum:
		var c uint8
		if !s.ReadUint8(&c) {
			return errors.WithStack(ErrTruncated)
		}
		k.Cipher = algorithm.Symmetric(c)
		k.S2K = new(S2K)
		if err := k.S2K.Parse(s); err != nil {
			return err
		}
	default:
		k.Cipher = algorithm.Symmetric(k.Usage)
	}

	stub := k.S2K != nil && k.S2K.Type == algorithm.S2KGNU
	if bs := k.Cipher.BlockSize(); bs > 0 && !stub {
		if !s.ReadBytes(&k.IV, bs) {
			return errors.WithStack(ErrTruncated)
		}
	}
	k.Encrypted = *s
	*s = nil
	return nil
}

func (k *SecretKey) marshal(b *cryptobyte.Builder) {
	b.AddUint8(k.Usage)
	if k.Usage == UsageCleartext {
		return
	}
	if k.Usage == UsageSHA1 || k.Usage == UsageChecksum {
		b.AddUint8(uint8(k.Cipher))
		if k.S2K != nil {
			k.S2K.Marshal(b)
		}
	}
	b.AddBytes(k.IV)
	b.AddBytes(k.Encrypted)
}

func (k *SecretKey) parseSecret(s *cryptobyte.String, values ...*mpi.MPI) error {
	if err := k.parse(s); err != nil {
		return err
	}
	if k.Protected() {
		return nil
	}
	if err := parseMPIs(s, values...); err != nil {
		return err
	}
	var sum uint16
	if !s.ReadUint16(&sum) {
		return errors.WithStack(ErrTruncated)
	}
	secret := make([]mpi.MPI, len(values))
	for i, v := range values {
		secret[i] = *v
	}
	if expected := mpi.Checksum(secret...); sum != expected {
		return errors.Wrapf(ErrChecksum, "expected 0x%04X, got 0x%04X", expected, sum)
	}
	return nil
}

func (k *SecretKey) marshalSecret(b *cryptobyte.Builder, values ...mpi.MPI) {
	k.marshal(b)
	if k.Protected() {
		return
	}
	marshalMPIs(b, values...)
	b.AddUint16(mpi.Checksum(values...))
}

// RSAPrivateKey is RSA secret key material; D, P, Q and U are set
// only when the key is not protected
type RSAPrivateKey struct {
	RSAPublicKey
	SecretKey
	D, P, Q, U mpi.MPI
}

// Public returns the public part
func (k *RSAPrivateKey) Public() PublicKey {
	return &k.RSAPublicKey
}

// Parse reads the public part, the protection block and the secret part
func (k *RSAPrivateKey) Parse(s *cryptobyte.String) error {
	if err := k.RSAPublicKey.Parse(s); err != nil {
		return err
	}
	return k.SecretKey.parseSecret(s, &k.D, &k.P, &k.Q, &k.U)
}

// Marshal appends the public part, the protection block and the secret part
func (k *RSAPrivateKey) Marshal(b *cryptobyte.Builder) {
	k.RSAPublicKey.Marshal(b)
	k.SecretKey.marshalSecret(b, k.D, k.P, k.Q, k.U)
}

// DSAPrivateKey is DSA secret key material
type DSAPrivateKey struct {
	DSAPublicKey
	SecretKey
	X mpi.MPI
}

// Public returns the public part
func (k *DSAPrivateKey) Public() PublicKey {
	return &k.DSAPublicKey
}

// Parse reads the public part, the protection block and the secret part
func (k *DSAPrivateKey) Parse(s *cryptobyte.String) error {
	if err := k.DSAPublicKey.Parse(s); err != nil {
		return err
	}
	return k.SecretKey.parseSecret(s, &k.X)
}

// Marshal appends the public part, the protection block and the secret part
func (k *DSAPrivateKey) Marshal(b *cryptobyte.Builder) {
	k.DSAPublicKey.Marshal(b)
	k.SecretKey.marshalSecret(b, k.X)
}

// ElGamalPrivateKey is ElGamal secret key material
type ElGamalPrivateKey struct {
	ElGamalPublicKey
	SecretKey
	X mpi.MPI
}

// Public returns the public part
func (k *ElGamalPrivateKey) Public() PublicKey {
	return &k.ElGamalPublicKey
}

// Parse reads the public part, the protection block and the secret part
func (k *ElGamalPrivateKey) Parse(s *cryptobyte.String) error {
	if err := k.ElGamalPublicKey.Parse(s); err != nil {
		return err
	}
	return k.SecretKey.parseSecret(s, &k.X)
}

// Marshal appends the public part, the protection block and the secret part
func (k *ElGamalPrivateKey) Marshal(b *cryptobyte.Builder) {
	k.ElGamalPublicKey.Marshal(b)
	k.SecretKey.marshalSecret(b, k.X)
}
