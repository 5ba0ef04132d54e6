package packet

import (
	"crypto/sha1"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/material"
	"golang.org/x/crypto/cryptobyte"
)

// Key is a version 4 key packet
type Key interface {
	VersionedPacket

	CreationTime() time.Time
	Algorithm() algorithm.PubKey
	Material() material.PublicKey
	IsPrivate() bool
	IsSubkey() bool
	// Fingerprint returns the SHA-1 fingerprint of the public part
	Fingerprint() (Fingerprint, error)
	// KeyID returns the low 64 bits of the fingerprint
	KeyID() (KeyID, error)
}

var (
	_ Key = (*PublicKeyV4)(nil)
	_ Key = (*PublicSubkeyV4)(nil)
	_ Key = (*PrivateKeyV4)(nil)
	_ Key = (*PrivateSubkeyV4)(nil)
)

// KeyV4 is the version 4 layout shared by key packets
type KeyV4 struct {
	Created time.Time

	algo     algorithm.PubKey
	material material.PublicKey
}

// Version returns 4
func (k *KeyV4) Version() uint8 { return 4 }

// CreationTime returns the key creation time
func (k *KeyV4) CreationTime() time.Time {
	return k.Created
}

// Algorithm returns the public-key algorithm
func (k *KeyV4) Algorithm() algorithm.PubKey {
	return k.algo
}

// Material returns the key material; secret key packets return material.PrivateKey
func (k *KeyV4) Material() material.PublicKey {
	return k.material
}

func (k *KeyV4) setAlgorithm(alg algorithm.PubKey, private bool) {
	k.algo = alg
	if private {
		if m := material.NewPrivateKey(alg); m != nil {
			k.material = m
			return
		}
	} else if m := material.NewPublicKey(alg); m != nil {
		k.material = m
		return
	}
	k.material = new(material.Opaque)
}

func (k *KeyV4) setMaterial(m material.PublicKey, private bool) error {
	if !material.Compatible(k.algo, private, m) {
		return errors.Errorf("%T does not match %s key", m, k.algo)
	}
	k.material = m
	return nil
}

func (k *KeyV4) parseKey(r *reader, private bool) error {
	created, err := r.timestamp()
	if err != nil {
		return err
	}
	alg, err := r.u8()
	if err != nil {
		return err
	}
	k.Created = created
	k.setAlgorithm(algorithm.PubKey(alg), private)
	if k.material.Kind() == material.KindOpaque {
		logger.KV(xlog.TRACE, "reason", "opaque_key", "alg", k.algo, "private", private)
	}
	return r.field("key material", k.material)
}

func (k *KeyV4) marshalKey(w *writer) error {
	if err := w.timestamp(k.Created); err != nil {
		return err
	}
	w.AddUint8(uint8(k.algo))
	return w.field("key material", k.material)
}

func (k *KeyV4) public(private bool) (material.PublicKey, error) {
	switch m := k.material.(type) {
	case nil:
		return nil, errors.New("key material is not set")
	case material.PrivateKey:
		return m.Public(), nil
	}
	if private {
		return nil, errors.Wrapf(ErrUnsupported, "public part of %s secret key", k.algo)
	}
	return k.material, nil
}

// fingerprint hashes 0x99, the two-octet length, and the public key
// packet body: version, creation time, algorithm, public material
func (k *KeyV4) fingerprint(private bool) (Fingerprint, error) {
	var fp Fingerprint
	pub, err := k.public(private)
	if err != nil {
		return fp, err
	}

	mb := cryptobyte.NewBuilder(nil)
	pub.Marshal(mb)
	raw, err := mb.Bytes()
	if err != nil {
		return fp, errors.WithStack(err)
	}
	n := pub.PublicLength()
	if n > len(raw) || 6+n > 0xFFFF {
		return fp, errors.Wrapf(ErrMalformedLength, "public key material of %d octets", n)
	}
	created, err := toTimestamp(k.Created)
	if err != nil {
		return fp, err
	}

	b := cryptobyte.NewBuilder(make([]byte, 0, 9+n))
	b.AddUint8(0x99)
	b.AddUint16(uint16(6 + n))
	b.AddUint8(4)
	b.AddUint32(created)
	b.AddUint8(uint8(k.algo))
	b.AddBytes(raw[:n])
	data, err := b.Bytes()
	if err != nil {
		return fp, errors.WithStack(err)
	}
	return sha1.Sum(data), nil
}

func (k *KeyV4) keyID(private bool) (KeyID, error) {
	fp, err := k.fingerprint(private)
	if err != nil {
		return 0, err
	}
	return fp.KeyID(), nil
}

// PublicKeyV4 is a version 4 Public-Key packet
type PublicKeyV4 struct {
	KeyV4
}

// NewPublicKeyV4 returns a public key packet; nil material leaves
// an empty value for the algorithm
func NewPublicKeyV4(created time.Time, alg algorithm.PubKey, m material.PublicKey) (*PublicKeyV4, error) {
	k := new(PublicKeyV4)
	if err := k.init(created, alg, m); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *PublicKeyV4) init(created time.Time, alg algorithm.PubKey, m material.PublicKey) error {
	k.Created = created
	k.SetAlgorithm(alg)
	if m != nil {
		return k.SetMaterial(m)
	}
	return nil
}

// Tag returns TagPublicKey
func (k *PublicKeyV4) Tag() Tag { return TagPublicKey }

// IsPrivate returns false
func (k *PublicKeyV4) IsPrivate() bool { return false }

// IsSubkey returns false
func (k *PublicKeyV4) IsSubkey() bool { return false }

// SetAlgorithm sets the algorithm and replaces the material with an empty
// public value of the matching structure, or with material.Opaque
func (k *PublicKeyV4) SetAlgorithm(alg algorithm.PubKey) {
	k.setAlgorithm(alg, false)
}

// SetMaterial sets public key material matching the algorithm
func (k *PublicKeyV4) SetMaterial(m material.PublicKey) error {
	return k.setMaterial(m, false)
}

// Fingerprint returns the SHA-1 fingerprint
func (k *PublicKeyV4) Fingerprint() (Fingerprint, error) {
	return k.fingerprint(false)
}

// KeyID returns the Key ID
func (k *PublicKeyV4) KeyID() (KeyID, error) {
	return k.keyID(false)
}

func (k *PublicKeyV4) parse(r *reader) error {
	return k.parseKey(r, false)
}

func (k *PublicKeyV4) marshal(w *writer) error {
	return k.marshalKey(w)
}

// PublicSubkeyV4 is a version 4 Public-Subkey packet
type PublicSubkeyV4 struct {
	PublicKeyV4
}

// NewPublicSubkeyV4 returns a public subkey packet
func NewPublicSubkeyV4(created time.Time, alg algorithm.PubKey, m material.PublicKey) (*PublicSubkeyV4, error) {
	k := new(PublicSubkeyV4)
	if err := k.init(created, alg, m); err != nil {
		return nil, err
	}
	return k, nil
}

// Tag returns TagPublicSubkey
func (k *PublicSubkeyV4) Tag() Tag { return TagPublicSubkey }

// IsSubkey returns true
func (k *PublicSubkeyV4) IsSubkey() bool { return true }

// PrivateKeyV4 is a version 4 Secret-Key packet
type PrivateKeyV4 struct {
	KeyV4
}

// NewPrivateKeyV4 returns a secret key packet; nil material leaves
// an empty value for the algorithm
func NewPrivateKeyV4(created time.Time, alg algorithm.PubKey, m material.PrivateKey) (*PrivateKeyV4, error) {
	k := new(PrivateKeyV4)
	if err := k.init(created, alg, m); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *PrivateKeyV4) init(created time.Time, alg algorithm.PubKey, m material.PrivateKey) error {
	k.Created = created
	k.SetAlgorithm(alg)
	if m != nil {
		return k.SetMaterial(m)
	}
	return nil
}

// Tag returns TagPrivateKey
func (k *PrivateKeyV4) Tag() Tag { return TagPrivateKey }

// IsPrivate returns true
func (k *PrivateKeyV4) IsPrivate() bool { return true }

// IsSubkey returns false
func (k *PrivateKeyV4) IsSubkey() bool { return false }

// SetAlgorithm sets the algorithm and replaces the material with an empty
// secret value of the matching structure, or with material.Opaque
func (k *PrivateKeyV4) SetAlgorithm(alg algorithm.PubKey) {
	k.setAlgorithm(alg, true)
}

// SetMaterial sets secret key material matching the algorithm
func (k *PrivateKeyV4) SetMaterial(m material.PublicKey) error {
	return k.setMaterial(m, true)
}

// Fingerprint returns the SHA-1 fingerprint of the public part
func (k *PrivateKeyV4) Fingerprint() (Fingerprint, error) {
	return k.fingerprint(true)
}

// KeyID returns the Key ID
func (k *PrivateKeyV4) KeyID() (KeyID, error) {
	return k.keyID(true)
}

// PublicKey returns the public key packet for the public part
func (k *PrivateKeyV4) PublicKey() (*PublicKeyV4, error) {
	m, err := k.public(true)
	if err != nil {
		return nil, err
	}
	return NewPublicKeyV4(k.Created, k.algo, m)
}

func (k *PrivateKeyV4) parse(r *reader) error {
	return k.parseKey(r, true)
}

func (k *PrivateKeyV4) marshal(w *writer) error {
	return k.marshalKey(w)
}

// PrivateSubkeyV4 is a version 4 Secret-Subkey packet
type PrivateSubkeyV4 struct {
	PrivateKeyV4
}

// NewPrivateSubkeyV4 returns a secret subkey packet
func NewPrivateSubkeyV4(created time.Time, alg algorithm.PubKey, m material.PrivateKey) (*PrivateSubkeyV4, error) {
	k := new(PrivateSubkeyV4)
	if err := k.init(created, alg, m); err != nil {
		return nil, err
	}
	return k, nil
}

// Tag returns TagPrivateSubkey
func (k *PrivateSubkeyV4) Tag() Tag { return TagPrivateSubkey }

// IsSubkey returns true
func (k *PrivateSubkeyV4) IsSubkey() bool { return true }

// PublicSubkey returns the public subkey packet for the public part
func (k *PrivateSubkeyV4) PublicSubkey() (*PublicSubkeyV4, error) {
	m, err := k.public(true)
	if err != nil {
		return nil, err
	}
	return NewPublicSubkeyV4(k.Created, k.algo, m)
}
