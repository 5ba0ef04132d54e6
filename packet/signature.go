package packet

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/material"
	"golang.org/x/crypto/cryptobyte"
)

// SignatureV4 is a version 4 Signature packet
type SignatureV4 struct {
	SigType  algorithm.SignatureType
	HashAlgo algorithm.Hash
	// Hashed subpackets are covered by the signature
	Hashed Subpackets
	// Unhashed subpackets are advisory
	Unhashed Subpackets
	// HashPrefix is the left 16 bits of the signed hash
	HashPrefix [2]byte

	pubAlgo algorithm.PubKey
	value   material.Signature
}

// NewSignatureV4 returns a signature with an empty value for the algorithm
func NewSignatureV4(sigType algorithm.SignatureType, pubAlgo algorithm.PubKey, hashAlgo algorithm.Hash) *SignatureV4 {
	s := &SignatureV4{SigType: sigType, HashAlgo: hashAlgo}
	s.SetPubKeyAlgorithm(pubAlgo)
	return s
}

// Tag returns TagSignature
func (s *SignatureV4) Tag() Tag { return TagSignature }

// Version returns 4
func (s *SignatureV4) Version() uint8 { return 4 }

// PubKeyAlgorithm returns the public-key algorithm
func (s *SignatureV4) PubKeyAlgorithm() algorithm.PubKey {
	return s.pubAlgo
}

// SetPubKeyAlgorithm sets the algorithm and replaces the signature value with
// an empty value of the matching structure, or with material.Opaque
func (s *SignatureV4) SetPubKeyAlgorithm(alg algorithm.PubKey) {
	s.pubAlgo = alg
	if v := material.NewSignature(alg); v != nil {
		s.value = v
	} else {
		s.value = new(material.Opaque)
	}
}

// Value returns the signature value
func (s *SignatureV4) Value() material.Signature {
	return s.value
}

// SetValue sets the signature value, which must match the algorithm
func (s *SignatureV4) SetValue(v material.Signature) error {
	expected := material.KindOpaque
	if e := material.NewSignature(s.pubAlgo); e != nil {
		expected = e.Kind()
	}
	if v == nil || v.Kind() != expected {
		return errors.Errorf("%T does not match %s signature", v, s.pubAlgo)
	}
	s.value = v
	return nil
}

// CreationTime returns the time from the hashed creation time subpacket
func (s *SignatureV4) CreationTime() (time.Time, bool) {
	sp, ok := s.Hashed.Find(SubpacketCreationTime)
	if !ok || len(sp.Data) != 4 {
		return time.Time{}, false
	}
	return fromTimestamp(binary.BigEndian.Uint32(sp.Data)), true
}

// IssuerKeyID returns the Key ID from the issuer subpacket,
// looking in the hashed area first
func (s *SignatureV4) IssuerKeyID() (KeyID, bool) {
	for _, area := range []Subpackets{s.Hashed, s.Unhashed} {
		if sp, ok := area.Find(SubpacketIssuer); ok && len(sp.Data) == 8 {
			return KeyID(binary.BigEndian.Uint64(sp.Data)), true
		}
	}
	return 0, false
}

func (s *SignatureV4) parse(r *reader) error {
	sigType, err := r.u8()
	if err != nil {
		return err
	}
	pubAlgo, err := r.u8()
	if err != nil {
		return err
	}
	hashAlgo, err := r.u8()
	if err != nil {
		return err
	}
	s.SigType = algorithm.SignatureType(sigType)
	s.HashAlgo = algorithm.Hash(hashAlgo)
	s.SetPubKeyAlgorithm(algorithm.PubKey(pubAlgo))

	area, err := r.area()
	if err != nil {
		return err
	}
	if s.Hashed, err = parseSubpackets(area); err != nil {
		return errors.WithMessage(err, "hashed subpackets")
	}
	if area, err = r.area(); err != nil {
		return err
	}
	if s.Unhashed, err = parseSubpackets(area); err != nil {
		return errors.WithMessage(err, "unhashed subpackets")
	}

	prefix, err := r.bytes(2)
	if err != nil {
		return err
	}
	copy(s.HashPrefix[:], prefix)

	if s.value.Kind() == material.KindOpaque {
		logger.KV(xlog.TRACE, "reason", "opaque_signature", "alg", s.pubAlgo)
	}
	return r.field("signature", s.value)
}

func (s *SignatureV4) marshal(w *writer) error {
	w.AddUint8(uint8(s.SigType))
	w.AddUint8(uint8(s.pubAlgo))
	w.AddUint8(uint8(s.HashAlgo))
	w.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		s.Hashed.marshal(b)
	})
	w.AddUint16LengthPrefixed(func(b *cryptobyte.Builder) {
		s.Unhashed.marshal(b)
	})
	w.AddBytes(s.HashPrefix[:])
	return w.field("signature", s.value)
}

// OnePassSignatureV3 is a version 3 One-Pass Signature packet
type OnePassSignatureV3 struct {
	SigType    algorithm.SignatureType
	HashAlgo   algorithm.Hash
	PubKeyAlgo algorithm.PubKey
	KeyID      KeyID
	// Nested is zero when the next packet is another One-Pass Signature
	// over the same data
	Nested uint8
}

// Tag returns TagOnePassSignature
func (o *OnePassSignatureV3) Tag() Tag { return TagOnePassSignature }

// Version returns 3
func (o *OnePassSignatureV3) Version() uint8 { return 3 }

// IsLast returns true if no One-Pass Signature packet follows for the same data
func (o *OnePassSignatureV3) IsLast() bool {
	return o.Nested != 0
}

func (o *OnePassSignatureV3) parse(r *reader) error {
	b, err := r.bytes(3)
	if err != nil {
		return err
	}
	id, err := r.keyID()
	if err != nil {
		return err
	}
	nested, err := r.u8()
	if err != nil {
		return err
	}
	o.SigType = algorithm.SignatureType(b[0])
	o.HashAlgo = algorithm.Hash(b[1])
	o.PubKeyAlgo = algorithm.PubKey(b[2])
	o.KeyID = id
	o.Nested = nested
	return nil
}

func (o *OnePassSignatureV3) marshal(w *writer) error {
	w.AddUint8(uint8(o.SigType))
	w.AddUint8(uint8(o.HashAlgo))
	w.AddUint8(uint8(o.PubKeyAlgo))
	w.keyID(o.KeyID)
	w.AddUint8(o.Nested)
	return nil
}
