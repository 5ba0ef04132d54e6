package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/material"
)

// PKESessionKeyV3 is a version 3 Public-Key Encrypted Session Key packet
type PKESessionKeyV3 struct {
	// KeyID of the recipient key; zero is a wildcard
	KeyID KeyID

	algo       algorithm.PubKey
	ciphertext material.Ciphertext
}

// NewPKESessionKeyV3 returns a packet with empty ciphertext for the algorithm
func NewPKESessionKeyV3(keyID KeyID, alg algorithm.PubKey) *PKESessionKeyV3 {
	p := &PKESessionKeyV3{KeyID: keyID}
	p.SetAlgorithm(alg)
	return p
}

// Tag returns TagPKESessionKey
func (p *PKESessionKeyV3) Tag() Tag { return TagPKESessionKey }

// Version returns 3
func (p *PKESessionKeyV3) Version() uint8 { return 3 }

// Encrypter returns the hex Key ID of the recipient
func (p *PKESessionKeyV3) Encrypter() string {
	return p.KeyID.String()
}

// Algorithm returns the public-key algorithm
func (p *PKESessionKeyV3) Algorithm() algorithm.PubKey {
	return p.algo
}

// SetAlgorithm sets the algorithm and replaces the ciphertext with an empty
// value of the matching structure, or with material.Opaque
func (p *PKESessionKeyV3) SetAlgorithm(alg algorithm.PubKey) {
	p.algo = alg
	if ct := material.NewCiphertext(alg); ct != nil {
		p.ciphertext = ct
	} else {
		p.ciphertext = new(material.Opaque)
	}
}

// Ciphertext returns the encrypted session key
func (p *PKESessionKeyV3) Ciphertext() material.Ciphertext {
	return p.ciphertext
}

// SetCiphertext sets the encrypted session key, which must match the algorithm
func (p *PKESessionKeyV3) SetCiphertext(ct material.Ciphertext) error {
	expected := material.KindOpaque
	if e := material.NewCiphertext(p.algo); e != nil {
		expected = e.Kind()
	}
	if ct == nil || ct.Kind() != expected {
		return errors.Errorf("%T does not match %s ciphertext", ct, p.algo)
	}
	p.ciphertext = ct
	return nil
}

func (p *PKESessionKeyV3) parse(r *reader) error {
	id, err := r.keyID()
	if err != nil {
		return err
	}
	alg, err := r.u8()
	if err != nil {
		return err
	}
	p.KeyID = id
	p.SetAlgorithm(algorithm.PubKey(alg))
	if p.ciphertext.Kind() == material.KindOpaque {
		logger.KV(xlog.TRACE, "reason", "opaque_ciphertext", "alg", p.algo)
	}
	return r.field("session key", p.ciphertext)
}

func (p *PKESessionKeyV3) marshal(w *writer) error {
	w.keyID(p.KeyID)
	w.AddUint8(uint8(p.algo))
	return w.field("session key", p.ciphertext)
}

// SKESessionKeyV4 is a version 4 Symmetric-Key Encrypted Session Key packet
type SKESessionKeyV4 struct {
	Cipher algorithm.Symmetric
	S2K    material.S2K
	// EncryptedKey is optional; when empty the S2K output is the session key
	EncryptedKey []byte
}

// Tag returns TagSKESessionKey
func (p *SKESessionKeyV4) Tag() Tag { return TagSKESessionKey }

// Version returns 4
func (p *SKESessionKeyV4) Version() uint8 { return 4 }

func (p *SKESessionKeyV4) parse(r *reader) error {
	c, err := r.u8()
	if err != nil {
		return err
	}
	p.Cipher = algorithm.Symmetric(c)
	if err = r.field("s2k", &p.S2K); err != nil {
		return err
	}
	p.EncryptedKey = r.rest()
	return nil
}

func (p *SKESessionKeyV4) marshal(w *writer) error {
	w.AddUint8(uint8(p.Cipher))
	if err := w.field("s2k", &p.S2K); err != nil {
		return err
	}
	w.AddBytes(p.EncryptedKey)
	return nil
}
