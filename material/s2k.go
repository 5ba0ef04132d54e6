package material

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/algorithm"
	"golang.org/x/crypto/cryptobyte"
)

// ErrUnsupportedS2K is returned for S2K specifiers of unknown layout
var ErrUnsupportedS2K = errors.New("material: unsupported S2K specifier")

// GNU extension modes
const (
	GNUDummy        = 1
	GNUDivertToCard = 2
)

var gnuMagic = []byte("GNU")

// S2K is a string-to-key specifier (RFC 4880, section 3.7)
type S2K struct {
	Type algorithm.S2KType
	Hash algorithm.Hash
	// Salt is 8 octets for the salted types
	Salt []byte
	// Count is the coded iteration count
	Count uint8
	// GNUMode is the GnuPG extension mode
	GNUMode uint8
	// Serial is the card serial number of a divert-to-card stub
	Serial []byte
}

// Iterations returns the decoded octet count for the iterated type
func (k *S2K) Iterations() int {
	return (16 + int(k.Count&15)) << (uint32(k.Count>>4) + 6)
}

// Parse reads the specifier
func (k *S2K) Parse(s *cryptobyte.String) error {
	var typ, hash uint8
	if !s.ReadUint8(&typ) || !s.ReadUint8(&hash) {
		return errors.WithStack(ErrTruncated)
	}
	k.Type = algorithm.S2KType(typ)
	k.Hash = algorithm.Hash(hash)

	switch k.Type {
	case algorithm.S2KSimple:
	case algorithm.S2KSalted:
		if !s.ReadBytes(&k.Salt, 8) {
			return errors.WithStack(ErrTruncated)
		}
	case algorithm.S2KIteratedSalted:
		if !s.ReadBytes(&k.Salt, 8) || !s.ReadUint8(&k.Count) {
			return errors.WithStack(ErrTruncated)
		}
	case algorithm.S2KGNU:
		var magic []byte
		if !s.ReadBytes(&magic, 3) || !s.ReadUint8(&k.GNUMode) {
			return errors.WithStack(ErrTruncated)
		}
		if !bytes.Equal(magic, gnuMagic) {
			return errors.Wrapf(ErrUnsupportedS2K, "extension %q", magic)
		}
		if k.GNUMode == GNUDivertToCard {
			if !s.ReadUint8LengthPrefixed((*cryptobyte.String)(&k.Serial)) {
				return errors.WithStack(ErrTruncated)
			}
		}
	default:
		return errors.Wrapf(ErrUnsupportedS2K, "type %d", typ)
	}
	return nil
}

// Marshal appends the specifier
func (k *S2K) Marshal(b *cryptobyte.Builder) {
	b.AddUint8(uint8(k.Type))
	b.AddUint8(uint8(k.Hash))
	switch k.Type {
	case algorithm.S2KSalted:
		b.AddBytes(k.Salt)
	case algorithm.S2KIteratedSalted:
		b.AddBytes(k.Salt)
		b.AddUint8(k.Count)
	case algorithm.S2KGNU:
		b.AddBytes(gnuMagic)
		b.AddUint8(k.GNUMode)
		if k.GNUMode == GNUDivertToCard {
			b.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
				b.AddBytes(k.Serial)
			})
		}
	}
}
