package packet

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
)

// SubpacketType identifies a signature subpacket
type SubpacketType uint8

// Signature subpacket types
const (
	SubpacketCreationTime         SubpacketType = 2
	SubpacketExpirationTime       SubpacketType = 3
	SubpacketExportable           SubpacketType = 4
	SubpacketTrust                SubpacketType = 5
	SubpacketRegex                SubpacketType = 6
	SubpacketRevocable            SubpacketType = 7
	SubpacketKeyExpirationTime    SubpacketType = 9
	SubpacketPreferredSymmetric   SubpacketType = 11
	SubpacketRevocationKey        SubpacketType = 12
	SubpacketIssuer               SubpacketType = 16
	SubpacketNotation             SubpacketType = 20
	SubpacketPreferredHash        SubpacketType = 21
	SubpacketPreferredCompression SubpacketType = 22
	SubpacketKeyServerPrefs       SubpacketType = 23
	SubpacketPreferredKeyServer   SubpacketType = 24
	SubpacketPrimaryUserID        SubpacketType = 25
	SubpacketPolicyURI            SubpacketType = 26
	SubpacketKeyFlags             SubpacketType = 27
	SubpacketSignerUserID         SubpacketType = 28
	SubpacketRevocationReason     SubpacketType = 29
	SubpacketFeatures             SubpacketType = 30
	SubpacketSignatureTarget      SubpacketType = 31
	SubpacketEmbeddedSignature    SubpacketType = 32
)

// Subpacket is a signature subpacket; Data is kept verbatim
type Subpacket struct {
	Type     SubpacketType
	Critical bool
	Data     []byte
	// LengthOctets keeps a non-shortest length encoding (2 or 5 octets)
	// read from the wire; zero writes the shortest one
	LengthOctets int
}

// NewCreationTimeSubpacket returns a signature creation time subpacket
func NewCreationTimeSubpacket(t time.Time) (Subpacket, error) {
	v, err := toTimestamp(t)
	if err != nil {
		return Subpacket{}, err
	}
	return Subpacket{
		Type: SubpacketCreationTime,
		Data: binary.BigEndian.AppendUint32(nil, v),
	}, nil
}

// NewIssuerSubpacket returns an issuer Key ID subpacket
func NewIssuerSubpacket(id KeyID) Subpacket {
	return Subpacket{Type: SubpacketIssuer, Data: id.Bytes()}
}

// Subpackets is a subpacket area
type Subpackets []Subpacket

// Find returns the first subpacket of the type
func (s Subpackets) Find(t SubpacketType) (Subpacket, bool) {
	for _, sp := range s {
		if sp.Type == t {
			return sp, true
		}
	}
	return Subpacket{}, false
}

func parseSubpackets(area cryptobyte.String) (Subpackets, error) {
	var list Subpackets
	for !area.Empty() {
		n, octets, err := readSubpacketLength(&area)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, errors.Wrap(ErrCorruptPacket, "empty subpacket")
		}
		var body []byte
		if !area.ReadBytes(&body, n) {
			return nil, errors.WithStack(ErrTruncated)
		}
		list = append(list, Subpacket{
			Type:         SubpacketType(body[0] & 0x7F),
			Critical:     body[0]&0x80 != 0,
			Data:         nonEmpty(body[1:]),
			LengthOctets: octets,
		})
	}
	return list, nil
}

func (s Subpackets) marshal(b *cryptobyte.Builder) {
	for _, sp := range s {
		addSubpacketLength(b, 1+len(sp.Data), sp.LengthOctets)
		t := uint8(sp.Type) & 0x7F
		if sp.Critical {
			t |= 0x80
		}
		b.AddUint8(t)
		b.AddBytes(sp.Data)
	}
}
