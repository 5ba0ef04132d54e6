package packet

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
)

// AttributeType identifies a user attribute subpacket
type AttributeType uint8

// AttributeImage is the image attribute subpacket
const AttributeImage AttributeType = 1

// ImageEncodingJPEG is the only defined image encoding
const ImageEncodingJPEG = 1

// imageHeaderLength covers the little-endian length, version, encoding
// and 12 reserved octets
const imageHeaderLength = 16

// AttributeSubpacket is a user attribute subpacket; Data is kept verbatim
type AttributeSubpacket struct {
	Type AttributeType
	Data []byte
	// LengthOctets keeps a non-shortest length encoding, see Subpacket
	LengthOctets int
}

// NewImageSubpacket returns an image subpacket for a JPEG image
func NewImageSubpacket(jpeg []byte) AttributeSubpacket {
	data := make([]byte, imageHeaderLength, imageHeaderLength+len(jpeg))
	binary.LittleEndian.PutUint16(data, imageHeaderLength)
	data[2] = 1
	data[3] = ImageEncodingJPEG
	return AttributeSubpacket{Type: AttributeImage, Data: append(data, jpeg...)}
}

// UserAttribute is a User Attribute packet
type UserAttribute struct {
	Subpackets []AttributeSubpacket
}

// Tag returns TagUserAttribute
func (u *UserAttribute) Tag() Tag { return TagUserAttribute }

// Image returns the JPEG data of the first image subpacket
func (u *UserAttribute) Image() ([]byte, error) {
	for _, sp := range u.Subpackets {
		if sp.Type != AttributeImage {
			continue
		}
		if len(sp.Data) < 4 {
			return nil, errors.Wrap(ErrCorruptPacket, "image header is truncated")
		}
		n := int(binary.LittleEndian.Uint16(sp.Data))
		if n < 4 || n > len(sp.Data) {
			return nil, errors.Wrapf(ErrCorruptPacket, "image header length %d", n)
		}
		if sp.Data[2] != 1 || sp.Data[3] != ImageEncodingJPEG {
			return nil, errors.Wrapf(ErrUnsupported, "image header version %d, encoding %d", sp.Data[2], sp.Data[3])
		}
		return sp.Data[n:], nil
	}
	return nil, errors.New("no image subpacket")
}

func (u *UserAttribute) parse(r *reader) error {
	area := cryptobyte.String(r.rest())
	for !area.Empty() {
		n, octets, err := readSubpacketLength(&area)
		if err != nil {
			return err
		}
		if n == 0 {
			return errors.Wrap(ErrCorruptPacket, "empty attribute subpacket")
		}
		var body []byte
		if !area.ReadBytes(&body, n) {
			return errors.WithStack(ErrTruncated)
		}
		u.Subpackets = append(u.Subpackets, AttributeSubpacket{
			Type:         AttributeType(body[0]),
			Data:         nonEmpty(body[1:]),
			LengthOctets: octets,
		})
	}
	return nil
}

func (u *UserAttribute) marshal(w *writer) error {
	for _, sp := range u.Subpackets {
		addSubpacketLength(w.Builder, 1+len(sp.Data), sp.LengthOctets)
		w.AddUint8(uint8(sp.Type))
		w.AddBytes(sp.Data)
	}
	return nil
}
