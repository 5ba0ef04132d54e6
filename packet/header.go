package packet

import (
	"math"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
)

// Format of the packet header
type Format uint8

// Header formats
const (
	FormatOld Format = iota
	FormatNew
)

func (f Format) String() string {
	if f == FormatOld {
		return "old"
	}
	return "new"
}

// MaxTag is the largest tag a new-format header can carry
const MaxTag = 63

// Header is the packet tag and body length
type Header struct {
	Tag    Tag
	Length int
	Format Format
}

// ParseHeader reads a packet header and advances the cursor past it.
//
// Old-format headers with indeterminate length and new-format partial body
// lengths are not supported, since the body must be fully buffered.
func ParseHeader(s *cryptobyte.String) (Header, error) {
	var h Header
	var ctb uint8
	if !s.ReadUint8(&ctb) {
		return h, errors.WithStack(ErrTruncated)
	}
	if ctb&0x80 == 0 {
		return h, errors.Wrapf(ErrCorruptPacket, "invalid header octet 0x%02X", ctb)
	}

	if ctb&0x40 == 0 {
		h.Format = FormatOld
		h.Tag = Tag((ctb >> 2) & 0x0F)
		switch ctb & 0x03 {
		case 0:
			var n uint8
			if !s.ReadUint8(&n) {
				return h, errors.WithStack(ErrTruncated)
			}
			h.Length = int(n)
		case 1:
			var n uint16
			if !s.ReadUint16(&n) {
				return h, errors.WithStack(ErrTruncated)
			}
			h.Length = int(n)
		case 2:
			var n uint32
			if !s.ReadUint32(&n) {
				return h, errors.WithStack(ErrTruncated)
			}
			l, err := toLength(n)
			if err != nil {
				return h, err
			}
			h.Length = l
		default:
			return h, errors.Wrap(ErrUnsupported, "indeterminate length")
		}
	} else {
		h.Format = FormatNew
		h.Tag = Tag(ctb & 0x3F)
		l, err := readLength(s, true)
		if err != nil {
			return h, err
		}
		h.Length = l
	}

	if h.Tag == 0 {
		return h, errors.Wrap(ErrCorruptPacket, "reserved tag 0")
	}
	return h, nil
}

// Marshal appends the header in the new format with the shortest length encoding
func (h Header) Marshal(b *cryptobyte.Builder) error {
	if h.Tag == 0 || h.Tag > MaxTag {
		return errors.Errorf("invalid tag %d", h.Tag)
	}
	if h.Length < 0 || uint64(h.Length) > math.MaxUint32 {
		return errors.Wrapf(ErrMalformedLength, "length %d", h.Length)
	}
	b.AddUint8(0xC0 | uint8(h.Tag))
	addLength(b, h.Length)
	return nil
}

// EncodeHeader returns the new-format header for the tag and body length
func EncodeHeader(tag Tag, length int) ([]byte, error) {
	b := cryptobyte.NewBuilder(make([]byte, 0, 6))
	if err := (Header{Tag: tag, Length: length, Format: FormatNew}).Marshal(b); err != nil {
		return nil, err
	}
	return b.Bytes()
}

// readLength reads a new-format length; in a packet header the octets
// 224..254 start a partial body length, elsewhere they are two-octet lengths
func readLength(s *cryptobyte.String, header bool) (int, error) {
	var first uint8
	if !s.ReadUint8(&first) {
		return 0, errors.WithStack(ErrTruncated)
	}
	switch {
	case first < 192:
		return int(first), nil
	case first < 224 || (!header && first < 255):
		var second uint8
		if !s.ReadUint8(&second) {
			return 0, errors.WithStack(ErrTruncated)
		}
		return (int(first)-192)<<8 + int(second) + 192, nil
	case first == 255:
		var n uint32
		if !s.ReadUint32(&n) {
			return 0, errors.WithStack(ErrTruncated)
		}
		return toLength(n)
	}
	return 0, errors.Wrap(ErrUnsupported, "partial body length")
}

// addLength appends the shortest new-format encoding of n
func addLength(b *cryptobyte.Builder, n int) {
	switch {
	case n < 192:
		b.AddUint8(uint8(n))
	case n < 8384:
		n -= 192
		b.AddUint8(uint8(n>>8) + 192)
		b.AddUint8(uint8(n))
	default:
		b.AddUint8(255)
		b.AddUint32(uint32(n))
	}
}

// readSubpacketLength reads a subpacket length. octets is the size of the
// length encoding when it differs from the one addLength writes, else zero.
func readSubpacketLength(s *cryptobyte.String) (n, octets int, err error) {
	before := len(*s)
	n, err = readLength(s, false)
	if err != nil {
		return 0, 0, err
	}
	if used := before - len(*s); used != lengthOctets(n) {
		octets = used
	}
	return n, octets, nil
}

// addSubpacketLength appends n in the encoding of the given size, falling
// back to the shortest one when that size is zero or cannot hold n
func addSubpacketLength(b *cryptobyte.Builder, n, octets int) {
	switch {
	case octets == 5:
		b.AddUint8(255)
		b.AddUint32(uint32(n))
	case octets == 2 && n >= 192 && n < 16320:
		n -= 192
		b.AddUint8(uint8(n>>8) + 192)
		b.AddUint8(uint8(n))
	default:
		addLength(b, n)
	}
}

func lengthOctets(n int) int {
	switch {
	case n < 192:
		return 1
	case n < 8384:
		return 2
	}
	return 5
}

func toLength(n uint32) (int, error) {
	if uint64(n) > uint64(math.MaxInt) {
		return 0, errors.Wrapf(ErrMalformedLength, "length %d", n)
	}
	return int(n), nil
}
