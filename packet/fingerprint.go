package packet

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Fingerprint is the SHA-1 fingerprint of a version 4 key
type Fingerprint [20]byte

// String returns upper-case hex
func (f Fingerprint) String() string {
	return strings.ToUpper(hex.EncodeToString(f[:]))
}

// KeyID returns the low 64 bits of the fingerprint
func (f Fingerprint) KeyID() KeyID {
	return KeyID(binary.BigEndian.Uint64(f[12:]))
}

// ParseFingerprint parses a hex fingerprint; spaces are ignored
func ParseFingerprint(s string) (Fingerprint, error) {
	var f Fingerprint
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		return f, errors.WithMessagef(err, "invalid fingerprint %q", s)
	}
	if len(b) != len(f) {
		return f, errors.Errorf("invalid fingerprint %q: expected %d octets", s, len(f))
	}
	copy(f[:], b)
	return f, nil
}

// KeyID identifies a key by the low 64 bits of its fingerprint
type KeyID uint64

// String returns 16 upper-case hex digits
func (id KeyID) String() string {
	return fmt.Sprintf("%016X", uint64(id))
}

// Bytes returns the big-endian octets
func (id KeyID) Bytes() []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, 8), uint64(id))
}

// ParseKeyID parses 16 hex digits, with an optional 0x prefix
func ParseKeyID(s string) (KeyID, error) {
	h := strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	b, err := hex.DecodeString(h)
	if err != nil {
		return 0, errors.WithMessagef(err, "invalid key ID %q", s)
	}
	if len(b) != 8 {
		return 0, errors.Errorf("invalid key ID %q: expected 8 octets", s)
	}
	return KeyID(binary.BigEndian.Uint64(b)), nil
}
