package packet

import "github.com/effective-security/xpgp/algorithm"

// Trust is a Trust packet as written by GnuPG into key rings:
// the level in the low 4 bits and flags above them, in 2 octets
type Trust struct {
	Level algorithm.TrustLevel
	Flags algorithm.TrustFlags
}

// Tag returns TagTrust
func (t *Trust) Tag() Tag { return TagTrust }

// Packed returns the 2-octet value
func (t *Trust) Packed() uint16 {
	return uint16(t.Level)&algorithm.TrustLevelMask | uint16(t.Flags)&^algorithm.TrustLevelMask
}

// Unpack sets the level and flags from the 2-octet value
func (t *Trust) Unpack(v uint16) {
	t.Level = algorithm.TrustLevel(v & algorithm.TrustLevelMask)
	t.Flags = algorithm.TrustFlags(v &^ algorithm.TrustLevelMask)
}

func (t *Trust) parse(r *reader) error {
	v, err := r.u16()
	if err != nil {
		return err
	}
	t.Unpack(v)
	return nil
}

func (t *Trust) marshal(w *writer) error {
	w.AddUint16(t.Packed())
	return nil
}
