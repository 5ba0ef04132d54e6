package packet

import (
	"encoding/binary"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
)

// field is a variable-length body field that frames itself
type field interface {
	Parse(s *cryptobyte.String) error
	Marshal(b *cryptobyte.Builder)
}

// reader is the cursor over a packet body
type reader struct {
	s      cryptobyte.String
	codec  *Codec
	depth  int
	budget *budget
}

func (r *reader) empty() bool {
	return r.s.Empty()
}

func (r *reader) u8() (uint8, error) {
	var v uint8
	if !r.s.ReadUint8(&v) {
		return 0, errors.WithStack(ErrTruncated)
	}
	return v, nil
}

func (r *reader) u16() (uint16, error) {
	var v uint16
	if !r.s.ReadUint16(&v) {
		return 0, errors.WithStack(ErrTruncated)
	}
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	var v uint32
	if !r.s.ReadUint32(&v) {
		return 0, errors.WithStack(ErrTruncated)
	}
	return v, nil
}

func (r *reader) keyID() (KeyID, error) {
	b, err := r.bytes(8)
	if err != nil {
		return 0, err
	}
	return KeyID(binary.BigEndian.Uint64(b)), nil
}

func (r *reader) timestamp() (time.Time, error) {
	v, err := r.u32()
	if err != nil {
		return time.Time{}, err
	}
	return fromTimestamp(v), nil
}

func (r *reader) bytes(n int) ([]byte, error) {
	var b []byte
	if n > 0 && !r.s.ReadBytes(&b, n) {
		return nil, errors.WithStack(ErrTruncated)
	}
	return b, nil
}

// lengthPrefixed reads a field with a one-octet length
func (r *reader) lengthPrefixed() ([]byte, error) {
	var b cryptobyte.String
	if !r.s.ReadUint8LengthPrefixed(&b) {
		return nil, errors.WithStack(ErrTruncated)
	}
	return nonEmpty(b), nil
}

// area reads a field with a two-octet length
func (r *reader) area() (cryptobyte.String, error) {
	var b cryptobyte.String
	if !r.s.ReadUint16LengthPrefixed(&b) {
		return nil, errors.WithStack(ErrTruncated)
	}
	return b, nil
}

// rest consumes the remainder of the body
func (r *reader) rest() []byte {
	b := nonEmpty(r.s)
	r.s = nil
	return b
}

func (r *reader) field(name string, f field) error {
	if err := f.Parse(&r.s); err != nil {
		return newFieldError(name, err)
	}
	return nil
}

// writer builds a packet body
type writer struct {
	*cryptobyte.Builder
	codec *Codec
	depth int
}

func (w *writer) timestamp(t time.Time) error {
	v, err := toTimestamp(t)
	if err != nil {
		return err
	}
	w.AddUint32(v)
	return nil
}

func (w *writer) keyID(id KeyID) {
	w.AddBytes(id.Bytes())
}

func (w *writer) field(name string, f field) error {
	if f == nil {
		return errors.Errorf("%s is not set", name)
	}
	f.Marshal(w.Builder)
	return nil
}

// fromTimestamp converts seconds since the epoch; zero means not set
func fromTimestamp(v uint32) time.Time {
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(int64(v), 0).UTC()
}

func toTimestamp(t time.Time) (uint32, error) {
	if t.IsZero() {
		return 0, nil
	}
	v := t.Unix()
	if v <= 0 || v > int64(^uint32(0)) {
		return 0, errors.Errorf("timestamp out of range: %s", t.UTC().Format(time.RFC3339))
	}
	return uint32(v), nil
}

func nonEmpty(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	return b
}
