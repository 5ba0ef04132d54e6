package packet

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/algorithm"
	"golang.org/x/crypto/cryptobyte"
)

// ConsoleFilename marks literal data that should not be written to disk
const ConsoleFilename = "_CONSOLE"

// LiteralData is a Literal Data packet
type LiteralData struct {
	Format algorithm.LiteralFormat
	// Filename is at most 255 octets
	Filename string
	Modified time.Time
	Contents []byte
}

// Tag returns TagLiteralData
func (l *LiteralData) Tag() Tag { return TagLiteralData }

// ForYourEyesOnly returns true if the sender asked for the data
// not to be stored
func (l *LiteralData) ForYourEyesOnly() bool {
	return l.Filename == ConsoleFilename
}

func (l *LiteralData) parse(r *reader) error {
	format, err := r.u8()
	if err != nil {
		return err
	}
	name, err := r.lengthPrefixed()
	if err != nil {
		return err
	}
	modified, err := r.timestamp()
	if err != nil {
		return err
	}
	l.Format = algorithm.LiteralFormat(format)
	l.Filename = string(name)
	l.Modified = modified
	l.Contents = r.rest()
	return nil
}

func (l *LiteralData) marshal(w *writer) error {
	if len(l.Filename) > 255 {
		return errors.Errorf("filename is %d octets, maximum is 255", len(l.Filename))
	}
	w.AddUint8(uint8(l.Format))
	w.AddUint8LengthPrefixed(func(b *cryptobyte.Builder) {
		b.AddBytes([]byte(l.Filename))
	})
	if err := w.timestamp(l.Modified); err != nil {
		return err
	}
	w.AddBytes(l.Contents)
	return nil
}
