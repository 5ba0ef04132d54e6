// Package mpi implements the OpenPGP multiprecision integer field (RFC 4880, section 3.2).
package mpi

import (
	"bytes"
	"math/big"
	"math/bits"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
)

// ErrTruncated is returned when the input ends inside an MPI
var ErrTruncated = errors.New("mpi: truncated")

// MPI is a multiprecision integer: a two-octet bit count followed by
// the big-endian magnitude. The bit count is kept as read, so a value
// with a non-canonical count still serializes to the same octets.
type MPI struct {
	bits  uint16
	bytes []byte
}

// New returns MPI for the big-endian magnitude b, with leading zero octets removed
func New(b []byte) MPI {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	m := MPI{bytes: b}
	if len(b) > 0 {
		m.bits = uint16(8*(len(b)-1) + bits.Len8(b[0]))
	}
	return m
}

// FromBig returns MPI for the non-negative integer n
func FromBig(n *big.Int) MPI {
	return New(n.Bytes())
}

// Bytes returns the big-endian magnitude
func (m MPI) Bytes() []byte {
	return m.bytes
}

// BitLength returns the declared bit count
func (m MPI) BitLength() uint16 {
	return m.bits
}

// EncodedLength returns the number of octets Marshal produces
func (m MPI) EncodedLength() int {
	return 2 + len(m.bytes)
}

// Big returns the value as big.Int
func (m MPI) Big() *big.Int {
	return new(big.Int).SetBytes(m.bytes)
}

// Equal returns true if both values encode to the same octets
func (m MPI) Equal(o MPI) bool {
	return m.bits == o.bits && bytes.Equal(m.bytes, o.bytes)
}

// Parse reads MPI from the cursor
func (m *MPI) Parse(s *cryptobyte.String) error {
	var n uint16
	var b []byte
	if !s.ReadUint16(&n) {
		return errors.WithStack(ErrTruncated)
	}
	if size := (int(n) + 7) / 8; size > 0 && !s.ReadBytes(&b, size) {
		return errors.WithStack(ErrTruncated)
	}
	m.bits = n
	m.bytes = b
	return nil
}

// Marshal appends the encoded MPI
func (m MPI) Marshal(b *cryptobyte.Builder) {
	b.AddUint16(m.bits)
	b.AddBytes(m.bytes)
}

// Checksum returns the sum of the encoded octets of the values, modulo 65536
func Checksum(values ...MPI) uint16 {
	var sum uint16
	for _, m := range values {
		sum += m.bits>>8 + m.bits&0xFF
		for _, c := range m.bytes {
			sum += uint16(c)
		}
	}
	return sum
}
