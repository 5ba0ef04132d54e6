package packet

import (
	"bytes"
	"crypto/sha1"

	"github.com/cockroachdb/errors"
)

// UnknownVersion is a versioned packet whose version has no known layout.
// The body after the version octet is kept verbatim.
type UnknownVersion struct {
	PacketTag  Tag
	RawVersion uint8
	Body       []byte
}

// Tag returns the packet tag
func (p *UnknownVersion) Tag() Tag { return p.PacketTag }

// Version returns the raw version octet
func (p *UnknownVersion) Version() uint8 { return p.RawVersion }

func (p *UnknownVersion) parse(r *reader) error {
	p.Body = r.rest()
	return nil
}

func (p *UnknownVersion) marshal(w *writer) error {
	w.AddBytes(p.Body)
	return nil
}

// OpaquePacket is a packet with an unknown tag. The body is kept verbatim.
type OpaquePacket struct {
	PacketTag Tag
	Body      []byte
}

// Tag returns the packet tag
func (p *OpaquePacket) Tag() Tag { return p.PacketTag }

func (p *OpaquePacket) parse(r *reader) error {
	p.Body = r.rest()
	return nil
}

func (p *OpaquePacket) marshal(w *writer) error {
	w.AddBytes(p.Body)
	return nil
}

// SymmetricallyEncryptedData is a Symmetrically Encrypted Data packet
type SymmetricallyEncryptedData struct {
	Data []byte
}

// Tag returns TagSymmetricallyEncrypted
func (p *SymmetricallyEncryptedData) Tag() Tag { return TagSymmetricallyEncrypted }

func (p *SymmetricallyEncryptedData) parse(r *reader) error {
	p.Data = r.rest()
	return nil
}

func (p *SymmetricallyEncryptedData) marshal(w *writer) error {
	w.AddBytes(p.Data)
	return nil
}

// IntegrityProtectedDataV1 is a version 1 Symmetrically Encrypted
// Integrity Protected Data packet
type IntegrityProtectedDataV1 struct {
	Data []byte
}

// Tag returns TagIntegrityProtectedData
func (p *IntegrityProtectedDataV1) Tag() Tag { return TagIntegrityProtectedData }

// Version returns 1
func (p *IntegrityProtectedDataV1) Version() uint8 { return 1 }

func (p *IntegrityProtectedDataV1) parse(r *reader) error {
	p.Data = r.rest()
	return nil
}

func (p *IntegrityProtectedDataV1) marshal(w *writer) error {
	w.AddBytes(p.Data)
	return nil
}

var markerBody = []byte("PGP")

// Marker is a Marker packet; its body is always "PGP"
type Marker struct{}

// Tag returns TagMarker
func (p *Marker) Tag() Tag { return TagMarker }

func (p *Marker) parse(r *reader) error {
	if b := r.rest(); !bytes.Equal(b, markerBody) {
		return errors.Wrapf(ErrCorruptPacket, "marker %q", b)
	}
	return nil
}

func (p *Marker) marshal(w *writer) error {
	w.AddBytes(markerBody)
	return nil
}

// ModificationDetectionCode is a Modification Detection Code packet
type ModificationDetectionCode struct {
	Hash [sha1.Size]byte
}

// Tag returns TagModificationDetectionCode
func (p *ModificationDetectionCode) Tag() Tag { return TagModificationDetectionCode }

func (p *ModificationDetectionCode) parse(r *reader) error {
	b, err := r.bytes(sha1.Size)
	if err != nil {
		return err
	}
	copy(p.Hash[:], b)
	return nil
}

func (p *ModificationDetectionCode) marshal(w *writer) error {
	w.AddBytes(p.Hash[:])
	return nil
}
