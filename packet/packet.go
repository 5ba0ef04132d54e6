package packet

import (
	"sort"

	"github.com/effective-security/xlog"
)

// Packet is an OpenPGP packet
type Packet interface {
	// Tag returns the packet type
	Tag() Tag

	parse(r *reader) error
	marshal(w *writer) error
}

// VersionedPacket is a packet whose body starts with a version octet.
// The codec reads and writes the version octet, so the layout of the rest
// of the body is selected by it.
type VersionedPacket interface {
	Packet
	// Version returns the version octet
	Version() uint8
}

// versioned maps a packet tag to the body layouts known for each version
var versioned = map[Tag]map[uint8]func() VersionedPacket{
	TagPKESessionKey:          {3: func() VersionedPacket { return new(PKESessionKeyV3) }},
	TagSignature:              {4: func() VersionedPacket { return new(SignatureV4) }},
	TagSKESessionKey:          {4: func() VersionedPacket { return new(SKESessionKeyV4) }},
	TagOnePassSignature:       {3: func() VersionedPacket { return new(OnePassSignatureV3) }},
	TagPrivateKey:             {4: func() VersionedPacket { return new(PrivateKeyV4) }},
	TagPublicKey:              {4: func() VersionedPacket { return new(PublicKeyV4) }},
	TagPrivateSubkey:          {4: func() VersionedPacket { return new(PrivateSubkeyV4) }},
	TagPublicSubkey:           {4: func() VersionedPacket { return new(PublicSubkeyV4) }},
	TagIntegrityProtectedData: {1: func() VersionedPacket { return new(IntegrityProtectedDataV1) }},
}

var unversioned = map[Tag]func() Packet{
	TagCompressedData:            func() Packet { return new(CompressedData) },
	TagSymmetricallyEncrypted:    func() Packet { return new(SymmetricallyEncryptedData) },
	TagMarker:                    func() Packet { return new(Marker) },
	TagLiteralData:               func() Packet { return new(LiteralData) },
	TagTrust:                     func() Packet { return new(Trust) },
	TagUserID:                    func() Packet { return new(UserID) },
	TagUserAttribute:             func() Packet { return new(UserAttribute) },
	TagModificationDetectionCode: func() Packet { return new(ModificationDetectionCode) },
}

// IsVersioned returns true if the packet body for the tag starts with a version octet
func IsVersioned(tag Tag) bool {
	_, ok := versioned[tag]
	return ok
}

// Versions returns the known versions for the tag, in ascending order
func Versions(tag Tag) []uint8 {
	var list []uint8
	for v := range versioned[tag] {
		list = append(list, v)
	}
	sort.Slice(list, func(i, j int) bool { return list[i] < list[j] })
	return list
}

// New returns an empty packet for the tag and version.
// The version is ignored for tags that are not versioned.
// An unknown version of a versioned tag yields *UnknownVersion,
// and an unknown tag yields *OpaquePacket.
func New(tag Tag, version uint8) Packet {
	if layouts, ok := versioned[tag]; ok {
		if f, ok := layouts[version]; ok {
			return f()
		}
		logger.KV(xlog.DEBUG, "reason", "unknown_version", "tag", tag, "version", version)
		return &UnknownVersion{PacketTag: tag, RawVersion: version}
	}
	if f, ok := unversioned[tag]; ok {
		return f()
	}
	logger.KV(xlog.DEBUG, "reason", "unknown_tag", "tag", uint8(tag))
	return &OpaquePacket{PacketTag: tag}
}
