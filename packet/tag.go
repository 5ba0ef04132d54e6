package packet

import "fmt"

// Tag identifies the packet type
type Tag uint8

// Packet tags
const (
	TagPKESessionKey             Tag = 1
	TagSignature                 Tag = 2
	TagSKESessionKey             Tag = 3
	TagOnePassSignature          Tag = 4
	TagPrivateKey                Tag = 5
	TagPublicKey                 Tag = 6
	TagPrivateSubkey             Tag = 7
	TagCompressedData            Tag = 8
	TagSymmetricallyEncrypted    Tag = 9
	TagMarker                    Tag = 10
	TagLiteralData               Tag = 11
	TagTrust                     Tag = 12
	TagUserID                    Tag = 13
	TagPublicSubkey              Tag = 14
	TagUserAttribute             Tag = 17
	TagIntegrityProtectedData    Tag = 18
	TagModificationDetectionCode Tag = 19
)

// TagName provides map of names
var TagName = map[Tag]string{
	TagPKESessionKey:             "PKESessionKey",
	TagSignature:                 "Signature",
	TagSKESessionKey:             "SKESessionKey",
	TagOnePassSignature:          "OnePassSignature",
	TagPrivateKey:                "PrivateKey",
	TagPublicKey:                 "PublicKey",
	TagPrivateSubkey:             "PrivateSubkey",
	TagCompressedData:            "CompressedData",
	TagSymmetricallyEncrypted:    "SymmetricallyEncryptedData",
	TagMarker:                    "Marker",
	TagLiteralData:               "LiteralData",
	TagTrust:                     "Trust",
	TagUserID:                    "UserID",
	TagPublicSubkey:              "PublicSubkey",
	TagUserAttribute:             "UserAttribute",
	TagIntegrityProtectedData:    "IntegrityProtectedData",
	TagModificationDetectionCode: "ModificationDetectionCode",
}

func (t Tag) String() string {
	if n, ok := TagName[t]; ok {
		return n
	}
	return fmt.Sprintf("Tag(%d)", uint8(t))
}
