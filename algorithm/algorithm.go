package algorithm

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// PubKey is a public-key algorithm identifier
type PubKey uint8

// Public-key algorithms
const (
	RSAEncryptOrSign             PubKey = 1
	RSAEncrypt                   PubKey = 2
	RSASign                      PubKey = 3
	ElGamal                      PubKey = 16
	DSA                          PubKey = 17
	ECDH                         PubKey = 18
	ECDSA                        PubKey = 19
	FormerlyElGamalEncryptOrSign PubKey = 20
	DiffieHellman                PubKey = 21
	EdDSA                        PubKey = 22
)

// PubKeyName provides map of names
var PubKeyName = map[PubKey]string{
	RSAEncryptOrSign:             "RSAEncryptOrSign",
	RSAEncrypt:                   "RSAEncrypt",
	RSASign:                      "RSASign",
	ElGamal:                      "ElGamal",
	DSA:                          "DSA",
	ECDH:                         "ECDH",
	ECDSA:                        "ECDSA",
	FormerlyElGamalEncryptOrSign: "FormerlyElGamalEncryptOrSign",
	DiffieHellman:                "DiffieHellman",
	EdDSA:                        "EdDSA",
}

// IsKnown returns true if the identifier is assigned
func (a PubKey) IsKnown() bool {
	_, ok := PubKeyName[a]
	return ok
}

// IsRSA returns true for the RSA family
func (a PubKey) IsRSA() bool {
	return a == RSAEncryptOrSign || a == RSAEncrypt || a == RSASign
}

// IsElGamal returns true for the ElGamal family
func (a PubKey) IsElGamal() bool {
	return a == ElGamal || a == FormerlyElGamalEncryptOrSign
}

func (a PubKey) String() string {
	return name(PubKeyName, a)
}

// Symmetric is a symmetric-key algorithm identifier
type Symmetric uint8

// Symmetric-key algorithms
const (
	Plaintext   Symmetric = 0
	IDEA        Symmetric = 1
	TripleDES   Symmetric = 2
	CAST5       Symmetric = 3
	Blowfish    Symmetric = 4
	AES128      Symmetric = 7
	AES192      Symmetric = 8
	AES256      Symmetric = 9
	Twofish256  Symmetric = 10
	Camellia128 Symmetric = 11
	Camellia192 Symmetric = 12
	Camellia256 Symmetric = 13
)

// SymmetricName provides map of names
var SymmetricName = map[Symmetric]string{
	Plaintext:   "Plaintext",
	IDEA:        "IDEA",
	TripleDES:   "TripleDES",
	CAST5:       "CAST5",
	Blowfish:    "Blowfish",
	AES128:      "AES128",
	AES192:      "AES192",
	AES256:      "AES256",
	Twofish256:  "Twofish256",
	Camellia128: "Camellia128",
	Camellia192: "Camellia192",
	Camellia256: "Camellia256",
}

// IsKnown returns true if the identifier is assigned
func (a Symmetric) IsKnown() bool {
	_, ok := SymmetricName[a]
	return ok
}

// BlockSize returns the cipher block size in octets,
// or 0 if the algorithm is not known.
func (a Symmetric) BlockSize() int {
	switch a {
	case IDEA, TripleDES, CAST5, Blowfish:
		return 8
	case AES128, AES192, AES256, Twofish256, Camellia128, Camellia192, Camellia256:
		return 16
	}
	return 0
}

func (a Symmetric) String() string {
	return name(SymmetricName, a)
}

// Hash is a hash algorithm identifier
type Hash uint8

// Hash algorithms
const (
	MD5       Hash = 1
	SHA1      Hash = 2
	RIPEMD160 Hash = 3
	SHA256    Hash = 8
	SHA384    Hash = 9
	SHA512    Hash = 10
	SHA224    Hash = 11
)

// HashName provides map of names
var HashName = map[Hash]string{
	MD5:       "MD5",
	SHA1:      "SHA1",
	RIPEMD160: "RIPEMD160",
	SHA256:    "SHA256",
	SHA384:    "SHA384",
	SHA512:    "SHA512",
	SHA224:    "SHA224",
}

// IsKnown returns true if the identifier is assigned
func (a Hash) IsKnown() bool {
	_, ok := HashName[a]
	return ok
}

func (a Hash) String() string {
	return name(HashName, a)
}

// Compression is a compression algorithm identifier
type Compression uint8

// Compression algorithms
const (
	Uncompressed Compression = 0
	ZIP          Compression = 1
	ZLIB         Compression = 2
	BZip2        Compression = 3
)

// CompressionName provides map of names
var CompressionName = map[Compression]string{
	Uncompressed: "Uncompressed",
	ZIP:          "ZIP",
	ZLIB:         "ZLIB",
	BZip2:        "BZip2",
}

// IsKnown returns true if the identifier is assigned
func (a Compression) IsKnown() bool {
	_, ok := CompressionName[a]
	return ok
}

func (a Compression) String() string {
	return name(CompressionName, a)
}

// ParseCompression returns the compression algorithm by its case-insensitive name
func ParseCompression(s string) (Compression, error) {
	for k, v := range CompressionName {
		if strings.EqualFold(v, s) {
			return k, nil
		}
	}
	if strings.EqualFold(s, "none") {
		return Uncompressed, nil
	}
	return 0, errors.Errorf("unknown compression algorithm: %q", s)
}

// SignatureType is a signature type identifier
type SignatureType uint8

// Signature types
const (
	BinaryDocument         SignatureType = 0x00
	CanonicalDocument      SignatureType = 0x01
	Standalone             SignatureType = 0x02
	GenericCert            SignatureType = 0x10
	PersonaCert            SignatureType = 0x11
	CasualCert             SignatureType = 0x12
	PositiveCert           SignatureType = 0x13
	SubkeyBinding          SignatureType = 0x18
	PrimaryKeyBinding      SignatureType = 0x19
	DirectlyOnKey          SignatureType = 0x1F
	KeyRevocation          SignatureType = 0x20
	SubkeyRevocation       SignatureType = 0x28
	CertRevocation         SignatureType = 0x30
	Timestamp              SignatureType = 0x40
	ThirdPartyConfirmation SignatureType = 0x50
)

// SignatureTypeName provides map of names
var SignatureTypeName = map[SignatureType]string{
	BinaryDocument:         "BinaryDocument",
	CanonicalDocument:      "CanonicalDocument",
	Standalone:             "Standalone",
	GenericCert:            "GenericCert",
	PersonaCert:            "PersonaCert",
	CasualCert:             "CasualCert",
	PositiveCert:           "PositiveCert",
	SubkeyBinding:          "SubkeyBinding",
	PrimaryKeyBinding:      "PrimaryKeyBinding",
	DirectlyOnKey:          "DirectlyOnKey",
	KeyRevocation:          "KeyRevocation",
	SubkeyRevocation:       "SubkeyRevocation",
	CertRevocation:         "CertRevocation",
	Timestamp:              "Timestamp",
	ThirdPartyConfirmation: "ThirdPartyConfirmation",
}

// IsKnown returns true if the identifier is assigned
func (t SignatureType) IsKnown() bool {
	_, ok := SignatureTypeName[t]
	return ok
}

func (t SignatureType) String() string {
	return name(SignatureTypeName, t)
}

// S2KType is a string-to-key specifier type
type S2KType uint8

// S2K specifier types
const (
	S2KSimple         S2KType = 0
	S2KSalted         S2KType = 1
	S2KIteratedSalted S2KType = 3
	// S2KGNU is the GnuPG private extension, used for stubbed secret keys
	S2KGNU S2KType = 101
)

// S2KTypeName provides map of names
var S2KTypeName = map[S2KType]string{
	S2KSimple:         "Simple",
	S2KSalted:         "Salted",
	S2KIteratedSalted: "IteratedSalted",
	S2KGNU:            "GNUExtension",
}

// IsKnown returns true if the identifier is assigned
func (t S2KType) IsKnown() bool {
	_, ok := S2KTypeName[t]
	return ok
}

func (t S2KType) String() string {
	return name(S2KTypeName, t)
}

// TrustLevel is the ownertrust level kept in the low 4 bits of a Trust packet
type TrustLevel uint8

// Trust levels
const (
	TrustUnknown   TrustLevel = 0
	TrustExpired   TrustLevel = 1
	TrustUndefined TrustLevel = 2
	TrustNever     TrustLevel = 3
	TrustMarginal  TrustLevel = 4
	TrustFully     TrustLevel = 5
	TrustUltimate  TrustLevel = 6
)

// TrustLevelMask selects the level bits of a packed trust value
const TrustLevelMask = 0x0F

// TrustLevelName provides map of names
var TrustLevelName = map[TrustLevel]string{
	TrustUnknown:   "Unknown",
	TrustExpired:   "Expired",
	TrustUndefined: "Undefined",
	TrustNever:     "Never",
	TrustMarginal:  "Marginal",
	TrustFully:     "Fully",
	TrustUltimate:  "Ultimate",
}

// IsKnown returns true if the identifier is assigned
func (l TrustLevel) IsKnown() bool {
	_, ok := TrustLevelName[l]
	return ok
}

func (l TrustLevel) String() string {
	return name(TrustLevelName, l)
}

// TrustFlags is the bit set kept above the level bits of a Trust packet
type TrustFlags uint16

// Trust flags
const (
	TrustRevoked      TrustFlags = 0x20
	TrustSubRevoked   TrustFlags = 0x40
	TrustDisabled     TrustFlags = 0x80
	TrustPendingCheck TrustFlags = 0x100
)

// Has returns true if all bits of f are set
func (t TrustFlags) Has(f TrustFlags) bool {
	return t&f == f
}

// List returns the known flags that are set, in ascending bit order
func (t TrustFlags) List() []TrustFlags {
	var list []TrustFlags
	for _, f := range []TrustFlags{TrustRevoked, TrustSubRevoked, TrustDisabled, TrustPendingCheck} {
		if t.Has(f) {
			list = append(list, f)
		}
	}
	return list
}

// LiteralFormat is the one-octet format of a Literal Data packet
type LiteralFormat uint8

// Literal data formats
const (
	LiteralBinary LiteralFormat = 'b'
	LiteralText   LiteralFormat = 't'
	LiteralUTF8   LiteralFormat = 'u'
	// LiteralLocal is the deprecated machine-local mode
	LiteralLocal LiteralFormat = 'l'
)

// LiteralFormatName provides map of names
var LiteralFormatName = map[LiteralFormat]string{
	LiteralBinary: "binary",
	LiteralText:   "text",
	LiteralUTF8:   "utf8",
	LiteralLocal:  "local",
}

// IsKnown returns true if the identifier is assigned
func (f LiteralFormat) IsKnown() bool {
	_, ok := LiteralFormatName[f]
	return ok
}

func (f LiteralFormat) String() string {
	return name(LiteralFormatName, f)
}

// ParseLiteralFormat returns the format by its name or by its octet value
func ParseLiteralFormat(s string) (LiteralFormat, error) {
	for k, v := range LiteralFormatName {
		if strings.EqualFold(v, s) || (len(s) == 1 && s[0] == byte(k)) {
			return k, nil
		}
	}
	return 0, errors.Errorf("unknown literal format: %q", s)
}

func name[T ~uint8](names map[T]string, v T) string {
	if n, ok := names[v]; ok {
		return n
	}
	return fmt.Sprintf("Unknown(%d)", uint8(v))
}
