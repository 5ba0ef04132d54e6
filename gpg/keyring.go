package gpg

import (
	"bytes"
	"crypto"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/metricskey"
	"github.com/effective-security/xpgp/packet"
	xpacket "golang.org/x/crypto/openpgp/packet" //nolint:staticcheck
)

// Identity is a User ID or User Attribute with its certifications
type Identity struct {
	UserID     *packet.UserID
	Attribute  *packet.UserAttribute
	Signatures []*packet.SignatureV4
}

// Name returns the User ID text, or "[attribute]"
func (i *Identity) Name() string {
	if i.UserID != nil {
		return i.UserID.String()
	}
	return "[attribute]"
}

// Subkey is a subkey with its binding signatures
type Subkey struct {
	Key        packet.Key
	Signatures []*packet.SignatureV4
}

// Entity is a primary key with the packets that follow it in a key ring
type Entity struct {
	PrimaryKey packet.Key
	// Signatures are direct-key signatures and revocations
	Signatures []*packet.SignatureV4
	Identities []*Identity
	Subkeys    []*Subkey
}

// Fingerprint returns the fingerprint of the primary key
func (e *Entity) Fingerprint() (packet.Fingerprint, error) {
	return e.PrimaryKey.Fingerprint()
}

// PrimaryIdentity returns the first identity with a User ID, or nil
func (e *Entity) PrimaryIdentity() *Identity {
	for _, id := range e.Identities {
		if id.UserID != nil {
			return id
		}
	}
	return nil
}

// EntityList is a key ring
type EntityList []*Entity

// KeysByID returns the primary keys and subkeys with the Key ID
func (el EntityList) KeysByID(id packet.KeyID) []packet.Key {
	var keys []packet.Key
	for _, e := range el {
		if kid, err := e.PrimaryKey.KeyID(); err == nil && kid == id {
			keys = append(keys, e.PrimaryKey)
		}
		for _, sub := range e.Subkeys {
			if kid, err := sub.Key.KeyID(); err == nil && kid == id {
				keys = append(keys, sub.Key)
			}
		}
	}
	return keys
}

// ReadEntities groups a transferable key sequence into entities.
// Trust packets and packets of unknown tag are dropped; keys of unknown
// version are skipped together with the packets that belong to them.
func ReadEntities(packets []packet.Packet) (EntityList, error) {
	var list EntityList
	var current *Entity
	var identity *Identity
	var subkey *Subkey
	// skipping drops an entity, skippingSubkey drops binding signatures
	skipping, skippingSubkey := false, false

	for _, p := range packets {
		switch pk := p.(type) {
		case packet.Key:
			if !pk.IsSubkey() {
				current = &Entity{PrimaryKey: pk}
				identity, subkey, skipping, skippingSubkey = nil, nil, false, false
				list = append(list, current)
				continue
			}
			if skipping {
				continue
			}
			if current == nil {
				return nil, errors.New("subkey before primary key")
			}
			subkey = &Subkey{Key: pk}
			identity, skippingSubkey = nil, false
			current.Subkeys = append(current.Subkeys, subkey)
		case *packet.UserID, *packet.UserAttribute:
			if skipping {
				continue
			}
			if current == nil {
				return nil, errors.Errorf("%s before primary key", p.Tag())
			}
			identity = &Identity{}
			if uid, ok := pk.(*packet.UserID); ok {
				identity.UserID = uid
			} else {
				identity.Attribute = pk.(*packet.UserAttribute)
			}
			subkey, skippingSubkey = nil, false
			current.Identities = append(current.Identities, identity)
		case *packet.SignatureV4:
			if skipping || skippingSubkey {
				continue
			}
			if current == nil {
				return nil, errors.New("signature before primary key")
			}
			switch {
			case subkey != nil:
				subkey.Signatures = append(subkey.Signatures, pk)
			case identity != nil:
				identity.Signatures = append(identity.Signatures, pk)
			default:
				current.Signatures = append(current.Signatures, pk)
			}
		case *packet.Trust:
		case *packet.UnknownVersion:
			switch pk.Tag() {
			case packet.TagPublicKey, packet.TagPrivateKey:
				logger.KV(xlog.DEBUG, "reason", "skip_entity", "tag", pk.Tag(), "version", pk.Version())
				current, identity, subkey, skipping = nil, nil, nil, true
			case packet.TagPublicSubkey, packet.TagPrivateSubkey:
				logger.KV(xlog.DEBUG, "reason", "skip_subkey", "tag", pk.Tag(), "version", pk.Version())
				identity, subkey, skippingSubkey = nil, nil, true
			default:
				logger.KV(xlog.DEBUG, "reason", "skip_packet", "tag", pk.Tag(), "version", pk.Version())
			}
		case *packet.OpaquePacket:
			logger.KV(xlog.DEBUG, "reason", "skip_packet", "tag", pk.Tag(), "size", len(pk.Body))
		default:
			return nil, errors.Errorf("unexpected %s packet in key ring", p.Tag())
		}
	}
	return list, nil
}

// KeyRing reads entities from armored or binary key ring data.
// Armored blocks other than public and private key blocks are ignored.
func KeyRing(data []byte) (EntityList, error) {
	defer metricskey.PerfKeyRingLoad.MeasureSince(time.Now(), "data")

	blocks, err := Decode(data)
	if err != nil {
		return nil, err
	}

	keyring := make(EntityList, 0)
	for _, block := range blocks {
		if block.Type != "" && block.Type != PublicKeyType && block.Type != PrivateKeyType {
			logger.KV(xlog.TRACE, "reason", "skip_block", "type", block.Type)
			continue
		}
		packets, err := packet.ParseAll(block.Bytes)
		if err != nil {
			return nil, err
		}
		el, err := ReadEntities(packets)
		if err != nil {
			return nil, err
		}
		keyring = append(keyring, el...)
	}

	return keyring, nil
}

// KeyRingFromFile reads entities from the given file path
func KeyRingFromFile(path string) (EntityList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	k, err := KeyRing(data)
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to load key ring: %s", path)
	}

	return k, nil
}

// KeyRingFromFiles reads entities from the given file paths.
//
// This function might typically be used to read all keys in /etc/pki/rpm-gpg.
func KeyRingFromFiles(files []string) (EntityList, error) {
	keyring := make(EntityList, 0)
	for _, path := range files {
		el, err := KeyRingFromFile(path)
		if err != nil {
			return nil, err
		}
		keyring = append(keyring, el...)
	}

	return keyring, nil
}

// ToCryptoPublicKey returns the public key of a key packet
func ToCryptoPublicKey(k packet.Key) (crypto.PublicKey, error) {
	var pub packet.Packet = k
	var err error
	switch pk := k.(type) {
	case *packet.PrivateKeyV4:
		pub, err = pk.PublicKey()
	case *packet.PrivateSubkeyV4:
		pub, err = pk.PublicSubkey()
	}
	if err != nil {
		return nil, err
	}

	raw, err := packet.Serialize(pub)
	if err != nil {
		return nil, err
	}
	p, err := xpacket.Read(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to convert %s key", k.Algorithm())
	}
	xpub, ok := p.(*xpacket.PublicKey)
	if !ok || xpub.PublicKey == nil {
		return nil, errors.Errorf("unsupported %s key", k.Algorithm())
	}
	return xpub.PublicKey, nil
}
