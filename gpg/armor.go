package gpg

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"golang.org/x/crypto/openpgp/armor" //nolint:staticcheck
)

// Armor block types
const (
	PublicKeyType  = "PGP PUBLIC KEY BLOCK"
	PrivateKeyType = "PGP PRIVATE KEY BLOCK"
	MessageType    = "PGP MESSAGE"
	SignatureType  = "PGP SIGNATURE"
)

var armorStart = []byte("-----BEGIN PGP ")

// Block is the decoded content of an armored block.
// Type is empty for binary input.
type Block struct {
	Type   string
	Header map[string]string
	Bytes  []byte
}

// IsArmored returns true if data contains an armor header line
func IsArmored(data []byte) bool {
	return bytes.Contains(data, armorStart)
}

// Decode returns the armored blocks in data, in order.
// Data without armor is returned as a single binary block.
func Decode(data []byte) ([]*Block, error) {
	if !IsArmored(data) {
		logger.KV(xlog.TRACE, "reason", "binary", "size", len(data))
		return []*Block{{Bytes: data}}, nil
	}

	var blocks []*Block
	for {
		start := bytes.Index(data, armorStart)
		if start < 0 {
			break
		}
		data = data[start:]
		end := bytes.Index(data[len(armorStart):], armorStart)
		var segment []byte
		if end < 0 {
			segment, data = data, nil
		} else {
			end += len(armorStart)
			segment, data = data[:end], data[end:]
		}

		b, err := armor.Decode(bytes.NewReader(segment))
		if err != nil {
			return nil, errors.WithMessage(err, "unable to decode armor")
		}
		body, err := io.ReadAll(b.Body)
		if err != nil {
			return nil, errors.WithMessagef(err, "unable to read %q block", b.Type)
		}
		logger.KV(xlog.TRACE, "type", b.Type, "size", len(body))
		blocks = append(blocks, &Block{Type: b.Type, Header: b.Header, Bytes: body})
	}
	return blocks, nil
}

// Encode writes data as an armored block
func Encode(w io.Writer, blockType string, headers map[string]string, data []byte) error {
	aw, err := armor.Encode(w, blockType, headers)
	if err != nil {
		return errors.WithStack(err)
	}
	if _, err = aw.Write(data); err != nil {
		return errors.WithStack(err)
	}
	return errors.WithStack(aw.Close())
}
