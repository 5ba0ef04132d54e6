package cli

import (
	"encoding/hex"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/gpg"
	"github.com/effective-security/xpgp/packet"
)

// PacketsCmd prints the packets of a message
type PacketsCmd struct {
	In string `arg:"" help:"armored or binary input file, or '-' for stdin"`
}

// Run the command
func (a *PacketsCmd) Run(ctx *Cli) error {
	data, err := ctx.ReadFile(a.In)
	if err != nil {
		return err
	}
	codec, err := ctx.Codec()
	if err != nil {
		return err
	}

	blocks, err := gpg.Decode(data)
	if err != nil {
		return err
	}

	var res []interface{}
	for _, block := range blocks {
		list, err := dumpPackets(codec, block.Bytes)
		if err != nil {
			return err
		}
		b := map[string]interface{}{
			"packets": list,
		}
		if block.Type != "" {
			b["type"] = block.Type
		}
		res = append(res, b)
	}
	return ctx.Print(res)
}

// dumpPackets describes each packet in data. A packet with a malformed body
// is reported in place and skipped; a malformed header stops the dump.
func dumpPackets(codec *packet.Codec, data []byte) ([]interface{}, error) {
	var list []interface{}
	for len(data) > 0 {
		p, rest, err := codec.Parse(data)
		if err != nil {
			var de *packet.DecodeError
			if !errors.As(err, &de) {
				return nil, err
			}
			logger.KV(xlog.DEBUG, "reason", "skip_packet", "err", err.Error())
			list = append(list, map[string]interface{}{
				"tag":    de.Header.Tag.String(),
				"length": de.Header.Length,
				"error":  de.Err.Error(),
			})
			data = rest
			continue
		}
		list = append(list, describe(p))
		data = rest
	}
	return list, nil
}

func describe(p packet.Packet) map[string]interface{} {
	m := map[string]interface{}{
		"tag": p.Tag().String(),
	}
	if vp, ok := p.(packet.VersionedPacket); ok {
		m["version"] = vp.Version()
	}

	switch pk := p.(type) {
	case packet.Key:
		describeKey(m, pk)
	case *packet.PKESessionKeyV3:
		m["key_id"] = pk.KeyID.String()
		m["algorithm"] = pk.Algorithm().String()
	case *packet.SKESessionKeyV4:
		m["cipher"] = pk.Cipher.String()
		m["s2k"] = pk.S2K.Type.String()
	case *packet.SignatureV4:
		m["type"] = pk.SigType.String()
		m["algorithm"] = pk.PubKeyAlgorithm().String()
		m["hash"] = pk.HashAlgo.String()
		if created, ok := pk.CreationTime(); ok {
			m["created"] = created.Format(time.RFC3339)
		}
		if id, ok := pk.IssuerKeyID(); ok {
			m["issuer"] = id.String()
		}
	case *packet.OnePassSignatureV3:
		m["type"] = pk.SigType.String()
		m["algorithm"] = pk.PubKeyAlgo.String()
		m["hash"] = pk.HashAlgo.String()
		m["key_id"] = pk.KeyID.String()
		m["last"] = pk.IsLast()
	case *packet.CompressedData:
		m["algorithm"] = pk.Algorithm.String()
		var inner []interface{}
		for _, ip := range pk.Packets {
			inner = append(inner, describe(ip))
		}
		m["packets"] = inner
	case *packet.LiteralData:
		m["format"] = pk.Format.String()
		m["filename"] = pk.Filename
		if !pk.Modified.IsZero() {
			m["modified"] = pk.Modified.Format(time.RFC3339)
		}
		m["size"] = len(pk.Contents)
	case *packet.Trust:
		m["level"] = pk.Level.String()
	case *packet.UserID:
		m["user_id"] = pk.String()
	case *packet.UserAttribute:
		m["subpackets"] = len(pk.Subpackets)
	case *packet.ModificationDetectionCode:
		m["hash"] = hex.EncodeToString(pk.Hash[:])
	case *packet.SymmetricallyEncryptedData:
		m["size"] = len(pk.Data)
	case *packet.IntegrityProtectedDataV1:
		m["size"] = len(pk.Data)
	case *packet.UnknownVersion:
		m["size"] = len(pk.Body)
	case *packet.OpaquePacket:
		m["size"] = len(pk.Body)
	}
	return m
}

func describeKey(m map[string]interface{}, k packet.Key) {
	m["algorithm"] = k.Algorithm().String()
	if created := k.CreationTime(); !created.IsZero() {
		m["created"] = created.Format(time.RFC3339)
	}
	if fp, err := k.Fingerprint(); err == nil {
		m["fingerprint"] = fp.String()
		m["key_id"] = fp.KeyID().String()
	} else {
		m["error"] = err.Error()
	}
}
