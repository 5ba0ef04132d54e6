package cli

import (
	"time"

	"github.com/effective-security/xpgp/gpg"
	"github.com/effective-security/xpgp/packet"
	"github.com/effective-security/xpgp/x/ctl"
)

// KeysCmd prints keys of a key ring
type KeysCmd struct {
	In []string `arg:"" help:"armored or binary key ring files"`
}

type keyInfo struct {
	Fingerprint string     `json:"fingerprint" yaml:"fingerprint"`
	KeyID       string     `json:"key_id" yaml:"key_id"`
	Algorithm   string     `json:"algorithm" yaml:"algorithm"`
	Created     string     `json:"created,omitempty" yaml:"created,omitempty"`
	Private     bool       `json:"private,omitempty" yaml:"private,omitempty"`
	UserIDs     []string   `json:"user_ids,omitempty" yaml:"user_ids,omitempty"`
	Subkeys     []*keyInfo `json:"subkeys,omitempty" yaml:"subkeys,omitempty"`
}

// Run the command
func (a *KeysCmd) Run(ctx *Cli) error {
	var keyring gpg.EntityList
	for _, in := range a.In {
		if in != "-" {
			if err := ctl.FileExists(in); err != nil {
				return err
			}
		}
		data, err := ctx.ReadFile(in)
		if err != nil {
			return err
		}
		el, err := gpg.KeyRing(data)
		if err != nil {
			return err
		}
		keyring = append(keyring, el...)
	}

	res := make([]*keyInfo, 0, len(keyring))
	for _, e := range keyring {
		ki, err := newKeyInfo(e.PrimaryKey)
		if err != nil {
			return err
		}
		for _, id := range e.Identities {
			ki.UserIDs = append(ki.UserIDs, id.Name())
		}
		for _, sub := range e.Subkeys {
			si, err := newKeyInfo(sub.Key)
			if err != nil {
				return err
			}
			ki.Subkeys = append(ki.Subkeys, si)
		}
		res = append(res, ki)
	}
	return ctx.Print(res)
}

func newKeyInfo(k packet.Key) (*keyInfo, error) {
	fp, err := k.Fingerprint()
	if err != nil {
		return nil, err
	}
	ki := &keyInfo{
		Fingerprint: fp.String(),
		KeyID:       fp.KeyID().String(),
		Algorithm:   k.Algorithm().String(),
		Private:     k.IsPrivate(),
	}
	if created := k.CreationTime(); !created.IsZero() {
		ki.Created = created.Format(time.RFC3339)
	}
	return ki, nil
}
