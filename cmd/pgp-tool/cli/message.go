package cli

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/gpg"
	"github.com/effective-security/xpgp/packet"
)

// LiteralCmd wraps a file into a Literal Data message
type LiteralCmd struct {
	In       string `arg:"" help:"input file, or '-' for stdin"`
	Out      string `help:"output file, stdout if not set"`
	Name     string `help:"file name to store in the packet, defaults to the input file name"`
	Format   string `help:"literal data format (binary|text|utf8)" default:"binary"`
	Compress string `help:"compression algorithm (none|zip|zlib|bzip2)" default:"none"`
	Armor    bool   `help:"write ASCII armored output"`
}

// Run the command
func (a *LiteralCmd) Run(ctx *Cli) error {
	format, err := algorithm.ParseLiteralFormat(a.Format)
	if err != nil {
		return err
	}
	compress, err := algorithm.ParseCompression(a.Compress)
	if err != nil {
		return err
	}
	data, err := ctx.ReadFile(a.In)
	if err != nil {
		return err
	}
	codec, err := ctx.Codec()
	if err != nil {
		return err
	}

	name := a.Name
	if name == "" && a.In != "-" {
		name = filepath.Base(a.In)
	}

	var p packet.Packet = &packet.LiteralData{
		Format:   format,
		Filename: name,
		Modified: time.Now().UTC().Truncate(time.Second),
		Contents: data,
	}
	if compress != algorithm.Uncompressed {
		p = packet.NewCompressedData(compress, p)
	}

	raw, err := codec.Serialize(p)
	if err != nil {
		return err
	}
	return writeMessage(ctx, a.Out, a.Armor, gpg.MessageType, raw)
}

// UserIDCmd creates a User ID packet
type UserIDCmd struct {
	Name    string `help:"name" required:""`
	Comment string `help:"comment"`
	Email   string `help:"email address"`
	Out     string `help:"output file, stdout if not set"`
	Armor   bool   `help:"write ASCII armored output"`
}

// Run the command
func (a *UserIDCmd) Run(ctx *Cli) error {
	codec, err := ctx.Codec()
	if err != nil {
		return err
	}
	raw, err := codec.Serialize(packet.NewUserID(a.Name, a.Comment, a.Email))
	if err != nil {
		return err
	}
	return writeMessage(ctx, a.Out, a.Armor, gpg.PublicKeyType, raw)
}

func writeMessage(ctx *Cli, out string, armor bool, blockType string, raw []byte) error {
	if armor {
		var buf bytes.Buffer
		if err := gpg.Encode(&buf, blockType, nil, raw); err != nil {
			return err
		}
		raw = buf.Bytes()
	}
	return ctx.WriteFile(out, raw)
}
