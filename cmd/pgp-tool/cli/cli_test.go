package cli

import (
	"bytes"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"

	"github.com/effective-security/xpgp/algorithm"
	"github.com/effective-security/xpgp/gpg"
	"github.com/effective-security/xpgp/packet"
	"golang.org/x/crypto/openpgp" //nolint:staticcheck
)

func (s *testSuite) TestReadFile() {
	_, err := s.ctl.ReadFile("")
	s.EqualError(err, "empty file name")

	_, err = s.ctl.ReadFile(filepath.Join(s.tmpdir, "missing"))
	s.Error(err)

	s.ctl.WithReader(strings.NewReader("from stdin"))
	b, err := s.ctl.ReadFile("-")
	s.Require().NoError(err)
	s.Equal("from stdin", string(b))
}

func (s *testSuite) TestCodec() {
	codec, err := s.ctl.Codec()
	s.Require().NoError(err)
	s.Equal(packet.DefaultMaxNestingDepth, codec.Config().MaxNestingDepth)

	cfg := filepath.Join(s.tmpdir, "codec.yaml")
	s.Require().NoError(os.WriteFile(cfg, []byte("max_nesting_depth: 2\n"), 0644))

	c := &Cli{Cfg: cfg}
	codec, err = c.Codec()
	s.Require().NoError(err)
	s.Equal(2, codec.Config().MaxNestingDepth)
	s.Equal(int64(packet.DefaultMaxDecompressedSize), codec.Config().MaxDecompressedSize)

	c = &Cli{Cfg: filepath.Join(s.tmpdir, "missing.yaml")}
	_, err = c.Codec()
	s.Error(err)
}

func (s *testSuite) TestUserID() {
	out := filepath.Join(s.tmpdir, "uid.bin")
	cmd := UserIDCmd{
		Name:  "alice",
		Email: "alice@example.com",
		Out:   out,
	}
	s.Require().NoError(cmd.Run(s.ctl))

	raw, err := os.ReadFile(out)
	s.Require().NoError(err)
	list, err := packet.ParseAll(raw)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	uid, ok := list[0].(*packet.UserID)
	s.Require().True(ok)
	s.Equal("alice", uid.Name)
	s.Equal("alice@example.com", uid.Email)

	cmd = UserIDCmd{
		Name:  "bob",
		Armor: true,
	}
	s.Require().NoError(cmd.Run(s.ctl))
	s.HasText("-----BEGIN PGP PUBLIC KEY BLOCK-----", "-----END PGP PUBLIC KEY BLOCK-----")
}

func (s *testSuite) TestLiteral() {
	in := filepath.Join(s.tmpdir, "hello.txt")
	s.Require().NoError(os.WriteFile(in, []byte("hello world"), 0644))
	out := filepath.Join(s.tmpdir, "hello.asc")

	cmd := LiteralCmd{
		In:       in,
		Out:      out,
		Format:   "text",
		Compress: "zlib",
		Armor:    true,
	}
	s.Require().NoError(cmd.Run(s.ctl))
	s.HasTextInFile(out, "-----BEGIN PGP MESSAGE-----")

	data, err := os.ReadFile(out)
	s.Require().NoError(err)
	blocks, err := gpg.Decode(data)
	s.Require().NoError(err)
	s.Require().Len(blocks, 1)
	s.Equal(gpg.MessageType, blocks[0].Type)

	list, err := packet.ParseAll(blocks[0].Bytes)
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	cd, ok := list[0].(*packet.CompressedData)
	s.Require().True(ok)
	s.Equal(algorithm.ZLIB, cd.Algorithm)
	lit, ok := cd.Inner().(*packet.LiteralData)
	s.Require().True(ok)
	s.Equal(algorithm.LiteralText, lit.Format)
	s.Equal("hello.txt", lit.Filename)
	s.Equal("hello world", string(lit.Contents))
	s.False(lit.Modified.IsZero())

	pc := PacketsCmd{In: out}
	s.Require().NoError(pc.Run(s.ctl))
	s.HasText("CompressedData", "LiteralData", "hello.txt", "ZLIB", gpg.MessageType)

	cmd.Format = "nope"
	s.Error(cmd.Run(s.ctl))
	cmd.Format = "binary"
	cmd.Compress = "lzma"
	s.Error(cmd.Run(s.ctl))
}

func (s *testSuite) TestLiteralStdin() {
	s.ctl.WithReader(strings.NewReader("piped"))
	cmd := LiteralCmd{
		In:       "-",
		Name:     packet.ConsoleFilename,
		Format:   "binary",
		Compress: "none",
	}
	s.Require().NoError(cmd.Run(s.ctl))

	list, err := packet.ParseAll(s.Out.Bytes())
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	lit, ok := list[0].(*packet.LiteralData)
	s.Require().True(ok)
	s.True(lit.ForYourEyesOnly())
	s.Equal("piped", string(lit.Contents))
}

func (s *testSuite) TestKeys() {
	e, err := openpgp.NewEntity("alice", "test", "alice@example.com", nil)
	s.Require().NoError(err)
	var buf bytes.Buffer
	s.Require().NoError(e.Serialize(&buf))

	path := filepath.Join(s.tmpdir, "pubring.gpg")
	s.Require().NoError(os.WriteFile(path, buf.Bytes(), 0644))

	s.ctl.Output = "yaml"
	cmd := KeysCmd{In: []string{path}}
	s.Require().NoError(cmd.Run(s.ctl))

	fp := strings.ToUpper(hex.EncodeToString(e.PrimaryKey.Fingerprint[:]))
	s.HasText(fp, fp[24:], "alice@example.com", "subkeys:", "RSA")
	s.HasNoText("private:")

	cmd = KeysCmd{In: []string{filepath.Join(s.tmpdir, "missing.gpg")}}
	s.Error(cmd.Run(s.ctl))

	cmd = KeysCmd{In: []string{s.tmpdir}}
	s.EqualError(cmd.Run(s.ctl), "not a file: "+s.tmpdir)
}

func (s *testSuite) TestPackets() {
	uid, err := packet.Serialize(packet.NewUserID("bob", "", ""))
	s.Require().NoError(err)

	// a Marker with a bad body is reported and skipped
	data := append([]byte{0xCA, 0x03, 'X', 'Y', 'Z'}, uid...)
	list, err := dumpPackets(packet.DefaultCodec, data)
	s.Require().NoError(err)
	s.Require().Len(list, 2)

	bad := list[0].(map[string]interface{})
	s.Equal("Marker", bad["tag"])
	s.Equal(3, bad["length"])
	s.Contains(bad["error"], "corrupt packet")

	good := list[1].(map[string]interface{})
	s.Equal("UserID", good["tag"])
	s.Equal("bob", good["user_id"])

	list, err = dumpPackets(packet.DefaultCodec, []byte{0xCD, 0x05, 'a'})
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Contains(list[0].(map[string]interface{})["error"], "truncated packet")

	_, err = dumpPackets(packet.DefaultCodec, append(uid, 0x00))
	s.ErrorIs(err, packet.ErrCorruptPacket)

	in := filepath.Join(s.tmpdir, "uid.bin")
	s.Require().NoError(os.WriteFile(in, uid, 0644))
	cmd := PacketsCmd{In: in}
	s.Require().NoError(cmd.Run(s.ctl))
	s.HasText("UserID", "bob")
}

func (s *testSuite) TestDescribe() {
	m := describe(&packet.Trust{Level: 5})
	s.Equal("Trust", m["tag"])
	s.NotContains(m, "version")

	m = describe(&packet.OnePassSignatureV3{
		SigType:    algorithm.BinaryDocument,
		HashAlgo:   algorithm.SHA256,
		PubKeyAlgo: algorithm.RSAEncryptOrSign,
		KeyID:      0x0102030405060708,
		Nested:     1,
	})
	s.Equal(uint8(3), m["version"])
	s.Equal("0102030405060708", m["key_id"])
	s.Equal(true, m["last"])

	m = describe(&packet.OpaquePacket{PacketTag: 60, Body: []byte{1, 2}})
	s.Equal("Tag(60)", m["tag"])
	s.Equal(2, m["size"])
}
