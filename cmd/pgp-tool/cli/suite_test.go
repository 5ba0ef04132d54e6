package cli

import (
	"bytes"
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/effective-security/xpgp/x/ctl"
	"github.com/stretchr/testify/suite"
)

type testSuite struct {
	suite.Suite
	tmpdir string
	ctl    *Cli
	// Out is the outpub buffer
	Out bytes.Buffer

	appFlags []string
}

func (s *testSuite) SetupTest() {
	s.tmpdir = s.T().TempDir()
	s.Out.Reset()

	s.ctl = &Cli{}

	s.ctl.WithErrWriter(&s.Out).
		WithWriter(&s.Out)

	parser, err := kong.New(s.ctl,
		kong.Name("pgp-tool"),
		kong.Description("CLI tool"),
		kong.Writers(&s.Out, &s.Out),
		ctl.BoolPtrMapper,
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{})
	if err != nil {
		s.FailNow("unexpected error constructing Kong: %+v", err)
	}

	_, err = parser.Parse(s.appFlags)
	if err != nil {
		s.FailNow("unexpected error parsing: %+v", err)
	}
}

// HasText is a helper method to assert that the out stream contains the supplied
// text somewhere
func (s *testSuite) HasText(texts ...string) {
	outStr := s.Out.String()
	for _, t := range texts {
		s.Contains(outStr, t)
	}
}

// HasNoText is a helper method to assert that the out stream does not contain
// the supplied text
func (s *testSuite) HasNoText(texts ...string) {
	outStr := s.Out.String()
	for _, t := range texts {
		s.NotContains(outStr, t)
	}
}

// HasTextInFile is a helper method to assert that file contains the supplied text
func (s *testSuite) HasTextInFile(file string, texts ...string) {
	f, err := os.ReadFile(file)
	s.Require().NoError(err, "unable to read: %s", file)
	outStr := string(f)
	for _, t := range texts {
		s.Contains(outStr, t, "expecting to find text %q in file %q", t, file)
	}
}

func TestSuite(t *testing.T) {
	suite.Run(t, new(testSuite))
}
