package ctl

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/cockroachdb/errors"
	"github.com/ugorji/go/codec"
	"gopkg.in/yaml.v3"
)

// VersionFlag is a flag to print version
type VersionFlag string

// Decode the flag
func (v VersionFlag) Decode(ctx *kong.DecodeContext) error { return nil }

// IsBool returns true for the flag
func (v VersionFlag) IsBool() bool { return true }

// BeforeApply is executed before context is applied
func (v VersionFlag) BeforeApply(app *kong.Kong, vars kong.Vars) error {
	ver := vars["version"]
	if ver == "" {
		ver = string(v)
	}
	fmt.Fprintln(app.Stdout, ver)
	app.Exit(0)
	return nil
}

var (
	// jsonEncPPHandle is used to encode json with a human readable pretty printed out put, as well as
	// line breaks/indents, fields are serialized in a canonical order everytime
	jsonEncPPHandle codec.JsonHandle
)

func init() {
	jsonEncPPHandle.BasicHandle.EncodeOptions.Canonical = true
	jsonEncPPHandle.Indent = -1
}

var newLine = []byte("\n")

// WriteJSON prints response to out
func WriteJSON(out io.Writer, value interface{}) error {
	var json []byte
	err := codec.NewEncoderBytes(&json, &jsonEncPPHandle).Encode(value)
	if err != nil {
		return errors.WithMessage(err, "failed to encode")
	}

	_, _ = out.Write(json)
	_, _ = out.Write(newLine)

	return nil
}

// WriteYAML prints response to out
func WriteYAML(out io.Writer, value interface{}) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(value); err != nil {
		return errors.WithMessage(err, "failed to encode")
	}
	return errors.WithStack(enc.Close())
}

// FileExists returns an error if the path is not a regular file
func FileExists(path string) error {
	if path == "" {
		return errors.New("file name is not provided")
	}
	fi, err := os.Stat(path)
	if err != nil {
		return err
	}
	if fi.IsDir() {
		return errors.Errorf("not a file: %s", path)
	}
	return nil
}
