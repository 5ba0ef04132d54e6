// Package gpg provides utilities for working with OpenPGP key rings.
//
// This package supports:
//   - Unwrapping ASCII-armored blocks and writing armored output
//   - Loading key rings from armored or binary files
//   - Grouping key packets into entities with identities and subkeys
//   - Converting key packets to crypto.PublicKey
//
// Packets are decoded with the packet package; this package only deals
// with the transport and with grouping packets the way GnuPG writes them.
package gpg

import "github.com/effective-security/xlog"

var logger = xlog.NewPackageLogger("github.com/effective-security/xpgp", "gpg")
