// Package packet implements the packet-level codec of the OpenPGP message
// format (RFC 4880, sections 4 and 5).
//
// Parse decodes one packet from the front of a buffer: the header selects the
// packet type and bounds the body, and for versioned packet types the first
// body octet selects the concrete layout. Serialize produces the body of a
// packet and prepends a new-format header computed from the body length.
//
// Decoding is a pure transformation over a caller-owned buffer: a cursor
// advances over the input, which is never modified. Decoded packets may
// reference the input, so the caller should not reuse it while the packets
// are in use. Independent buffers may be decoded concurrently; the type
// registry and the default Codec are read-only.
//
// Identifiers that are not assigned (algorithms, versions, packet tags) are
// kept as raw values, and the octets that depend on them are kept verbatim,
// so such packets serialize back to the same octets.
package packet

import "github.com/effective-security/xlog"

var logger = xlog.NewPackageLogger("github.com/effective-security/xpgp", "packet")
