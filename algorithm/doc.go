// Package algorithm provides the OpenPGP identifier tables (RFC 4880, section 9)
// used by the packet codec.
//
// Every identifier is a named integer type, so a value read from the wire is kept
// verbatim even when it is not assigned in the tables. Use IsKnown to tell a
// recognized identifier from a forward-looking one; String renders both.
package algorithm
