// Package material provides the algorithm-specific fields carried by OpenPGP
// packets: public and secret key material, encrypted session keys and
// signature values.
//
// The packet codec treats these as opaque fields. The factories select the
// concrete type from an algorithm identifier; when an algorithm has no modeled
// structure the codec keeps the raw octets in an Opaque value instead.
package material
