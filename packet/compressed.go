package packet

import (
	"github.com/cockroachdb/errors"
	"github.com/effective-security/xpgp/algorithm"
)

// CompressedData is a Compressed Data packet. The body is decompressed and
// parsed eagerly; Packets[0] is normally the inner Literal Data or
// One-Pass Signature packet.
type CompressedData struct {
	Algorithm algorithm.Compression
	Packets   []Packet
}

// NewCompressedData returns a packet that compresses the inner packets
func NewCompressedData(alg algorithm.Compression, packets ...Packet) *CompressedData {
	return &CompressedData{Algorithm: alg, Packets: packets}
}

// Tag returns TagCompressedData
func (c *CompressedData) Tag() Tag { return TagCompressedData }

// Inner returns the first inner packet, or nil
func (c *CompressedData) Inner() Packet {
	if len(c.Packets) == 0 {
		return nil
	}
	return c.Packets[0]
}

func (c *CompressedData) parse(r *reader) error {
	alg, err := r.u8()
	if err != nil {
		return err
	}
	c.Algorithm = algorithm.Compression(alg)

	cfg := r.codec.cfg
	if r.depth >= cfg.MaxNestingDepth {
		return errors.Wrapf(ErrNestingTooDeep, "depth %d", r.depth+1)
	}
	data, err := r.codec.compression.Decompress(c.Algorithm, r.rest(), r.budget.remaining)
	if err != nil {
		return newFieldError("compressed data", err)
	}
	r.budget.remaining -= int64(len(data))
	c.Packets, err = r.codec.parseAll(data, r.depth+1, r.budget)
	return err
}

func (c *CompressedData) marshal(w *writer) error {
	if w.depth >= w.codec.cfg.MaxNestingDepth {
		return errors.Wrapf(ErrNestingTooDeep, "depth %d", w.depth+1)
	}
	raw, err := w.codec.serializeAll(c.Packets, w.depth+1)
	if err != nil {
		return err
	}
	data, err := w.codec.compression.Compress(c.Algorithm, raw)
	if err != nil {
		return err
	}
	w.AddUint8(uint8(c.Algorithm))
	w.AddBytes(data)
	return nil
}
