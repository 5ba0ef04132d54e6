package packet

import (
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
	"github.com/effective-security/xpgp/compression"
	"github.com/effective-security/xpgp/metricskey"
	"golang.org/x/crypto/cryptobyte"
)

// Codec decodes and encodes packets.
// A Codec is safe for concurrent use.
type Codec struct {
	cfg         Config
	compression compression.Provider
}

// DefaultCodec uses the default limits and compression provider
var DefaultCodec = NewCodec(nil, nil)

// NewCodec returns a codec; zero values in the config take defaults,
// and a nil provider uses compression.New
func NewCodec(cfg *Config, provider compression.Provider) *Codec {
	c := &Codec{compression: provider}
	if cfg != nil {
		c.cfg = *cfg
	}
	c.cfg = c.cfg.withDefaults()
	if c.compression == nil {
		c.compression = compression.New()
	}
	return c
}

// Config returns the effective limits
func (c *Codec) Config() Config {
	return c.cfg
}

// Parse decodes the packet at the front of data and returns the remaining octets.
//
// If the header is valid but the body is not, the error is *DecodeError and
// rest starts after the declared body, so the caller may skip the packet.
// If the header itself cannot be read, rest is nil.
func (c *Codec) Parse(data []byte) (p Packet, rest []byte, err error) {
	return c.parse(data, 0, c.newBudget())
}

// ParseAll decodes a sequence of packets that fills data
func (c *Codec) ParseAll(data []byte) ([]Packet, error) {
	return c.parseAll(data, 0, c.newBudget())
}

// ParseBody decodes a packet body for the tag, without a header
func (c *Codec) ParseBody(tag Tag, body []byte) (Packet, error) {
	return c.parseBody(tag, body, 0, c.newBudget())
}

// Serialize encodes the packet with a new-format header
func (c *Codec) Serialize(p Packet) ([]byte, error) {
	return c.serialize(p, 0)
}

// SerializeAll encodes the packets in order
func (c *Codec) SerializeAll(packets ...Packet) ([]byte, error) {
	return c.serializeAll(packets, 0)
}

// SerializeBody encodes the packet body, including the version octet
// of versioned packets, without a header
func (c *Codec) SerializeBody(p Packet) ([]byte, error) {
	return c.serializeBody(p, 0)
}

// budget is the decompressed output left to a single Parse, ParseAll
// or ParseBody call, shared by all nested and sibling compressed packets
type budget struct {
	remaining int64
}

func (c *Codec) newBudget() *budget {
	return &budget{remaining: c.cfg.MaxDecompressedSize}
}

func (c *Codec) parse(data []byte, depth int, b *budget) (Packet, []byte, error) {
	started := time.Now()
	s := cryptobyte.String(data)
	h, err := ParseHeader(&s)
	if err != nil {
		return nil, nil, err
	}
	defer metricskey.PerfPacketDecode.MeasureSince(started, h.Tag.String())

	var body []byte
	if h.Length > 0 && !s.ReadBytes(&body, h.Length) {
		logger.KV(xlog.DEBUG, "reason", "truncated", "tag", h.Tag, "length", h.Length, "available", len(s))
		return nil, nil, &DecodeError{Header: h, Err: errors.WithStack(ErrTruncated)}
	}

	p, err := c.parseBody(h.Tag, body, depth, b)
	if err != nil {
		logger.KV(xlog.DEBUG, "reason", "decode", "tag", h.Tag, "length", h.Length, "err", err.Error())
		return nil, nonEmpty(s), &DecodeError{Header: h, Err: err}
	}
	return p, nonEmpty(s), nil
}

func (c *Codec) parseAll(data []byte, depth int, b *budget) ([]Packet, error) {
	var list []Packet
	for len(data) > 0 {
		p, rest, err := c.parse(data, depth, b)
		if err != nil {
			return list, err
		}
		list = append(list, p)
		data = rest
	}
	return list, nil
}

func (c *Codec) parseBody(tag Tag, body []byte, depth int, b *budget) (Packet, error) {
	r := &reader{s: body, codec: c, depth: depth, budget: b}

	var version uint8
	if IsVersioned(tag) {
		v, err := r.u8()
		if err != nil {
			return nil, errors.WithMessage(err, "missing version")
		}
		version = v
	}

	p := New(tag, version)
	if err := p.parse(r); err != nil {
		return nil, err
	}
	if !r.empty() {
		return nil, errors.Wrapf(ErrMalformedLength, "%d trailing octets", len(r.s))
	}
	return p, nil
}

func (c *Codec) serializeBody(p Packet, depth int) ([]byte, error) {
	if p == nil {
		return nil, errors.New("packet is nil")
	}
	w := &writer{Builder: cryptobyte.NewBuilder(nil), codec: c, depth: depth}
	if vp, ok := p.(VersionedPacket); ok {
		w.AddUint8(vp.Version())
	}
	if err := p.marshal(w); err != nil {
		return nil, errors.WithMessagef(err, "unable to encode %s packet", p.Tag())
	}
	body, err := w.Bytes()
	if err != nil {
		return nil, errors.WithMessagef(err, "unable to encode %s packet", p.Tag())
	}
	return body, nil
}

func (c *Codec) serialize(p Packet, depth int) ([]byte, error) {
	started := time.Now()
	body, err := c.serializeBody(p, depth)
	if err != nil {
		return nil, err
	}
	defer metricskey.PerfPacketEncode.MeasureSince(started, p.Tag().String())

	b := cryptobyte.NewBuilder(make([]byte, 0, len(body)+6))
	if err := (Header{Tag: p.Tag(), Length: len(body), Format: FormatNew}).Marshal(b); err != nil {
		return nil, err
	}
	b.AddBytes(body)
	return b.Bytes()
}

func (c *Codec) serializeAll(packets []Packet, depth int) ([]byte, error) {
	var out []byte
	for _, p := range packets {
		b, err := c.serialize(p, depth)
		if err != nil {
			return nil, err
		}
		out = append(out, b...)
	}
	return out, nil
}

// Parse decodes the packet at the front of data with DefaultCodec
func Parse(data []byte) (Packet, []byte, error) {
	return DefaultCodec.Parse(data)
}

// ParseAll decodes a sequence of packets with DefaultCodec
func ParseAll(data []byte) ([]Packet, error) {
	return DefaultCodec.ParseAll(data)
}

// ParseBody decodes a packet body with DefaultCodec
func ParseBody(tag Tag, body []byte) (Packet, error) {
	return DefaultCodec.ParseBody(tag, body)
}

// Serialize encodes the packet with DefaultCodec
func Serialize(p Packet) ([]byte, error) {
	return DefaultCodec.Serialize(p)
}

// SerializeAll encodes the packets with DefaultCodec
func SerializeAll(packets ...Packet) ([]byte, error) {
	return DefaultCodec.SerializeAll(packets...)
}
