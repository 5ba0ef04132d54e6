// Package compression provides the compression algorithms of OpenPGP
// Compressed Data packets: raw DEFLATE (ZIP), ZLIB and BZip2.
package compression

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/dsnet/compress/bzip2"
	"github.com/effective-security/xpgp/algorithm"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

var (
	// ErrUnsupported is returned for an unknown compression algorithm
	ErrUnsupported = errors.New("compression: unsupported algorithm")
	// ErrTooLarge is returned when decompressed data exceeds the limit
	ErrTooLarge = errors.New("compression: decompressed data exceeds the limit")
	// ErrCorrupt is returned when compressed data cannot be decoded
	ErrCorrupt = errors.New("compression: corrupt data")
)

// Provider compresses and decompresses packet payloads
type Provider interface {
	// Compress returns data compressed with the algorithm
	Compress(alg algorithm.Compression, data []byte) ([]byte, error)
	// Decompress returns data decompressed with the algorithm;
	// the output may not exceed limit octets
	Decompress(alg algorithm.Compression, data []byte, limit int64) ([]byte, error)
}

type provider struct {
	level int
}

// New returns Provider with the default compression level
func New() Provider {
	return &provider{level: flate.DefaultCompression}
}

// NewWithLevel returns Provider with the DEFLATE/ZLIB compression level
func NewWithLevel(level int) (Provider, error) {
	if level < flate.HuffmanOnly || level > flate.BestCompression {
		return nil, errors.Errorf("compression: invalid level %d", level)
	}
	return &provider{level: level}, nil
}

// Compress returns data compressed with the algorithm
func (p *provider) Compress(alg algorithm.Compression, data []byte) ([]byte, error) {
	if alg == algorithm.Uncompressed {
		return data, nil
	}

	var buf bytes.Buffer
	var w io.WriteCloser
	var err error
	switch alg {
	case algorithm.ZIP:
		w, err = flate.NewWriter(&buf, p.level)
	case algorithm.ZLIB:
		w, err = zlib.NewWriterLevel(&buf, p.level)
	case algorithm.BZip2:
		w, err = bzip2.NewWriter(&buf, nil)
	default:
		return nil, errors.Wrapf(ErrUnsupported, "%s", alg)
	}
	if err != nil {
		return nil, errors.WithStack(err)
	}
	if _, err = w.Write(data); err != nil {
		return nil, errors.WithMessagef(err, "failed to compress %s", alg)
	}
	if err = w.Close(); err != nil {
		return nil, errors.WithMessagef(err, "failed to compress %s", alg)
	}
	return buf.Bytes(), nil
}

// Decompress returns data decompressed with the algorithm
func (p *provider) Decompress(alg algorithm.Compression, data []byte, limit int64) ([]byte, error) {
	var r io.Reader
	switch alg {
	case algorithm.Uncompressed:
		r = bytes.NewReader(data)
	case algorithm.ZIP:
		fr := flate.NewReader(bytes.NewReader(data))
		defer fr.Close()
		r = fr
	case algorithm.ZLIB:
		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "%s: %s", alg, err.Error())
		}
		defer zr.Close()
		r = zr
	case algorithm.BZip2:
		br, err := bzip2.NewReader(bytes.NewReader(data), nil)
		if err != nil {
			return nil, errors.Wrapf(ErrCorrupt, "%s: %s", alg, err.Error())
		}
		defer br.Close()
		r = br
	default:
		return nil, errors.Wrapf(ErrUnsupported, "%s", alg)
	}

	out, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%s: %s", alg, err.Error())
	}
	if int64(len(out)) > limit {
		return nil, errors.Wrapf(ErrTooLarge, "limit %d", limit)
	}
	return out, nil
}
