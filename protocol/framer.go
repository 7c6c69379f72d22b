package protocol

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"

	ns "github.com/mcproxy/mcproxy/protocol/net_structures"
)

// MaxFrameLength is the largest payload the 3-byte outer length varint can
// carry (§4.1).
const MaxFrameLength = 2097151

var (
	ErrFrameTooLong                    = errors.New("protocol: frame exceeds 2097151 bytes")
	ErrCompressedBodyShorterThanLength = errors.New("protocol: compressed body shorter than declared data_length")
)

// Framer owns one direction's read and write transforms for a connection:
// length framing, optional zlib compression above a threshold, layered on
// top of a Conn whose encryption is switched on independently (§4.3).
//
// The decoder reads each frame with blocking calls through Conn.Read; Go's
// io.ReadFull already waits for however many TCP segments a frame's bytes
// are split across, which is the externally observable behaviour the
// length/body split states describe for a non-blocking decoder. No
// separate ReadingLength/ReadingBody state struct is kept: the sequence of
// blocking reads in ReadFrame below performs that same pair of steps.
type Framer struct {
	conn                 *Conn
	compressionEnabled   bool
	compressionThreshold int
	compressionLevel     int
}

// NewFramer wraps conn with framing disabled for compression; encryption is
// controlled on conn directly.
func NewFramer(conn *Conn) *Framer {
	return &Framer{conn: conn, compressionThreshold: -1, compressionLevel: zlib.DefaultCompression}
}

// EnableCompression turns on the compression stage with the given threshold
// and zlib level (§6 compression_level). Once enabled it stays enabled for
// the framer's lifetime (§3).
func (f *Framer) EnableCompression(threshold, level int) {
	f.compressionEnabled = true
	f.compressionThreshold = threshold
	f.compressionLevel = level
}

// ReadFrame blocks until one full frame is available and returns its
// decompressed payload (packet id + body, with the outer length and any
// compression framing stripped).
func (f *Framer) ReadFrame() ([]byte, error) {
	length, err := ns.DecodeVarInt(f.conn)
	if err != nil {
		if errors.Is(err, ns.ErrVarIntTooBig) {
			return nil, fmt.Errorf("protocol: malformed frame length: %w", err)
		}
		return nil, fmt.Errorf("protocol: connection closed mid-frame: %w", err)
	}
	if length < 0 || int(length) > MaxFrameLength {
		return nil, fmt.Errorf("%w: got %d", ErrFrameTooLong, length)
	}

	raw := make([]byte, length)
	if _, err := io.ReadFull(f.conn, raw); err != nil {
		return nil, fmt.Errorf("protocol: connection closed mid-frame: %w", err)
	}

	if !f.compressionEnabled {
		return raw, nil
	}
	return f.decompress(raw)
}

func (f *Framer) decompress(raw []byte) ([]byte, error) {
	r := bytes.NewReader(raw)
	dataLength, err := ns.DecodeVarInt(r)
	if err != nil {
		return nil, fmt.Errorf("protocol: read data_length: %w", err)
	}
	rest, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if dataLength == 0 {
		return rest, nil
	}

	zr, err := zlib.NewReader(bytes.NewReader(rest))
	if err != nil {
		return nil, fmt.Errorf("protocol: decompress: %w", err)
	}
	defer zr.Close()

	out := make([]byte, dataLength)
	if _, err := io.ReadFull(zr, out); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
			return nil, ErrCompressedBodyShorterThanLength
		}
		return nil, fmt.Errorf("protocol: decompress: %w", err)
	}
	return out, nil
}

// WriteFrame frames and writes payload (packet id + body, uncompressed),
// applying compression per the enabled threshold. Encryption, if enabled
// on the underlying Conn, applies transparently to every byte written.
func (f *Framer) WriteFrame(payload []byte) error {
	frame, err := f.FrameBytes(payload)
	if err != nil {
		return err
	}
	_, err = f.conn.Write(frame)
	return err
}

// FrameBytes applies the same transforms as WriteFrame but returns the
// framed bytes instead of writing them, so a caller can batch several
// frames into one conn.Write (§4.6's queue/flush pattern).
func (f *Framer) FrameBytes(payload []byte) ([]byte, error) {
	var body []byte

	if f.compressionEnabled {
		if len(payload) >= f.compressionThreshold {
			compressed := compressZlib(payload, f.compressionLevel)
			body = append(ns.VarInt(len(payload)).ToBytes(), compressed...)
		} else {
			body = append(ns.VarInt(0).ToBytes(), payload...)
		}
	} else {
		body = payload
	}

	if len(body) > MaxFrameLength {
		return nil, fmt.Errorf("%w: got %d", ErrFrameTooLong, len(body))
	}

	return append(ns.VarInt(len(body)).ToBytes(), body...), nil
}

func compressZlib(data []byte, level int) []byte {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, level)
	if err != nil {
		w = zlib.NewWriter(&buf)
	}
	_, _ = w.Write(data)
	_ = w.Close()
	return buf.Bytes()
}
