package protocol_test

import (
	"bytes"
	"net"
	"testing"

	"github.com/mcproxy/mcproxy/protocol"
)

func framerPair(t *testing.T) (*protocol.Framer, *protocol.Framer, *protocol.Conn, *protocol.Conn, func()) {
	t.Helper()
	clientNet, serverNet := net.Pipe()
	clientConn := protocol.NewConn(clientNet)
	serverConn := protocol.NewConn(serverNet)
	writer := protocol.NewFramer(clientConn)
	reader := protocol.NewFramer(serverConn)
	return writer, reader, clientConn, serverConn, func() {
		clientNet.Close()
		serverNet.Close()
	}
}

func testFrameRoundTrip(t *testing.T, writer, reader *protocol.Framer, payload []byte) {
	t.Helper()
	errc := make(chan error, 1)
	go func() { errc <- writer.WriteFrame(payload) }()

	got, err := reader.ReadFrame()
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if err := <-errc; err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("round trip payload mismatch: got % x, want % x", got, payload)
	}
}

func TestFramerRoundTripNoTransforms(t *testing.T) {
	writer, reader, _, _, cleanup := framerPair(t)
	defer cleanup()
	testFrameRoundTrip(t, writer, reader, []byte{0x00, 1, 2, 3, 4, 5})
}

func TestFramerRoundTripCompression(t *testing.T) {
	writer, reader, _, _, cleanup := framerPair(t)
	defer cleanup()
	writer.EnableCompression(8, -1)
	reader.EnableCompression(8, -1)

	// Below threshold: sent uncompressed (data_length 0 marker).
	testFrameRoundTrip(t, writer, reader, []byte{0x01, 2, 3})

	// Above threshold: actually compressed.
	large := bytes.Repeat([]byte{0xab}, 4096)
	testFrameRoundTrip(t, writer, reader, large)
}

func TestFramerRoundTripCompressionAndEncryption(t *testing.T) {
	writer, reader, clientConn, serverConn, cleanup := framerPair(t)
	defer cleanup()
	writer.EnableCompression(8, -1)
	reader.EnableCompression(8, -1)

	secret := bytes.Repeat([]byte{0x42}, 16)
	if err := clientConn.EnableEncryption(secret); err != nil {
		t.Fatalf("enable encryption on writer side: %v", err)
	}
	if err := serverConn.EnableEncryption(secret); err != nil {
		t.Fatalf("enable encryption on reader side: %v", err)
	}

	testFrameRoundTrip(t, writer, reader, bytes.Repeat([]byte{0x09}, 2048))
	testFrameRoundTrip(t, writer, reader, []byte{0x01, 0x02, 0x03})
}

func TestFramerArbitraryChunkSizes(t *testing.T) {
	writer, reader, clientConn, _, cleanup := framerPair(t)
	defer cleanup()

	payloads := [][]byte{
		{0x00},
		bytes.Repeat([]byte{0x11}, 1),
		bytes.Repeat([]byte{0x22}, 300),
		bytes.Repeat([]byte{0x33}, 65536),
	}
	for _, chunk := range []int{1, 2, 7, 1024} {
		for _, p := range payloads {
			frame, err := writer.FrameBytes(p)
			if err != nil {
				t.Fatalf("FrameBytes: %v", err)
			}
			errc := make(chan error, 1)
			go func() {
				for i := 0; i < len(frame); i += chunk {
					if _, err := clientConn.Write(frame[i:min(i+chunk, len(frame))]); err != nil {
						errc <- err
						return
					}
				}
				errc <- nil
			}()

			got, err := reader.ReadFrame()
			if err != nil {
				t.Fatalf("ReadFrame (chunk %d): %v", chunk, err)
			}
			if err := <-errc; err != nil {
				t.Fatalf("write chunk %d: %v", chunk, err)
			}
			if !bytes.Equal(got, p) {
				t.Errorf("chunk %d: payload mismatch: got %d bytes, want %d", chunk, len(got), len(p))
			}
		}
	}
}

func TestFrameTooLong(t *testing.T) {
	writer, _, _, _, cleanup := framerPair(t)
	defer cleanup()

	oversized := bytes.Repeat([]byte{0x01}, protocol.MaxFrameLength+1)
	if err := writer.WriteFrame(oversized); err == nil {
		t.Fatal("expected an error writing an oversized frame")
	}
}
