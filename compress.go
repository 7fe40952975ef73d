package telnet

import (
	"compress/zlib"
	"errors"
	"fmt"
	"io"
)

var (
	// ErrCompressionInit is returned when the zlib stream cannot be set up,
	// usually because the remote sent garbage where the stream header
	// belongs.
	ErrCompressionInit = errors.New("telnet: unable to initialize zlib stream")
	// ErrCompressionCorrupt is returned for any terminal codec condition
	// after the stream started, including a clean deflate stream end. Once
	// the compressed stream breaks the byte stream can no longer be
	// trusted, so the session must end.
	ErrCompressionCorrupt = errors.New("telnet: compressed stream corrupted")
)

// Decompressor wraps the inflate codec for MCCP2. It is INACTIVE until the
// remote signals start-of-compression, then ACTIVE until a protocol reset
// or a codec failure tears the stream down. While active, reads return
// inflated plaintext which must be fed back through the same byte
// classifier as raw socket bytes.
type Decompressor struct {
	stream io.ReadCloser
}

// Active reports whether an inflate stream currently exists.
func (d *Decompressor) Active() bool {
	return d.stream != nil
}

// Begin allocates a fresh inflate stream over src. src must deliver the
// compressed byte stream starting at the first byte after the COMPRESS2
// subnegotiation.
func (d *Decompressor) Begin(src io.Reader) error {
	if d.stream != nil {
		return fmt.Errorf("%w: stream already active", ErrCompressionInit)
	}

	stream, err := zlib.NewReader(src)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCompressionInit, err)
	}

	d.stream = stream
	return nil
}

// Read drains inflated bytes from the active stream. Every codec error is
// terminal: the stream is torn down and the error is reported as fatal.
// A clean end of the deflate stream is treated the same way, since the
// remote has no legitimate reason to end it mid-session.
func (d *Decompressor) Read(p []byte) (int, error) {
	if d.stream == nil {
		return 0, io.EOF
	}

	n, err := d.stream.Read(p)
	if err != nil {
		d.End()
		return n, fmt.Errorf("%w: %v", ErrCompressionCorrupt, err)
	}

	return n, nil
}

// End releases the inflate stream, returning the decompressor to INACTIVE.
func (d *Decompressor) End() {
	if d.stream == nil {
		return
	}

	_ = d.stream.Close()
	d.stream = nil
}
