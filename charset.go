package telnet

import (
	"errors"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
)

// TextCodec is the text-encoding collaborator the engine negotiates
// against via the CHARSET telopt. Implementations map between the wire
// charset and the application's internal text representation.
type TextCodec interface {
	// SupportedEncodings returns the charset names this codec is willing to
	// negotiate, in preference order. The names are offered to the remote
	// in CHARSET REQUEST subnegotiations.
	SupportedEncodings() []string
	// Supports reports whether the named charset may be negotiated.
	Supports(name []byte) bool
	// SetEncodingForName switches the active encoding to the named charset.
	SetEncodingForName(name []byte) error
	// Name returns the IANA name of the active encoding.
	Name() string
}

type currentCharset struct {
	name string

	encoder *encoding.Encoder
	decoder *encoding.Decoder
}

// Charset is the default TextCodec, backed by the IANA charset index.
type Charset struct {
	supported []string

	defaultCharset currentCharset
	negotiated     currentCharset
}

var _ TextCodec = (*Charset)(nil)

var errUnsupportedEncoding = errors.New("charset: unsupported encoding")

// NewCharset builds a Charset whose active encoding is defaultCodePage and
// which is willing to negotiate any of the supported names. When supported
// is empty, only the default code page is negotiable.
func NewCharset(defaultCodePage string, supported []string) (*Charset, error) {
	defaultCharset, err := buildCharset(defaultCodePage)
	if err != nil {
		return nil, err
	}

	if len(supported) == 0 {
		supported = []string{defaultCharset.name}
	}

	return &Charset{
		supported:      supported,
		defaultCharset: defaultCharset,
		negotiated:     defaultCharset,
	}, nil
}

func (c *Charset) Name() string {
	return c.negotiated.name
}

func (c *Charset) SupportedEncodings() []string {
	return c.supported
}

func (c *Charset) Supports(name []byte) bool {
	for _, candidate := range c.supported {
		if strings.EqualFold(candidate, string(name)) {
			_, err := buildCharset(candidate)
			return err == nil
		}
	}

	return false
}

func (c *Charset) SetEncodingForName(name []byte) error {
	charset, err := buildCharset(string(name))
	if err != nil {
		return err
	}

	c.negotiated = charset
	return nil
}

// Encode converts UTF-8 application text to the negotiated wire charset.
func (c *Charset) Encode(utf8Text string) ([]byte, error) {
	return c.negotiated.encoder.Bytes([]byte(utf8Text))
}

// Decode converts wire bytes to UTF-8 application text.
func (c *Charset) Decode(incomingText []byte) (string, error) {
	b, err := c.negotiated.decoder.Bytes(incomingText)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

func buildCharset(codePage string) (currentCharset, error) {
	if strings.EqualFold(codePage, "utf-8") {
		// The Replacement encoding's decoder rejects everything; its encoder
		// is the pass-through-with-replacement behavior we want in both
		// directions, so it backs the decoder too.
		return currentCharset{
			encoder: encoding.Replacement.NewEncoder(),
			decoder: &encoding.Decoder{Transformer: encoding.Replacement.NewEncoder()},
			name:    "UTF-8",
		}, nil
	}

	charset, err := ianaindex.IANA.Encoding(codePage)
	if err != nil {
		return currentCharset{}, err
	}
	if charset == nil {
		return currentCharset{}, errUnsupportedEncoding
	}
	name, err := ianaindex.IANA.Name(charset)
	if err != nil {
		return currentCharset{}, err
	}

	return currentCharset{
		encoder: charset.NewEncoder(),
		decoder: charset.NewDecoder(),
		name:    name,
	}, nil
}
