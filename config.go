package telnet

import "log/slog"

const defaultTerminalType = "unknown"

type Config struct {
	// DefaultTerminalType is the terminal name reported in TERMINAL-TYPE IS
	// subnegotiations. It survives session resets; everything else the
	// engine tracks is per-connection. RFC 1091 expects an NVT terminal to
	// report "UNKNOWN" when it has nothing better to say, so that is the
	// fallback when this is left empty.
	DefaultTerminalType string

	// DefaultCharsetName is the registered IANA name of the character set
	// assumed before any CHARSET negotiation. RFC 854 specifies ASCII and
	// RFC 5198 upgraded the default to UTF-8, but plenty of live services
	// still speak Latin-1 or Big5 without negotiating, so this stays
	// configurable. Empty means UTF-8.
	DefaultCharsetName string

	// SupportedCharsets lists the IANA charset names the engine may accept
	// from a CHARSET REQUEST or offer in its own request, in preference
	// order. Empty means only DefaultCharsetName is negotiable.
	SupportedCharsets []string

	// Codec overrides the text-encoding collaborator. When nil, a Charset
	// is built from DefaultCharsetName and SupportedCharsets.
	Codec TextCodec

	// Logger receives protocol diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// Debug enables per-command protocol tracing at debug level. The
	// tracing is chatty enough that it gets its own switch rather than
	// relying on the handler's level alone.
	Debug bool

	Hooks EventHooks
}
