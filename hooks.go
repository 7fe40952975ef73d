package telnet

// IncomingDataEvent delivers a chunk of cleaned application bytes. goAhead
// is true when the chunk was terminated by an IAC GA marker, false when it
// was flushed because the current delivery ran out of bytes.
type IncomingDataEvent func(data []byte, goAhead bool)

// RemoteEchoEvent fires when the remote enables or disables the ECHO option.
type RemoteEchoEvent func(enabled bool)

// WindowSizeEvent delivers a window size announced by the remote via NAWS.
type WindowSizeEvent func(width, height uint16)

// TerminalTypeEvent delivers the terminal type declared by the remote.
type TerminalTypeEvent func(terminalType []byte)

// GMCPEnabledEvent fires once when GMCP becomes active on our side.
type GMCPEnabledEvent func()

// GMCPMessageEvent delivers a parsed GMCP message.
type GMCPMessageEvent func(msg GMCPMessage)

// EncounteredErrorEvent reports a non-fatal error raised while the engine
// was doing background work, such as a failed transport write.
type EncounteredErrorEvent func(err error)

// EventHooks carries the callbacks the engine uses to talk to its
// consumer. Any field may be nil.
type EventHooks struct {
	IncomingData IncomingDataEvent

	RemoteEcho   RemoteEchoEvent
	WindowSize   WindowSizeEvent
	TerminalType TerminalTypeEvent

	GMCPEnabled GMCPEnabledEvent
	GMCPMessage GMCPMessageEvent

	EncounteredError EncounteredErrorEvent
}
