// Package telnet implements the client side of the TELNET protocol
// (RFC 854/855) with the option negotiation, subnegotiation, and framing
// behavior MUD servers expect: TERMINAL-TYPE, NAWS, CHARSET, GMCP, and
// transparent MCCP2 stream decompression. The Engine is a synchronous
// byte-stream state machine fed one delivery of raw bytes at a time; the
// Client wraps it around a net.Conn.
package telnet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// ErrCharsetTableNegotiation is returned when the remote answers a
// charset translation-table negotiation we never started. The exchange is
// impossible to reach from this engine, so receiving it means the two
// sides disagree about the conversation and the session must end.
var ErrCharsetTableNegotiation = errors.New("telnet: unsolicited charset TTABLE negotiation")

type parserState byte

const (
	stateNormal parserState = iota
	stateIAC
	stateCommand
	stateSubneg
	stateSubnegIAC
	stateSubnegCommand
)

const numOptions = 256

// Engine is the telnet protocol state machine. It consumes raw inbound
// bytes, answers option negotiation and subnegotiations on the sink, and
// emits cleaned application data through the configured hooks.
//
// The engine is synchronous and not safe for concurrent use: exactly one
// goroutine may drive it.
type Engine struct {
	sink   io.Writer
	codec  TextCodec
	logger *slog.Logger
	debug  bool
	hooks  EventHooks

	defaultTermType string
	termType        []byte

	state parserState

	// Option state, indexed by option code. myOptionState[opt] flips true
	// only when we send WILL or accept a peer DO for a supported option;
	// the announced vectors record that a WILL/WONT has been exchanged at
	// least once, which keeps both sides out of renegotiation loops.
	myOptionState    [numOptions]bool
	hisOptionState   [numOptions]bool
	announcedState   [numOptions]bool
	heAnnouncedState [numOptions]bool

	commandBuffer []byte
	subnegBuffer  []byte
	cleanData     []byte

	recvdGA       bool
	recvdCompress bool
	inflating     bool

	localWidth  int
	localHeight int

	gmcp gmcpState

	sentBytes int
}

// NewEngine builds an engine writing protocol replies to sink. The engine
// starts fully reset; only the configured terminal type and codec survive
// later resets.
func NewEngine(sink io.Writer, config Config) (*Engine, error) {
	codec := config.Codec
	if codec == nil {
		charsetName := config.DefaultCharsetName
		if charsetName == "" {
			charsetName = "UTF-8"
		}

		charset, err := NewCharset(charsetName, config.SupportedCharsets)
		if err != nil {
			return nil, err
		}
		codec = charset
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	termType := config.DefaultTerminalType
	if termType == "" {
		termType = defaultTerminalType
	}

	e := &Engine{
		sink:            sink,
		codec:           codec,
		logger:          logger,
		debug:           config.Debug,
		hooks:           config.Hooks,
		defaultTermType: termType,
	}
	e.Reset()

	return e, nil
}

// Reset returns every piece of per-connection state to its initial value:
// option vectors all false, parser in NORMAL, buffers and the GMCP module
// registry cleared. Used at construction and on reconnect.
func (e *Engine) Reset() {
	for i := 0; i < numOptions; i++ {
		e.myOptionState[i] = false
		e.hisOptionState[i] = false
		e.announcedState[i] = false
		e.heAnnouncedState[i] = false
	}

	e.termType = []byte(e.defaultTermType)
	e.state = stateNormal
	e.commandBuffer = e.commandBuffer[:0]
	e.subnegBuffer = e.subnegBuffer[:0]
	e.cleanData = e.cleanData[:0]
	e.sentBytes = 0
	e.recvdGA = false
	e.resetCompress()
	e.resetGMCPModules()
}

func (e *Engine) resetCompress() {
	e.inflating = false
	e.recvdCompress = false
	e.hisOptionState[OptCompress2] = false
}

func (e *Engine) resetGMCPModules() {
	if e.debug {
		e.logger.Debug("clearing gmcp modules")
	}
	e.gmcp.reset()
}

// Codec returns the text-encoding collaborator the engine negotiates
// against.
func (e *Engine) Codec() TextCodec {
	return e.codec
}

// LocalOptionEnabled reports whether we currently have opt enabled.
func (e *Engine) LocalOptionEnabled(opt byte) bool {
	return e.myOptionState[opt]
}

// RemoteOptionEnabled reports whether the peer currently has opt enabled.
func (e *Engine) RemoteOptionEnabled(opt byte) bool {
	return e.hisOptionState[opt]
}

// SentBytes returns the number of raw bytes written to the transport
// since the last reset.
func (e *Engine) SentBytes() int {
	return e.sentBytes
}

// SetTerminalType overrides the terminal name reported via TERMINAL-TYPE.
// It is meant to be called before the connection starts; the value
// survives resets.
func (e *Engine) SetTerminalType(name string) {
	e.defaultTermType = name
	e.termType = []byte(name)
}

// Receive classifies one delivery of inbound bytes. Cleaned application
// data is emitted through the IncomingData hook: once per Go-Ahead marker
// (tagged goAhead=true) and once for any residue when the delivery is
// exhausted (tagged goAhead=false).
//
// When the remote switches the stream to compressed mode mid-delivery,
// Receive stops and returns the unconsumed remainder, which the caller
// must route through a Decompressor together with all further transport
// bytes; inflated output comes back through Receive and frames
// identically. rest is nil in every other case.
//
// A non-nil error is fatal: the byte stream can no longer be trusted and
// the connection must be terminated.
func (e *Engine) Receive(data []byte) (rest []byte, err error) {
	for i := 0; i < len(data); i++ {
		if err := e.receiveByte(data[i]); err != nil {
			return nil, err
		}

		if e.recvdCompress {
			e.recvdCompress = false
			e.inflating = true
			// Compression takes effect on the next byte; hand the remainder
			// back so the caller can re-route it through the inflate stream.
			return data[i+1:], nil
		}

		if e.recvdGA {
			e.recvdGA = false
			e.raiseIncomingData(e.cleanData, true)
			e.cleanData = e.cleanData[:0]
		}
	}

	if len(e.cleanData) > 0 {
		e.raiseIncomingData(e.cleanData, false)
		e.cleanData = e.cleanData[:0]
	}

	return nil, nil
}

// receiveByte advances the parser by exactly one byte.
//
// Normal stream:                      Within a subnegotiation:
//
//	x               plaintext 0-254     x               payload 0-254
//	IAC IAC         plaintext 255       IAC IAC         payload 255
//	IAC <neg> x     negotiate           IAC <neg> x     negotiate
//	IAC SB          begin subneg        IAC SB          error, recover
//	IAC SE          error, recover      IAC SE          end subneg
//	IAC x           exec command        IAC x           exec command
//
// RFC 855 treats IAC SE as a command rather than a delimiter, which means
// commands may legally interrupt an in-progress subnegotiation; the
// SUBNEG_IAC and SUBNEG_COMMAND states handle that without disturbing the
// accumulated payload.
func (e *Engine) receiveByte(c byte) error {
	switch e.state {
	case stateNormal:
		if c == IAC {
			e.state = stateIAC
			e.commandBuffer = append(e.commandBuffer, c)
		} else {
			e.cleanData = append(e.cleanData, c)
		}

	case stateIAC:
		switch {
		case c == IAC:
			// escaped IAC: a literal 255 data byte
			e.state = stateNormal
			e.cleanData = append(e.cleanData, c)
			e.commandBuffer = e.commandBuffer[:0]
		case c == WILL || c == WONT || c == DO || c == DONT:
			e.state = stateCommand
			e.commandBuffer = append(e.commandBuffer, c)
		case c == SB:
			e.state = stateSubneg
			e.commandBuffer = e.commandBuffer[:0]
		case c == SE:
			// IAC SE without IAC SB, recovered locally
			e.logAnomaly("stray IAC SE outside subnegotiation")
			e.state = stateNormal
			e.commandBuffer = e.commandBuffer[:0]
		default:
			e.state = stateNormal
			e.commandBuffer = append(e.commandBuffer, c)
			e.processTelnetCommand(e.commandBuffer)
			e.commandBuffer = e.commandBuffer[:0]
		}

	case stateCommand:
		// the option byte of IAC WILL/WONT/DO/DONT
		e.state = stateNormal
		e.commandBuffer = append(e.commandBuffer, c)
		e.processTelnetCommand(e.commandBuffer)
		e.commandBuffer = e.commandBuffer[:0]

	case stateSubneg:
		if c == IAC {
			e.state = stateSubnegIAC
			e.commandBuffer = append(e.commandBuffer, c)
		} else {
			e.subnegBuffer = append(e.subnegBuffer, c)
		}

	case stateSubnegIAC:
		switch {
		case c == IAC:
			// escaped IAC inside the subnegotiation payload
			e.state = stateSubneg
			e.subnegBuffer = append(e.subnegBuffer, c)
			e.commandBuffer = e.commandBuffer[:0]
		case c == WILL || c == WONT || c == DO || c == DONT:
			e.state = stateSubnegCommand
			e.commandBuffer = append(e.commandBuffer, c)
		case c == SE:
			e.state = stateNormal
			err := e.processTelnetSubnegotiation(e.subnegBuffer)
			e.commandBuffer = e.commandBuffer[:0]
			e.subnegBuffer = e.subnegBuffer[:0]
			if err != nil {
				return err
			}
		case c == SB:
			// IAC SB within IAC SB, recovered locally
			e.logAnomaly("IAC SB inside subnegotiation")
			e.state = stateNormal
			e.commandBuffer = e.commandBuffer[:0]
			e.subnegBuffer = e.subnegBuffer[:0]
		default:
			e.state = stateSubneg
			e.commandBuffer = append(e.commandBuffer, c)
			e.processTelnetCommand(e.commandBuffer)
			e.commandBuffer = e.commandBuffer[:0]
		}

	case stateSubnegCommand:
		// the option byte of a negotiation that interrupted a subnegotiation
		e.state = stateSubneg
		e.commandBuffer = append(e.commandBuffer, c)
		e.processTelnetCommand(e.commandBuffer)
		e.commandBuffer = e.commandBuffer[:0]
	}

	return nil
}

// hisSupportedOptions are the options we agree to when the peer announces
// WILL.
func hisSupportedOption(opt byte) bool {
	switch opt {
	case OptSuppressGoAhead, OptStatus, OptTerminalType, OptNAWS, OptEcho, OptCharset, OptCompress2, OptGMCP:
		return true
	}
	return false
}

// mySupportedOptions are the options we agree to enable ourselves when the
// peer sends DO. COMPRESS2 is absent: this engine never deflates outbound.
func mySupportedOption(opt byte) bool {
	switch opt {
	case OptSuppressGoAhead, OptStatus, OptTerminalType, OptNAWS, OptEcho, OptCharset, OptGMCP:
		return true
	}
	return false
}

func (e *Engine) processTelnetCommand(command []byte) {
	switch len(command) {
	case 1:
		// a lone IAC, nothing to do

	case 2:
		ch := command[1]
		if ch != GA && e.debug {
			e.logger.Debug("processing telnet command", "command", commandName(ch))
		}

		switch ch {
		case AYT:
			e.sendAreYouThere()
		case GA:
			// consumed by the Receive loop to flush cleaned data
			e.recvdGA = true
		}

	case 3:
		ch := command[1]
		option := command[2]
		if e.debug {
			e.logger.Debug("processing telnet command",
				"command", commandName(ch), "option", optionName(option))
		}

		switch ch {
		case WILL:
			e.processWill(option)
		case WONT:
			e.processWont(option)
		case DO:
			e.processDo(option)
		case DONT:
			e.processDont(option)
		}

	default:
		// cannot happen given the state table; ignored like any other
		// unnegotiated command
	}
}

// processWill handles the peer wanting to enable an option on its side.
func (e *Engine) processWill(option byte) {
	e.heAnnouncedState[option] = true

	if e.hisOptionState[option] {
		// option announcement must not repeat unless requested
		e.logAnomaly("peer option already enabled", "option", optionName(option))
		return
	}

	if !e.myOptionState[option] {
		if hisSupportedOption(option) {
			e.sendTelnetOption(DO, option)
			e.hisOptionState[option] = true
			if option == OptEcho {
				e.raiseRemoteEcho(true)
			}
		} else {
			e.sendTelnetOption(DONT, option)
			e.hisOptionState[option] = false
		}
	} else if option == OptTerminalType {
		// If we already enabled TERMINAL-TYPE ourselves and the peer
		// announces it too, re-request the terminal type.
		e.sendTerminalTypeRequest()
	}
}

// processWont handles the peer refusing or disabling an option.
func (e *Engine) processWont(option byte) {
	if !e.myOptionState[option] {
		// send DONT if the option was on, or was never announced (RFC 854)
		if e.hisOptionState[option] || !e.heAnnouncedState[option] {
			e.sendTelnetOption(DONT, option)
			e.hisOptionState[option] = false
			if option == OptEcho {
				e.raiseRemoteEcho(false)
			}
		}
	}
	e.heAnnouncedState[option] = true
}

// processDo handles the peer asking us to enable an option on our side.
func (e *Engine) processDo(option byte) {
	if option == OptTimingMark {
		// keepalive courtesy, no state change
		e.sendTelnetOption(WILL, option)
		return
	}

	wasEnabled := e.myOptionState[option]
	if !wasEnabled {
		if mySupportedOption(option) {
			e.sendTelnetOption(WILL, option)
			e.myOptionState[option] = true
			e.announcedState[option] = true
		} else {
			e.sendTelnetOption(WONT, option)
			e.myOptionState[option] = false
			e.announcedState[option] = true
		}
	} else {
		e.logAnomaly("local option already enabled", "option", optionName(option))
	}

	if !e.myOptionState[option] || wasEnabled {
		return
	}

	// activation side effects, fired once per transition to enabled
	switch option {
	case OptNAWS:
		e.sendWindowSizeChanged(e.localWidth, e.localHeight)
	case OptCharset:
		e.sendCharsetRequest(e.codec.SupportedEncodings())
	case OptGMCP:
		e.raiseGMCPEnabled()
	}
}

// processDont handles the peer asking us to disable an option.
func (e *Engine) processDont(option byte) {
	// only respond if the value changed or the option was never announced
	if e.myOptionState[option] || !e.announcedState[option] {
		e.sendTelnetOption(WONT, option)
		e.announcedState[option] = true
	}
	e.myOptionState[option] = false
}

func (e *Engine) processTelnetSubnegotiation(payload []byte) error {
	if len(payload) == 0 {
		e.logAnomaly("empty subnegotiation")
		return nil
	}

	if e.debug {
		if len(payload) == 1 {
			e.logger.Debug("processing telnet subnegotiation", "option", optionName(payload[0]))
		} else {
			e.logger.Debug("processing telnet subnegotiation",
				"option", optionName(payload[0]), "action", subnegName(payload[1]))
		}
	}

	switch payload[0] {
	case OptStatus:
		// Reply with our view of the negotiation; if the remote sends its
		// own IS list unrequested we just ignore it.
		if len(payload) >= 2 && payload[1] == subSend {
			e.sendOptionStatus()
		}

	case OptTerminalType:
		if e.myOptionState[OptTerminalType] && len(payload) >= 2 {
			switch payload[1] {
			case subSend:
				e.sendTerminalType(e.termType)
			case subIS:
				e.raiseTerminalType(payload[2:])
			}
		}

	case OptCharset:
		if e.myOptionState[OptCharset] && len(payload) >= 2 {
			return e.processCharsetSubnegotiation(payload)
		}

	case OptCompress2:
		if e.hisOptionState[OptCompress2] {
			if e.inflating {
				e.logAnomaly("compression already enabled")
				break
			}
			if e.debug {
				e.logger.Debug("starting compression")
			}
			// The actual stream switch happens in the Receive loop so it
			// takes effect on the next byte, not retroactively.
			e.recvdCompress = true
		}

	case OptGMCP:
		if e.myOptionState[OptGMCP] {
			if len(payload) <= 1 {
				e.logger.Warn("invalid gmcp received", "payload", payload)
				break
			}

			msg, err := ParseGMCPMessage(payload[1:])
			if err != nil {
				e.logger.Warn("corrupted gmcp received", "error", err)
				break
			}
			if e.debug {
				e.logger.Debug("received gmcp message", "name", msg.Name, "json", string(msg.JSON))
			}

			e.handleCoreSupports(msg)
			e.raiseGMCPMessage(msg)
		}

	case OptNAWS:
		if e.myOptionState[OptNAWS] {
			// NAWS <16-bit width> <16-bit height>, big-endian
			if len(payload) != 5 {
				e.logger.Warn("corrupted naws received", "payload", payload)
				break
			}
			width := uint16(payload[1])<<8 | uint16(payload[2])
			height := uint16(payload[3])<<8 | uint16(payload[4])
			e.raiseWindowSize(width, height)
		}

	default:
		// subnegotiations for options we never negotiated are ignored
	}

	return nil
}

func (e *Engine) processCharsetSubnegotiation(payload []byte) error {
	switch payload[1] {
	case subRequest:
		// CHARSET REQUEST <sep> <charsets>; translation-table requests
		// ("[TTABLE]...") are not supported
		if len(payload) >= 4 && payload[2] != '[' {
			sep := payload[2]
			for _, characterSet := range bytes.Split(payload[3:], []byte{sep}) {
				if !e.codec.Supports(characterSet) {
					continue
				}
				if err := e.codec.SetEncodingForName(characterSet); err != nil {
					e.logger.Warn("failed to switch encoding", "charset", characterSet, "error", err)
					continue
				}
				e.sendCharsetAccepted(characterSet)
				return nil
			}
			if e.debug {
				e.logger.Debug("rejected encodings", "payload", payload[3:])
			}
		}
		// malformed request, or no offered charset is supported
		e.sendCharsetRejected()

	case subAccepted:
		// CHARSET ACCEPTED <charset>: the peer took one of our offers
		if len(payload) > 3 {
			characterSet := payload[2:]
			if err := e.codec.SetEncodingForName(characterSet); err != nil {
				e.logger.Warn("failed to switch encoding", "charset", characterSet, "error", err)
			}
		}

	case subRejected:
		// RFC 2066 would have us stop queueing data here; queueing is not
		// implemented, so there is nothing to do

	case subTTableIS:
		// we never request a translation table, so this cannot legally occur
		return ErrCharsetTableNegotiation
	}

	return nil
}

// handleCoreSupports applies Core.Supports.Set/Add/Remove messages to the
// module registry. Malformed entries are dropped one by one; a module
// announced without a version cannot be tracked and is skipped.
func (e *Engine) handleCoreSupports(msg GMCPMessage) {
	var enable bool
	switch {
	case strings.EqualFold(msg.Name, "Core.Supports.Set"):
		e.resetGMCPModules()
		enable = true
	case strings.EqualFold(msg.Name, "Core.Supports.Add"):
		enable = true
	case strings.EqualFold(msg.Name, "Core.Supports.Remove"):
		enable = false
	default:
		return
	}

	var entries []string
	if err := json.Unmarshal(msg.JSON, &entries); err != nil {
		e.logger.Warn("corrupted gmcp module list", "name", msg.Name, "error", err)
		return
	}

	for _, entry := range entries {
		module, err := ParseGMCPModule(entry)
		if err != nil {
			e.logger.Warn("corrupted gmcp module", "entry", entry, "error", err)
			continue
		}
		if err := e.ReceiveGMCPModule(module, enable); err != nil {
			e.logger.Warn("dropping gmcp module", "module", module.Name, "error", err)
		}
	}
}

// ReceiveGMCPModule records a module the remote peer declared enabled or
// disabled. Enabling a module without a version fails with
// ErrMissingGMCPVersion; the module is simply not tracked.
func (e *Engine) ReceiveGMCPModule(module GMCPModule, enabled bool) error {
	if enabled {
		if !module.HasVersion() {
			return ErrMissingGMCPVersion
		}
		if e.debug {
			e.logger.Debug("adding gmcp module", "module", module.String())
		}
		e.gmcp.add(module)
		return nil
	}

	if e.debug {
		e.logger.Debug("removing gmcp module", "module", module.String())
	}
	e.gmcp.remove(module)
	return nil
}

// IsGMCPModuleEnabled reports whether the remote peer declared a module of
// the given family, with GMCP active on our side.
func (e *Engine) IsGMCPModuleEnabled(moduleType GMCPModuleType) bool {
	if !e.myOptionState[OptGMCP] {
		return false
	}
	if moduleType < 0 || moduleType >= numModuleTypes {
		return false
	}

	return e.gmcp.supported[moduleType] != DefaultGMCPVersion
}

// Submit sends application data over the connection, doubling any IAC
// bytes. When goAhead is set, an IAC GA marker is appended unless the peer
// has negotiated SUPPRESS-GO-AHEAD.
func (e *Engine) Submit(data []byte, goAhead bool) {
	outdata := data
	if containsIAC(outdata) {
		var f formatter
		f.escapedBytes(outdata)
		outdata = f.Bytes()
	}

	if goAhead && !e.hisOptionState[OptSuppressGoAhead] {
		out := make([]byte, 0, len(outdata)+2)
		out = append(out, outdata...)
		out = append(out, IAC, GA)
		outdata = out
	}

	e.sendRawData(outdata)
}

// SetWindowSize records the local window dimensions and, when NAWS has
// been negotiated, announces them to the remote.
func (e *Engine) SetWindowSize(width, height int) {
	if e.localWidth == width && e.localHeight == height {
		return
	}

	e.localWidth = width
	e.localHeight = height

	if e.myOptionState[OptNAWS] || e.hisOptionState[OptNAWS] {
		e.sendWindowSizeChanged(width, height)
	}
}

// RequestTelnetOption announces our own WILL/WONT (or DO/DONT) for an
// option without waiting for the peer to ask, marking it announced so the
// eventual reply does not trigger a renegotiation.
func (e *Engine) RequestTelnetOption(command byte, option byte) {
	e.myOptionState[option] = true
	e.announcedState[option] = true
	e.sendTelnetOption(command, option)
}

// SendGMCP sends a GMCP message to the remote.
func (e *Engine) SendGMCP(msg GMCPMessage) {
	payload := msg.rawBytes()
	if e.debug {
		e.logger.Debug("sending gmcp", "payload", string(payload))
	}

	var f formatter
	f.subnegBegin(OptGMCP)
	f.escapedBytes(payload)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendWindowSizeChanged(width, height int) {
	if e.debug {
		e.logger.Debug("sending naws", "width", width, "height", height)
	}

	// RFC 1073: IAC SB NAWS WIDTH[1] WIDTH[0] HEIGHT[1] HEIGHT[0] IAC SE,
	// with 255-valued parameter bytes doubled per RFC 855
	var f formatter
	f.subnegBegin(OptNAWS)
	f.clampedTwoByteEscaped(width)
	f.clampedTwoByteEscaped(height)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendTelnetOption(command byte, option byte) {
	if e.debug {
		e.logger.Debug("sending telnet command",
			"command", commandName(command), "option", optionName(option))
	}

	e.sendRawData([]byte{IAC, command, option})
}

func (e *Engine) sendCharsetRequest(characterSets []string) {
	if e.debug {
		e.logger.Debug("requesting charsets", "charsets", characterSets)
	}

	const delimiter = ";"

	var f formatter
	f.subnegBegin(OptCharset)
	f.raw(subRequest)
	for _, characterSet := range characterSets {
		f.escapedBytes([]byte(delimiter))
		f.escapedBytes([]byte(characterSet))
	}
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendCharsetAccepted(characterSet []byte) {
	if e.debug {
		e.logger.Debug("accepted charset", "charset", string(characterSet))
	}

	var f formatter
	f.subnegBegin(OptCharset)
	f.raw(subAccepted)
	f.escapedBytes(characterSet)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendCharsetRejected() {
	var f formatter
	f.subnegBegin(OptCharset)
	f.raw(subRejected)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendTerminalType(terminalType []byte) {
	if e.debug {
		e.logger.Debug("sending terminal type", "type", string(terminalType))
	}

	var f formatter
	f.subnegBegin(OptTerminalType)
	f.escaped(subIS) // never actually needs escaping
	f.escapedBytes(terminalType)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendTerminalTypeRequest() {
	var f formatter
	f.subnegBegin(OptTerminalType)
	f.escaped(subSend)
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

// sendOptionStatus replies to STATUS SEND with one WILL pair per option we
// have enabled and one DO pair per option the peer has enabled.
func (e *Engine) sendOptionStatus() {
	var f formatter
	f.subnegBegin(OptStatus)
	f.raw(subIS)
	for i := 0; i < numOptions; i++ {
		if e.myOptionState[i] {
			f.raw(WILL)
			f.raw(byte(i))
		}
		if e.hisOptionState[i] {
			f.raw(DO)
			f.raw(byte(i))
		}
	}
	f.subnegEnd()
	e.sendRawData(f.Bytes())
}

func (e *Engine) sendAreYouThere() {
	// The reply will likely be parsed as command input by the remote, but
	// a server impatient enough to send AYT can cope with that.
	e.sendRawData([]byte("I'm here! Please be more patient!\r\n"))
}

func (e *Engine) sendRawData(data []byte) {
	e.sentBytes += len(data)
	if _, err := e.sink.Write(data); err != nil {
		e.raiseError(fmt.Errorf("telnet: transport write: %w", err))
	}
}

func (e *Engine) logAnomaly(msg string, args ...any) {
	if e.debug {
		e.logger.Debug(msg, args...)
	}
}

func (e *Engine) raiseIncomingData(data []byte, goAhead bool) {
	if e.hooks.IncomingData != nil {
		e.hooks.IncomingData(data, goAhead)
	}
}

func (e *Engine) raiseRemoteEcho(enabled bool) {
	if e.hooks.RemoteEcho != nil {
		e.hooks.RemoteEcho(enabled)
	}
}

func (e *Engine) raiseWindowSize(width, height uint16) {
	if e.hooks.WindowSize != nil {
		e.hooks.WindowSize(width, height)
	}
}

func (e *Engine) raiseTerminalType(terminalType []byte) {
	if e.hooks.TerminalType != nil {
		e.hooks.TerminalType(terminalType)
	}
}

func (e *Engine) raiseGMCPEnabled() {
	if e.hooks.GMCPEnabled != nil {
		e.hooks.GMCPEnabled()
	}
}

func (e *Engine) raiseGMCPMessage(msg GMCPMessage) {
	if e.hooks.GMCPMessage != nil {
		e.hooks.GMCPMessage(msg)
	}
}

func (e *Engine) raiseError(err error) {
	if e.hooks.EncounteredError != nil {
		e.hooks.EncounteredError(err)
	}
}
