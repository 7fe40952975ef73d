package telnet

import "strconv"

// RFC 854 command codes.
const (
	SE   byte = 240 // Subnegotiation End
	NOP  byte = 241 // No Operation
	DM   byte = 242 // Data Mark
	BRK  byte = 243 // Break
	IP   byte = 244 // Interrupt Process
	AO   byte = 245 // Abort Output
	AYT  byte = 246 // Are You There?
	EC   byte = 247 // Erase Character
	EL   byte = 248 // Erase Line
	GA   byte = 249 // Go Ahead
	SB   byte = 250 // Subnegotiation Begin
	WILL byte = 251
	WONT byte = 252
	DO   byte = 253
	DONT byte = 254
	IAC  byte = 255 // Interpret As Command
)

// Option codes negotiated by this engine.
const (
	OptEcho            byte = 1   // RFC 857
	OptSuppressGoAhead byte = 3   // RFC 858
	OptStatus          byte = 5   // RFC 859
	OptTimingMark      byte = 6   // RFC 860
	OptTerminalType    byte = 24  // RFC 1091
	OptNAWS            byte = 31  // RFC 1073
	OptCharset         byte = 42  // RFC 2066
	OptCompress2       byte = 86  // MCCP2
	OptGMCP            byte = 201 // Generic Mud Communication Protocol
)

// Subnegotiation action codes. SEND and REQUEST share the value 1; which
// name applies depends on the option being subnegotiated.
const (
	subIS             byte = 0
	subSend           byte = 1
	subRequest        byte = 1
	subAccepted       byte = 2
	subRejected       byte = 3
	subTTableIS       byte = 4
	subTTableRejected byte = 5
	subTTableAck      byte = 6
	subTTableNak      byte = 7
)

var commandNames = map[byte]string{
	SE:   "SE",
	NOP:  "NOP",
	DM:   "DM",
	BRK:  "BRK",
	IP:   "IP",
	AO:   "AO",
	AYT:  "AYT",
	EC:   "EC",
	EL:   "EL",
	GA:   "GA",
	SB:   "SB",
	WILL: "WILL",
	WONT: "WONT",
	DO:   "DO",
	DONT: "DONT",
	IAC:  "IAC",
}

var optionNames = map[byte]string{
	OptEcho:            "ECHO",
	OptSuppressGoAhead: "SUPPRESS-GO-AHEAD",
	OptStatus:          "STATUS",
	OptTimingMark:      "TIMING-MARK",
	OptTerminalType:    "TERMINAL-TYPE",
	OptNAWS:            "NAWS",
	OptCharset:         "CHARSET",
	OptCompress2:       "COMPRESS2",
	OptGMCP:            "GMCP",
}

var subnegNames = map[byte]string{
	subIS:             "IS",
	subSend:           "SEND",
	subAccepted:       "ACCEPTED",
	subRejected:       "REJECTED",
	subTTableIS:       "TTABLE-IS",
	subTTableRejected: "TTABLE-REJECTED",
	subTTableAck:      "TTABLE-ACK",
	subTTableNak:      "TTABLE-NAK",
}

// commandName returns a readable name for a telnet command byte, used only
// for logging.
func commandName(cmd byte) string {
	name, ok := commandNames[cmd]
	if !ok {
		return strconv.Itoa(int(cmd))
	}
	return name
}

func optionName(opt byte) string {
	name, ok := optionNames[opt]
	if !ok {
		return strconv.Itoa(int(opt))
	}
	return name
}

func subnegName(action byte) string {
	name, ok := subnegNames[action]
	if !ok {
		return strconv.Itoa(int(action))
	}
	return name
}
