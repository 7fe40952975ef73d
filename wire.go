package telnet

import "bytes"

// formatter builds outbound telnet sequences. Data bytes equal to IAC must
// be doubled on the wire; the framing bytes written by command, subnegBegin
// and subnegEnd are never escaped.
type formatter struct {
	bytes.Buffer
}

func (f *formatter) raw(b byte) {
	f.WriteByte(b)
}

func (f *formatter) escaped(b byte) {
	f.raw(b)
	if b == IAC {
		f.raw(b)
	}
}

// twoByteEscaped writes n in network byte order, escaping each byte
// independently.
func (f *formatter) twoByteEscaped(n uint16) {
	f.escaped(byte(n >> 8))
	f.escaped(byte(n))
}

func (f *formatter) clampedTwoByteEscaped(n int) {
	if n < 0 {
		n = 0
	} else if n > 0xffff {
		n = 0xffff
	}
	f.twoByteEscaped(uint16(n))
}

func (f *formatter) escapedBytes(s []byte) {
	for _, b := range s {
		f.escaped(b)
	}
}

func (f *formatter) command(cmd byte) {
	f.raw(IAC)
	f.raw(cmd)
}

func (f *formatter) subnegBegin(opt byte) {
	f.command(SB)
	f.raw(opt)
}

func (f *formatter) subnegEnd() {
	f.command(SE)
}

func containsIAC(data []byte) bool {
	return bytes.IndexByte(data, IAC) >= 0
}
