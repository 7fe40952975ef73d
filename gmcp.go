package telnet

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMalformedGMCP      = errors.New("gmcp: malformed message")
	ErrMissingGMCPVersion = errors.New("gmcp: module announced without a version")
)

// GMCPMessage is a single GMCP exchange: a dotted package/message name and
// an optional JSON body carried verbatim.
type GMCPMessage struct {
	Name string
	JSON json.RawMessage
}

// ParseGMCPMessage parses a raw GMCP subnegotiation body of the form
// "Package[.SubPackage...].Message <optional JSON>".
func ParseGMCPMessage(raw []byte) (GMCPMessage, error) {
	name := raw
	var body []byte

	if space := bytes.IndexByte(raw, ' '); space >= 0 {
		name = raw[:space]
		body = bytes.TrimSpace(raw[space+1:])
	}

	if !validGMCPName(string(name)) {
		return GMCPMessage{}, fmt.Errorf("%w: bad name %q", ErrMalformedGMCP, name)
	}

	msg := GMCPMessage{Name: string(name)}
	if len(body) > 0 {
		if !json.Valid(body) {
			return GMCPMessage{}, fmt.Errorf("%w: invalid json in %q", ErrMalformedGMCP, msg.Name)
		}
		msg.JSON = json.RawMessage(bytes.Clone(body))
	}

	return msg, nil
}

// rawBytes serializes the message for the wire, before IAC escaping.
func (m GMCPMessage) rawBytes() []byte {
	if len(m.JSON) == 0 {
		return []byte(m.Name)
	}

	out := make([]byte, 0, len(m.Name)+1+len(m.JSON))
	out = append(out, m.Name...)
	out = append(out, ' ')
	out = append(out, m.JSON...)
	return out
}

func (m GMCPMessage) String() string {
	return string(m.rawBytes())
}

func validGMCPName(name string) bool {
	if name == "" {
		return false
	}

	for _, part := range strings.Split(name, ".") {
		if part == "" {
			return false
		}
		for _, r := range part {
			switch {
			case r >= 'a' && r <= 'z':
			case r >= 'A' && r <= 'Z':
			case r >= '0' && r <= '9':
			case r == '_' || r == '-':
			default:
				return false
			}
		}
	}

	return true
}

// GMCPModuleType identifies the module families the application cares
// about. Everything else parses fine but reports ModuleUnknown.
type GMCPModuleType int

const (
	ModuleUnknown GMCPModuleType = iota
	ModuleChar
	ModuleComm
	ModuleEvent
	ModuleGroup
	ModuleRoom

	numModuleTypes
)

// DefaultGMCPVersion is the sentinel "not negotiated" module version.
const DefaultGMCPVersion = 0

var moduleTypeNames = map[GMCPModuleType]string{
	ModuleChar:  "Char",
	ModuleComm:  "Comm",
	ModuleEvent: "Event",
	ModuleGroup: "Group",
	ModuleRoom:  "Room",
}

func (t GMCPModuleType) String() string {
	name, ok := moduleTypeNames[t]
	if !ok {
		return "Unknown"
	}
	return name
}

// GMCPModule is one entry of a Core.Supports list: a dotted module name
// and the version the remote peer speaks. Version 0 means no version was
// given.
type GMCPModule struct {
	Name    string
	Version int
}

// ParseGMCPModule parses a Core.Supports entry such as "Char 1". The
// version part is optional at parse time; callers that require a version
// check HasVersion.
func ParseGMCPModule(s string) (GMCPModule, error) {
	name := strings.TrimSpace(s)
	version := 0

	if space := strings.IndexByte(name, ' '); space >= 0 {
		versionText := strings.TrimSpace(name[space+1:])
		name = name[:space]

		v, err := strconv.Atoi(versionText)
		if err != nil || v < 1 {
			return GMCPModule{}, fmt.Errorf("%w: bad version %q", ErrMalformedGMCP, versionText)
		}
		version = v
	}

	if !validGMCPName(name) {
		return GMCPModule{}, fmt.Errorf("%w: bad module name %q", ErrMalformedGMCP, name)
	}

	return GMCPModule{Name: name, Version: version}, nil
}

func (m GMCPModule) HasVersion() bool {
	return m.Version != DefaultGMCPVersion
}

// Type maps the module's first name segment onto a known module family.
func (m GMCPModule) Type() GMCPModuleType {
	head := m.Name
	if dot := strings.IndexByte(head, '.'); dot >= 0 {
		head = head[:dot]
	}

	for t, name := range moduleTypeNames {
		if strings.EqualFold(name, head) {
			return t
		}
	}

	return ModuleUnknown
}

// Supported reports whether the module belongs to a family this engine
// tracks a negotiated version for.
func (m GMCPModule) Supported() bool {
	return m.Type() != ModuleUnknown
}

func (m GMCPModule) String() string {
	if !m.HasVersion() {
		return m.Name
	}
	return m.Name + " " + strconv.Itoa(m.Version)
}

// gmcpState tracks which modules the remote peer has declared enabled and
// the negotiated version per module family. Reset together with the rest
// of the session.
type gmcpState struct {
	modules   map[string]GMCPModule
	supported [numModuleTypes]int
}

func (g *gmcpState) reset() {
	g.modules = make(map[string]GMCPModule)
	for i := range g.supported {
		g.supported[i] = DefaultGMCPVersion
	}
}

func (g *gmcpState) add(module GMCPModule) {
	g.modules[strings.ToLower(module.Name)] = module
	if module.Supported() {
		g.supported[module.Type()] = module.Version
	}
}

func (g *gmcpState) remove(module GMCPModule) {
	delete(g.modules, strings.ToLower(module.Name))
	if module.Supported() {
		g.supported[module.Type()] = DefaultGMCPVersion
	}
}
