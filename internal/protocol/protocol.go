package protocol

import "encoding/json"

const Version = "1.0"

// Message types.
const (
	TypeHello   = "HELLO"
	TypeWelcome = "WELCOME"
	TypeScan    = "SCAN"
	TypeResult  = "RESULT"
	TypeError   = "ERROR"
)

// Scan modes.
const (
	ModeFindAll = "find_all"
	ModeNearest = "nearest"
	ModeCount   = "count"
)

// BaseMessage lets us route unknown JSON messages by type.
type BaseMessage struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version,omitempty"`
}

func DecodeBase(b []byte) (BaseMessage, error) {
	var m BaseMessage
	err := json.Unmarshal(b, &m)
	return m, err
}
