package protocol

// HELLO (client -> server)
type HelloMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	ClientName      string `json:"client_name"`
}

// WELCOME (server -> client)
type WelcomeMsg struct {
	Type            string         `json:"type"`
	ProtocolVersion string         `json:"protocol_version"`
	SessionID       string         `json:"session_id"`
	WorldParams     WorldParams    `json:"world_params"`
	Catalogs        CatalogDigests `json:"catalogs"`
	Limits          Limits         `json:"limits"`
}

type WorldParams struct {
	Seed      int64 `json:"seed"`
	BoundaryR int   `json:"boundary_r"`
	Height    int   `json:"height"`
}

type CatalogDigests struct {
	BlockPalette DigestRef `json:"block_palette"`
	ItemPalette  DigestRef `json:"item_palette"`
}

type DigestRef struct {
	Digest string `json:"digest"`
	Count  int    `json:"count"`
}

type Limits struct {
	MaxRegionVolume int64 `json:"max_region_volume"`
	MaxResults      int   `json:"max_results"`
}

// SCAN (client -> server). The region is either center+radius or min/max
// box corners; exactly one form must be present. Match selects cells by
// block ids, by class ("solid" / "breakable"), or both.
type ScanMsg struct {
	Type            string `json:"type"`
	ProtocolVersion string `json:"protocol_version"`
	QueryID         string `json:"query_id"`
	Mode            string `json:"mode"`

	Center *[3]int `json:"center,omitempty"`
	Radius *int    `json:"radius,omitempty"`
	Min    *[3]int `json:"min,omitempty"`
	Max    *[3]int `json:"max,omitempty"`

	Match MatchSpec `json:"match"`
}

type MatchSpec struct {
	Blocks []string `json:"blocks,omitempty"`
	Class  string   `json:"class,omitempty"`
}

// RESULT (server -> client)
type ResultMsg struct {
	Type      string   `json:"type"`
	QueryID   string   `json:"query_id"`
	Mode      string   `json:"mode"`
	Positions [][3]int `json:"positions,omitempty"`
	Count     int      `json:"count"`
	Truncated bool     `json:"truncated,omitempty"`
	TookMs    int64    `json:"took_ms"`
}

// ERROR (server -> client)
type ErrorMsg struct {
	Type    string `json:"type"`
	QueryID string `json:"query_id,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message,omitempty"`
}
