// Package ws serves the scan query protocol over websocket.
package ws

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"gridkit.dev/internal/protocol"
	"gridkit.dev/internal/query"
)

type Config struct {
	WorldSeed      int64
	WorldBoundaryR int
	WorldHeight    int

	BlockPaletteDigest string
	BlockPaletteCount  int
	ItemPaletteDigest  string
	ItemPaletteCount   int

	Limits query.Limits

	// Per-connection rate limit: at most RateMax scans per RateWindow.
	// Zero disables limiting.
	RateWindow time.Duration
	RateMax    int
}

type Server struct {
	engine *query.Engine
	cfg    Config
	log    *log.Logger

	// Serializes query execution: the store generates chunks on first
	// touch, so concurrent reads are not safe without this.
	mu sync.Mutex

	nextSession atomic.Uint64

	upgrader websocket.Upgrader
}

func NewServer(engine *query.Engine, cfg Config, logger *log.Logger) *Server {
	return &Server{
		engine: engine,
		cfg:    cfg,
		log:    logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
	}
}

// QueryServed is the audit record emitted after each executed query.
type QueryServed struct {
	SessionID string `json:"session_id"`
	QueryID   string `json:"query_id"`
	Mode      string `json:"mode"`
	Count     int    `json:"count"`
	Truncated bool   `json:"truncated,omitempty"`
	ErrCode   string `json:"err_code,omitempty"`
	TookMs    int64  `json:"took_ms"`
	At        string `json:"at"`
}

// Handler upgrades the connection and runs the session loop. served, when
// non-nil, receives one audit record per executed query.
func (s *Server) Handler(served func(QueryServed)) http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		sessionID := s.handshake(conn)
		if sessionID == "" {
			return
		}
		s.log.Printf("session %s connected from %s", sessionID, r.RemoteAddr)

		windowStart := time.Now()
		windowCount := 0

		for {
			_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			_, msg, err := conn.ReadMessage()
			if err != nil {
				break
			}
			base, err := protocol.DecodeBase(msg)
			if err != nil {
				s.writeError(conn, "", protocol.ErrProtoBadRequest, "not a protocol message")
				continue
			}
			if base.Type != protocol.TypeScan {
				s.writeError(conn, "", protocol.ErrProtoBadRequest, fmt.Sprintf("unexpected type %q", base.Type))
				continue
			}
			var scanMsg protocol.ScanMsg
			if err := json.Unmarshal(msg, &scanMsg); err != nil {
				s.writeError(conn, "", protocol.ErrProtoBadRequest, "malformed SCAN")
				continue
			}
			if scanMsg.ProtocolVersion != protocol.Version {
				s.writeError(conn, scanMsg.QueryID, protocol.ErrProtoBadRequest, "bad protocol_version")
				continue
			}
			if scanMsg.QueryID == "" {
				s.writeError(conn, "", protocol.ErrProtoBadRequest, "missing query_id")
				continue
			}

			if s.cfg.RateMax > 0 {
				now := time.Now()
				if now.Sub(windowStart) > s.cfg.RateWindow {
					windowStart = now
					windowCount = 0
				}
				windowCount++
				if windowCount > s.cfg.RateMax {
					s.writeError(conn, scanMsg.QueryID, protocol.ErrRateLimit, "scan rate limit exceeded")
					continue
				}
			}

			s.mu.Lock()
			res, qerr := s.engine.Execute(scanMsg)
			s.mu.Unlock()

			rec := QueryServed{
				SessionID: sessionID,
				QueryID:   scanMsg.QueryID,
				Mode:      scanMsg.Mode,
				At:        time.Now().UTC().Format(time.RFC3339),
			}
			if qerr != nil {
				rec.ErrCode = qerr.Code
				s.writeError(conn, scanMsg.QueryID, qerr.Code, qerr.Msg)
			} else {
				rec.Count = res.Count
				rec.Truncated = res.Truncated
				rec.TookMs = res.TookMs
				if err := writeJSON(conn, res); err != nil {
					break
				}
			}
			if served != nil {
				served(rec)
			}
		}
		s.log.Printf("session %s disconnected", sessionID)
	}
}

func (s *Server) handshake(conn *websocket.Conn) string {
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return ""
	}

	base, err := protocol.DecodeBase(msg)
	if err != nil || base.Type != protocol.TypeHello {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"), time.Now().Add(time.Second))
		return ""
	}

	var hello protocol.HelloMsg
	if err := json.Unmarshal(msg, &hello); err != nil {
		return ""
	}
	if hello.ProtocolVersion != protocol.Version {
		_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "bad protocol_version"), time.Now().Add(time.Second))
		return ""
	}

	sessionID := fmt.Sprintf("S%d", s.nextSession.Add(1))
	welcome := protocol.WelcomeMsg{
		Type:            protocol.TypeWelcome,
		ProtocolVersion: protocol.Version,
		SessionID:       sessionID,
		WorldParams: protocol.WorldParams{
			Seed:      s.cfg.WorldSeed,
			BoundaryR: s.cfg.WorldBoundaryR,
			Height:    s.cfg.WorldHeight,
		},
		Catalogs: protocol.CatalogDigests{
			BlockPalette: protocol.DigestRef{Digest: s.cfg.BlockPaletteDigest, Count: s.cfg.BlockPaletteCount},
			ItemPalette:  protocol.DigestRef{Digest: s.cfg.ItemPaletteDigest, Count: s.cfg.ItemPaletteCount},
		},
		Limits: protocol.Limits{
			MaxRegionVolume: s.cfg.Limits.MaxRegionVolume,
			MaxResults:      s.cfg.Limits.MaxResults,
		},
	}
	if err := writeJSON(conn, welcome); err != nil {
		return ""
	}
	return sessionID
}

func (s *Server) writeError(conn *websocket.Conn, queryID, code, message string) {
	_ = writeJSON(conn, protocol.ErrorMsg{
		Type:    protocol.TypeError,
		QueryID: queryID,
		Code:    code,
		Message: message,
	})
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, b)
}
