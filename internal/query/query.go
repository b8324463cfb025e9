// Package query resolves protocol scan requests against a world store,
// enforcing the tuning limits before handing the region to the scanner.
package query

import (
	"fmt"
	"time"

	"gridkit.dev/grid"
	"gridkit.dev/internal/catalogs"
	"gridkit.dev/internal/protocol"
	"gridkit.dev/internal/worldstore"
	"gridkit.dev/scan"
)

type Limits struct {
	MaxRegionVolume int64
	MaxResults      int
}

type Engine struct {
	cats   *catalogs.Catalogs
	store  *worldstore.Store
	limits Limits
}

func New(cats *catalogs.Catalogs, store *worldstore.Store, limits Limits) *Engine {
	return &Engine{cats: cats, store: store, limits: limits}
}

// Err is a protocol-level query failure carrying its wire code.
type Err struct {
	Code string
	Msg  string
}

func (e *Err) Error() string { return e.Code + ": " + e.Msg }

func errf(code, format string, args ...any) *Err {
	return &Err{Code: code, Msg: fmt.Sprintf(format, args...)}
}

// Execute runs one scan request and builds its result message. Failures are
// returned as *Err so the transport can map them onto ERROR messages.
func (e *Engine) Execute(msg protocol.ScanMsg) (protocol.ResultMsg, *Err) {
	start := time.Now()

	region, qerr := e.region(msg)
	if qerr != nil {
		return protocol.ResultMsg{}, qerr
	}
	pred, qerr := e.predicate(msg.Match)
	if qerr != nil {
		return protocol.ResultMsg{}, qerr
	}

	res := protocol.ResultMsg{
		Type:    protocol.TypeResult,
		QueryID: msg.QueryID,
		Mode:    msg.Mode,
	}
	lookup := e.store.Lookup()

	switch msg.Mode {
	case protocol.ModeFindAll:
		scan.Each(region, lookup, pred, func(p grid.Vec3i) bool {
			if len(res.Positions) >= e.limits.MaxResults {
				res.Truncated = true
				return false
			}
			res.Positions = append(res.Positions, p.ToArray())
			return true
		})
		res.Count = len(res.Positions)
	case protocol.ModeCount:
		res.Count = scan.Count(region, lookup, pred)
	case protocol.ModeNearest:
		// The region was validated as center+radius by e.region, then
		// clamped to world bounds; a running minimum over the row-major
		// walk keeps FindNearest's tie-break.
		center := grid.Vec3i{X: msg.Center[0], Y: msg.Center[1], Z: msg.Center[2]}
		var best grid.Vec3i
		var bestD int64
		found := false
		scan.Each(region, lookup, pred, func(p grid.Vec3i) bool {
			d := grid.DistSq(center, p)
			if !found || d < bestD {
				best = p
				bestD = d
				found = true
			}
			return bestD != 0
		})
		if found {
			res.Positions = [][3]int{best.ToArray()}
			res.Count = 1
		}
	default:
		return protocol.ResultMsg{}, errf(protocol.ErrBadRequest, "unknown mode %q", msg.Mode)
	}

	res.TookMs = time.Since(start).Milliseconds()
	return res, nil
}

func (e *Engine) region(msg protocol.ScanMsg) (grid.Region, *Err) {
	hasCube := msg.Center != nil && msg.Radius != nil
	hasBox := msg.Min != nil && msg.Max != nil

	var r grid.Region
	switch {
	case hasCube && hasBox:
		return r, errf(protocol.ErrBadRequest, "both cube and box region given")
	case hasCube:
		c := grid.Vec3i{X: msg.Center[0], Y: msg.Center[1], Z: msg.Center[2]}
		r = grid.Cube(c, *msg.Radius)
	case hasBox:
		r = grid.Box(
			grid.Vec3i{X: msg.Min[0], Y: msg.Min[1], Z: msg.Min[2]},
			grid.Vec3i{X: msg.Max[0], Y: msg.Max[1], Z: msg.Max[2]},
		)
	default:
		if msg.Mode == protocol.ModeNearest {
			return r, errf(protocol.ErrBadRequest, "nearest requires center and radius")
		}
		return r, errf(protocol.ErrBadRequest, "no region given")
	}
	if msg.Mode == protocol.ModeNearest && !hasCube {
		return r, errf(protocol.ErrBadRequest, "nearest requires center and radius")
	}

	clamped, ok := r.Clamp(e.store.Bounds())
	if !ok {
		return r, errf(protocol.ErrOutOfBounds, "region entirely outside the world")
	}
	if v := clamped.Volume(); v > e.limits.MaxRegionVolume {
		return r, errf(protocol.ErrRegionTooLarge, "region volume %d exceeds limit %d", v, e.limits.MaxRegionVolume)
	}
	return clamped, nil
}

func (e *Engine) predicate(m protocol.MatchSpec) (scan.Pred[uint16], *Err) {
	var ids map[uint16]struct{}
	if len(m.Blocks) > 0 {
		ids = make(map[uint16]struct{}, len(m.Blocks))
		for _, name := range m.Blocks {
			id, ok := e.cats.Blocks.Index[name]
			if !ok {
				return nil, errf(protocol.ErrUnknownBlock, "unknown block %q", name)
			}
			ids[id] = struct{}{}
		}
	}

	var class func(uint16) bool
	switch m.Class {
	case "":
	case "solid":
		class = e.cats.Solid
	case "breakable":
		class = e.cats.Breakable
	default:
		return nil, errf(protocol.ErrBadRequest, "unknown class %q", m.Class)
	}

	if ids == nil && class == nil {
		return nil, errf(protocol.ErrBadRequest, "empty match")
	}
	return func(b uint16) bool {
		if ids != nil {
			if _, ok := ids[b]; !ok {
				return false
			}
		}
		if class != nil && !class(b) {
			return false
		}
		return true
	}, nil
}
