// Command scan runs one block query against a snapshot (or a freshly
// generated world) without starting a server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gridkit.dev/internal/catalogs"
	"gridkit.dev/internal/persistence/snapshot"
	"gridkit.dev/internal/protocol"
	"gridkit.dev/internal/query"
	"gridkit.dev/internal/tuning"
	"gridkit.dev/internal/worldstore"
)

func main() {
	var (
		configDir = flag.String("configs", "./configs", "config directory")
		snapPath  = flag.String("snapshot", "", "snapshot to load (empty: generate from tuning)")

		mode   = flag.String("mode", "find_all", "find_all | nearest | count")
		center = flag.String("center", "", "region center as x,y,z")
		radius = flag.Int("radius", -1, "region radius (with -center)")
		minC   = flag.String("min", "", "box corner as x,y,z")
		maxC   = flag.String("max", "", "box corner as x,y,z")

		blocks = flag.String("blocks", "", "comma-separated block ids to match")
		class  = flag.String("class", "", "block class to match: solid | breakable")
		asJSON = flag.Bool("json", false, "print the raw RESULT message")
	)
	flag.Parse()

	logger := log.New(os.Stderr, "[scan] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}
	tune, err := tuning.Load(filepath.Join(*configDir, "tuning.yaml"))
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	store := openStore(*snapPath, cats, tune, logger)
	engine := query.New(cats, store, query.Limits{
		MaxRegionVolume: tune.MaxRegionVolume,
		MaxResults:      tune.MaxResults,
	})

	msg := protocol.ScanMsg{
		Type:            protocol.TypeScan,
		ProtocolVersion: protocol.Version,
		QueryID:         "cli-1",
		Mode:            *mode,
	}
	if *center != "" {
		c, err := parseVec(*center)
		if err != nil {
			logger.Fatalf("-center: %v", err)
		}
		r := *radius
		msg.Center, msg.Radius = &c, &r
	}
	if *minC != "" || *maxC != "" {
		a, err := parseVec(*minC)
		if err != nil {
			logger.Fatalf("-min: %v", err)
		}
		b, err := parseVec(*maxC)
		if err != nil {
			logger.Fatalf("-max: %v", err)
		}
		msg.Min, msg.Max = &a, &b
	}
	if *blocks != "" {
		for _, b := range strings.Split(*blocks, ",") {
			msg.Match.Blocks = append(msg.Match.Blocks, strings.TrimSpace(b))
		}
	}
	msg.Match.Class = *class

	res, qerr := engine.Execute(msg)
	if qerr != nil {
		logger.Fatalf("%s: %s", qerr.Code, qerr.Msg)
	}

	if *asJSON {
		out, _ := json.Marshal(res)
		fmt.Println(string(out))
		return
	}
	switch res.Mode {
	case protocol.ModeCount:
		fmt.Println(res.Count)
	default:
		for _, p := range res.Positions {
			fmt.Printf("%d %d %d\n", p[0], p[1], p[2])
		}
		if res.Truncated {
			fmt.Fprintf(os.Stderr, "(truncated at %d)\n", len(res.Positions))
		}
	}
}

func openStore(snapPath string, cats *catalogs.Catalogs, tune tuning.Tuning, logger *log.Logger) *worldstore.Store {
	if snapPath != "" {
		snap, err := snapshot.Read(snapPath)
		if err != nil {
			logger.Fatalf("read snapshot: %v", err)
		}
		return snapshot.Restore(snap)
	}
	return worldstore.New(worldstore.Gen{
		Seed:            tune.Seed,
		BoundaryR:       tune.BoundaryR,
		Height:          tune.Height,
		SurfaceY:        tune.SurfaceY,
		OreGrid:         8,
		OreRadius:       2,
		OreProbPermille: 120,
		Air:             cats.Blocks.Index["AIR"],
		Bedrock:         cats.Blocks.Index["BEDROCK"],
		Stone:           cats.Blocks.Index["STONE"],
		Dirt:            cats.Blocks.Index["DIRT"],
		Grass:           cats.Blocks.Index["GRASS"],
		CoalOre:         cats.Blocks.Index["COAL_ORE"],
		IronOre:         cats.Blocks.Index["IRON_ORE"],
	})
}

func parseVec(s string) ([3]int, error) {
	var v [3]int
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return v, fmt.Errorf("want x,y,z, got %q", s)
	}
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return v, fmt.Errorf("bad coordinate %q", p)
		}
		v[i] = n
	}
	return v, nil
}
