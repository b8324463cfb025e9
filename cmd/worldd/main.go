package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"gridkit.dev/internal/catalogs"
	"gridkit.dev/internal/persistence/indexdb"
	"gridkit.dev/internal/persistence/querylog"
	"gridkit.dev/internal/persistence/snapshot"
	"gridkit.dev/internal/query"
	"gridkit.dev/internal/transport/ws"
	"gridkit.dev/internal/tuning"
	"gridkit.dev/internal/worldstore"
)

func main() {
	var (
		addr       = flag.String("addr", ":8080", "http listen address")
		worldID    = flag.String("world", "world_1", "world id")
		configDir  = flag.String("configs", "./configs", "config directory")
		dataDir    = flag.String("data", "./data", "runtime data directory")
		tuningPath = flag.String("tuning", "", "path to tuning.yaml (default: <configs>/tuning.yaml)")
		disableDB  = flag.Bool("disable_db", false, "disable the sqlite index")

		snapPath   = flag.String("snapshot", "", "path to snapshot to load (optional)")
		loadLatest = flag.Bool("load_latest_snapshot", true, "load latest snapshot from data dir if present (when -snapshot is empty)")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[worldd] ", log.LstdFlags|log.Lmicroseconds)

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		logger.Fatalf("load catalogs: %v", err)
	}

	tp := strings.TrimSpace(*tuningPath)
	if tp == "" {
		tp = filepath.Join(*configDir, "tuning.yaml")
	}
	tune, err := tuning.Load(tp)
	if err != nil {
		logger.Fatalf("load tuning: %v", err)
	}

	worldDir := filepath.Join(*dataDir, "worlds", *worldID)
	_ = os.MkdirAll(worldDir, 0o755)

	store, resumed := openStore(*snapPath, *loadLatest, worldDir, cats, tune, logger)

	var idx *indexdb.SQLiteIndex
	if !*disableDB {
		idx, err = indexdb.Open(filepath.Join(worldDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
	}

	qlog := querylog.NewWriter(filepath.Join(worldDir, "queries"), "queries")
	defer qlog.Close()

	limits := query.Limits{
		MaxRegionVolume: tune.MaxRegionVolume,
		MaxResults:      tune.MaxResults,
	}
	engine := query.New(cats, store, limits)
	srv := ws.NewServer(engine, ws.Config{
		WorldSeed:          store.Gen.Seed,
		WorldBoundaryR:     store.Gen.BoundaryR,
		WorldHeight:        store.Gen.Height,
		BlockPaletteDigest: cats.Blocks.PaletteDigest,
		BlockPaletteCount:  len(cats.Blocks.Palette),
		ItemPaletteDigest:  cats.Items.PaletteDigest,
		ItemPaletteCount:   len(cats.Items.Palette),
		Limits:             limits,
		RateWindow:         time.Duration(tune.RateLimits.ScanWindowSec) * time.Second,
		RateMax:            tune.RateLimits.ScanMax,
	}, logger)

	served := func(rec ws.QueryServed) {
		if err := qlog.Write(rec); err != nil {
			logger.Printf("query log: %v", err)
		}
		idx.RecordQuery(rec)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/ws", srv.Handler(served))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{Addr: *addr, Handler: mux}

	// Periodic snapshots.
	stopSnap := make(chan struct{})
	if tune.SnapshotEverySec > 0 {
		go func() {
			t := time.NewTicker(time.Duration(tune.SnapshotEverySec) * time.Second)
			defer t.Stop()
			for {
				select {
				case <-stopSnap:
					return
				case <-t.C:
					writeSnapshot(worldDir, *worldID, store, idx, logger)
				}
			}
		}()
	}

	go func() {
		logger.Printf("world %s serving on %s (resumed=%v, seed=%d)", *worldID, *addr, resumed, store.Gen.Seed)
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("listen: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	logger.Printf("shutting down")
	close(stopSnap)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = httpSrv.Shutdown(ctx)

	writeSnapshot(worldDir, *worldID, store, idx, logger)
}

// openStore resumes from a snapshot when one is available, otherwise builds
// a fresh world from tuning.
func openStore(snapPath string, loadLatest bool, worldDir string, cats *catalogs.Catalogs, tune tuning.Tuning, logger *log.Logger) (*worldstore.Store, bool) {
	path := strings.TrimSpace(snapPath)
	if path == "" && loadLatest {
		path = snapshot.Latest(worldDir)
	}
	if path != "" {
		snap, err := snapshot.Read(path)
		if err != nil {
			logger.Fatalf("read snapshot %s: %v", path, err)
		}
		logger.Printf("resumed from %s (%d chunks)", path, len(snap.Chunks))
		return snapshot.Restore(snap), true
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
	}), false
}

func writeSnapshot(worldDir, worldID string, store *worldstore.Store, idx *indexdb.SQLiteIndex, logger *log.Logger) {
	snap := snapshot.Capture(worldID, store)
	name := fmt.Sprintf("%s-%s.snap.zst", worldID, time.Now().UTC().Format("20060102T150405Z"))
	path := filepath.Join(worldDir, name)
	if err := snapshot.Write(path, snap); err != nil {
		logger.Printf("write snapshot: %v", err)
		return
	}
	idx.RecordSnapshot(path, snap)
	logger.Printf("snapshot %s (%d chunks)", path, len(snap.Chunks))
}
