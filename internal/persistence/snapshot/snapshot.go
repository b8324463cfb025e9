// Package snapshot writes and reads world snapshots: a one-line JSON header
// followed by a gob body, zstd-compressed on disk.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"gridkit.dev/internal/worldstore"
)

type Header struct {
	Version int    `json:"version"`
	WorldID string `json:"world_id"`
}

type SnapshotV1 struct {
	Header Header `json:"header"`

	Gen    worldstore.Gen `json:"gen"`
	Chunks []ChunkV1      `json:"chunks"`
}

type ChunkV1 struct {
	CX, CY, CZ int
	Blocks     []uint16
}

// Capture copies the loaded chunks of a store into a snapshot, in sorted
// key order so equal worlds produce byte-identical snapshots.
func Capture(worldID string, s *worldstore.Store) SnapshotV1 {
	snap := SnapshotV1{
		Header: Header{Version: 1, WorldID: worldID},
		Gen:    s.Gen,
	}
	for _, k := range s.LoadedChunkKeys() {
		ch := s.Chunks[k]
		blocks := make([]uint16, len(ch.Blocks))
		copy(blocks, ch.Blocks)
		snap.Chunks = append(snap.Chunks, ChunkV1{CX: k.CX, CY: k.CY, CZ: k.CZ, Blocks: blocks})
	}
	return snap
}

// Restore rebuilds a store from a snapshot. Chunks not present in the
// snapshot regenerate from the captured Gen on first touch, which is
// identical to what they held at capture time unless they had been written.
func Restore(snap SnapshotV1) *worldstore.Store {
	s := worldstore.New(snap.Gen)
	for _, c := range snap.Chunks {
		s.GetOrGenChunk(c.CX, c.CY, c.CZ).ReplaceBlocks(c.Blocks)
	}
	return s
}

func Write(path string, snap SnapshotV1) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	defer enc.Close()

	bw := bufio.NewWriterSize(enc, 256*1024)
	defer bw.Flush()

	hb, _ := json.Marshal(snap.Header)
	if _, err := bw.Write(hb); err != nil {
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}

	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		return fmt.Errorf("gob encode: %w", err)
	}
	return nil
}

func Read(path string) (SnapshotV1, error) {
	var snap SnapshotV1
	f, err := os.Open(path)
	if err != nil {
		return snap, err
	}
	defer f.Close()

	dec, err := zstd.NewReader(f)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)

	// Header line is informational; the gob body repeats it.
	_, _ = br.ReadBytes('\n')

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// Latest returns the newest snapshot file under dir by name, or "" when
// none exists. Snapshot names embed a sortable UTC timestamp.
func Latest(dir string) string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".snap.zst") {
			continue
		}
		names = append(names, e.Name())
	}
	if len(names) == 0 {
		return ""
	}
	sort.Strings(names)
	return filepath.Join(dir, names[len(names)-1])
}
