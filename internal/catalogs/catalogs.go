// Package catalogs loads the block and item definition files and derives
// the stable palettes and digests the protocol advertises.
package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

type Catalogs struct {
	Blocks BlockCatalog
	Items  ItemCatalog
}

type BlockCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]BlockDef
	PaletteDigest string
	DefsDigest    string
}

type BlockDef struct {
	ID        string `json:"id"`
	Solid     bool   `json:"solid"`
	Breakable bool   `json:"breakable"`
	DropsItem string `json:"drops_item,omitempty"`
}

type ItemCatalog struct {
	Palette       []string
	Index         map[string]uint16
	Defs          map[string]ItemDef
	PaletteDigest string
	DefsDigest    string
}

type ItemDef struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"` // "BLOCK","TOOL","MATERIAL","FOOD"
	MaxStack int    `json:"max_stack,omitempty"`
	PlaceAs  string `json:"place_as,omitempty"`
}

func Load(configDir string) (*Catalogs, error) {
	var c Catalogs
	if err := loadBlocks(filepath.Join(configDir, "blocks.json"), &c.Blocks); err != nil {
		return nil, err
	}
	if err := loadItems(filepath.Join(configDir, "items.json"), &c.Items); err != nil {
		return nil, err
	}
	return &c, nil
}

// MaxStack returns the stacking limit for an item, falling back to 64 for
// unknown items and items without an explicit limit.
func (c *Catalogs) MaxStack(item string) int {
	if c == nil {
		return 64
	}
	if def, ok := c.Items.Defs[item]; ok && def.MaxStack > 0 {
		return def.MaxStack
	}
	return 64
}

// Solid reports whether a palette block id is solid. Unknown ids are treated
// as solid, matching the conservative default for unmapped world data.
func (c *Catalogs) Solid(b uint16) bool {
	name := c.BlockName(b)
	if name == "" {
		return true
	}
	def, ok := c.Blocks.Defs[name]
	if !ok {
		return true
	}
	return def.Solid
}

func (c *Catalogs) Breakable(b uint16) bool {
	name := c.BlockName(b)
	if name == "" {
		return false
	}
	return c.Blocks.Defs[name].Breakable
}

func (c *Catalogs) BlockName(b uint16) string {
	if c == nil || int(b) >= len(c.Blocks.Palette) {
		return ""
	}
	return c.Blocks.Palette[b]
}

// DropFor maps a broken block to the item it drops, or "" when it drops
// nothing.
func (c *Catalogs) DropFor(b uint16) string {
	name := c.BlockName(b)
	if name == "" {
		return ""
	}
	def, ok := c.Blocks.Defs[name]
	if !ok {
		return ""
	}
	if def.DropsItem != "" {
		return def.DropsItem
	}
	// Blocks with a same-named item drop themselves.
	if _, ok := c.Items.Defs[name]; ok {
		return name
	}
	return ""
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func loadBlocks(path string, out *BlockCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []BlockDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("blocks.json: %w", err)
	}
	out.Defs = map[string]BlockDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("blocks.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	// Ensure AIR exists and is palette id 0.
	if _, ok := out.Defs["AIR"]; !ok {
		return fmt.Errorf("blocks.json: missing AIR")
	}
	ids = append([]string{"AIR"}, filterOut(ids, "AIR")...)

	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func loadItems(path string, out *ItemCatalog) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out.DefsDigest = sha256Hex(raw)

	var defs []ItemDef
	if err := json.Unmarshal(raw, &defs); err != nil {
		return fmt.Errorf("items.json: %w", err)
	}
	out.Defs = map[string]ItemDef{}
	for _, d := range defs {
		if d.ID == "" {
			return fmt.Errorf("items.json: empty id")
		}
		out.Defs[d.ID] = d
	}

	ids := make([]string, 0, len(out.Defs))
	for id := range out.Defs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out.Palette = ids
	out.Index = make(map[string]uint16, len(ids))
	for i, id := range ids {
		out.Index[id] = uint16(i)
	}
	palJSON, _ := json.Marshal(ids)
	out.PaletteDigest = sha256Hex(palJSON)
	return nil
}

func filterOut(in []string, remove string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == remove {
			continue
		}
		out = append(out, s)
	}
	return out
}
