// Package library loads the read-only asset pools the planner selects from:
// category folders of stills and clips, plus the background-music pool.
package library

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"clipsmith/types"
)

var stillExtensions = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".webp": true,
}

var clipExtensions = map[string]bool{
	".mp4": true, ".mov": true, ".avi": true, ".mkv": true, ".webm": true,
}

var musicExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".m4a": true, ".aac": true, ".ogg": true,
}

// Dir is an asset library backed by a directory of category folders, e.g.
// media_library/bitcoin/*.mp4. Pools are scanned once at startup and never
// mutated afterwards.
type Dir struct {
	root  string
	pools map[string][]types.Asset
}

// ScanDir builds a library from root. A missing root yields an empty library
// rather than an error: the planner falls back to generation or placeholders.
func ScanDir(root string) (*Dir, error) {
	d := &Dir{root: root, pools: make(map[string][]types.Asset)}

	entries, err := os.ReadDir(root)
	if os.IsNotExist(err) {
		log.Printf("Warning: media library %s does not exist; all segments will use fallbacks", root)
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read media library: %w", err)
	}

	total := 0
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		assets, err := scanCategory(filepath.Join(root, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to scan category %s: %w", entry.Name(), err)
		}
		if len(assets) > 0 {
			d.pools[entry.Name()] = assets
			total += len(assets)
		}
	}

	log.Printf("Loaded %d assets across %d categories from %s", total, len(d.pools), root)
	return d, nil
}

// Pool returns the assets for one category. The returned slice must be
// treated as read-only.
func (d *Dir) Pool(category string) []types.Asset {
	return d.pools[category]
}

// Categories lists the non-empty categories in sorted order.
func (d *Dir) Categories() []string {
	out := make([]string, 0, len(d.pools))
	for c := range d.pools {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func scanCategory(dir string) ([]types.Asset, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var assets []types.Asset
	for _, f := range files {
		ext := strings.ToLower(filepath.Ext(f))
		switch {
		case stillExtensions[ext]:
			assets = append(assets, types.Asset{
				Path:   f,
				Kind:   types.AssetStill,
				Source: types.SourceLibrary,
			})
		case clipExtensions[ext]:
			duration, err := probeDuration(f)
			if err != nil {
				log.Printf("Warning: skipping unreadable clip %s: %v", f, err)
				continue
			}
			assets = append(assets, types.Asset{
				Path:           f,
				Kind:           types.AssetClip,
				Source:         types.SourceLibrary,
				NativeDuration: duration,
			})
		}
	}
	return assets, nil
}

// MusicPool is the background-music track pool.
type MusicPool struct {
	tracks []types.MusicTrack
}

// ScanMusicDir loads the music pool from dir. A missing or empty directory
// yields an empty pool; the assembler then plans a synthesized tone instead.
func ScanMusicDir(dir string) (*MusicPool, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to read music directory: %w", err)
	}
	sort.Strings(files)

	pool := &MusicPool{}
	for _, f := range files {
		if !musicExtensions[strings.ToLower(filepath.Ext(f))] {
			continue
		}
		duration, err := probeDuration(f)
		if err != nil {
			log.Printf("Warning: skipping unreadable track %s: %v", f, err)
			continue
		}
		pool.tracks = append(pool.tracks, types.MusicTrack{Path: f, Duration: duration})
	}

	log.Printf("Loaded %d background music tracks from %s", len(pool.tracks), dir)
	return pool, nil
}

// Tracks returns the pooled tracks in path order.
func (p *MusicPool) Tracks() []types.MusicTrack {
	return p.tracks
}

// probeDuration reads a media file's duration via ffprobe.
func probeDuration(path string) (float64, error) {
	raw, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("probe failed: %w", err)
	}

	var probed struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(raw), &probed); err != nil {
		return 0, fmt.Errorf("failed to parse probe output: %w", err)
	}

	duration, err := strconv.ParseFloat(probed.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", probed.Format.Duration, err)
	}
	return duration, nil
}

// Static is an in-memory library, used by tests and the dry-run API.
type Static map[string][]types.Asset

// Pool implements the planner's library contract.
func (s Static) Pool(category string) []types.Asset { return s[category] }
