// Package processor runs the per-video pipeline: plan the composition, render
// it, and push the artifacts to storage.
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"clipsmith/config"
	"clipsmith/planner"
	"clipsmith/types"
	"clipsmith/usage"
)

// Renderer renders a composition plan to a file. Satisfied by *render.Renderer.
type Renderer interface {
	Render(ctx context.Context, plan *types.CompositionPlan, outputPath string) error
}

// ArtifactStore uploads finished videos and plans. Satisfied by *storage.Store.
type ArtifactStore interface {
	UploadVideo(ctx context.Context, videoID, filePath string) (string, error)
	UploadPlan(ctx context.Context, plan *types.CompositionPlan) (string, error)
}

// VideoProcessor handles the planning and rendering pipeline for video jobs.
type VideoProcessor struct {
	assembler *planner.Assembler
	renderer  Renderer
	store     ArtifactStore        // may be nil: artifacts stay local
	recent    *usage.RecentTracker // may be nil: no cross-video exclusion
	outputDir string
	planOnly  bool
}

// Options configures a VideoProcessor.
type Options struct {
	Assembler *planner.Assembler
	Renderer  Renderer
	Store     ArtifactStore
	Recent    *usage.RecentTracker
	OutputDir string
	// PlanOnly skips rendering and writes only the plan JSON.
	PlanOnly bool
}

// New creates a VideoProcessor.
func New(opts Options) (*VideoProcessor, error) {
	if opts.Assembler == nil {
		return nil, fmt.Errorf("assembler is required")
	}
	if opts.Renderer == nil && !opts.PlanOnly {
		return nil, fmt.Errorf("renderer is required unless running plan-only")
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	if opts.Store == nil {
		log.Println("Artifact store not configured, keeping outputs local")
	}

	return &VideoProcessor{
		assembler: opts.Assembler,
		renderer:  opts.Renderer,
		store:     opts.Store,
		recent:    opts.Recent,
		outputDir: opts.OutputDir,
		planOnly:  opts.PlanOnly,
	}, nil
}

// Plan produces the composition plan for a job without rendering anything.
func (p *VideoProcessor) Plan(ctx context.Context, job types.VideoJob) (*types.CompositionPlan, error) {
	videoID := job.UUID
	if videoID == "" {
		videoID = uuid.New().String()
	}

	exclude := p.recent.Recent(ctx)
	plan, err := p.assembler.Assemble(ctx, videoID, job.Segments, exclude)
	if err != nil {
		return nil, fmt.Errorf("planning failed for %s: %w", videoID, err)
	}
	return plan, nil
}

// ProcessJob plans and renders one video job end to end.
func (p *VideoProcessor) ProcessJob(ctx context.Context, job types.VideoJob) error {
	start := time.Now()

	plan, err := p.Plan(ctx, job)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(p.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	planPath := filepath.Join(p.outputDir, plan.VideoID+".plan.json")
	if err := writePlan(plan, planPath); err != nil {
		return err
	}

	if p.planOnly {
		log.Printf("✅ Plan written: %s (%d segments, %.1fs)", planPath, len(plan.Entries), plan.TotalDuration)
		return nil
	}

	outputPath := filepath.Join(p.outputDir, plan.VideoID+".mp4")
	log.Printf("🎬 Rendering %s (%d segments, %.1fs)...", plan.VideoID, len(plan.Entries), plan.TotalDuration)
	if err := p.renderer.Render(ctx, plan, outputPath); err != nil {
		return fmt.Errorf("render failed for %s: %w", plan.VideoID, err)
	}

	p.recent.Mark(ctx, usedClips(plan))

	if p.store != nil {
		if _, err := p.store.UploadVideo(ctx, plan.VideoID, outputPath); err != nil {
			return fmt.Errorf("upload failed for %s: %w", plan.VideoID, err)
		}
		if _, err := p.store.UploadPlan(ctx, plan); err != nil {
			log.Printf("Warning: failed to upload plan for %s: %v", plan.VideoID, err)
		}
	}

	log.Printf("✅ Video created: %s (%.1fs elapsed)", outputPath, time.Since(start).Seconds())
	return nil
}

// ProcessDirectory plans and renders every job file in inputDir, bounded by
// MaxConcurrentVideos.
func (p *VideoProcessor) ProcessDirectory(ctx context.Context, inputDir string) error {
	files, err := filepath.Glob(filepath.Join(inputDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}
	if len(files) == 0 {
		log.Printf("No job files found in %s", inputDir)
		return nil
	}

	log.Printf("Found %d videos to process", len(files))

	var wg sync.WaitGroup
	semaphore := make(chan struct{}, config.MaxConcurrentVideos)

	for i, file := range files {
		wg.Add(1)

		go func(idx int, file string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if err := p.processFile(ctx, file, idx+1, len(files)); err != nil {
				log.Printf("❌ Failed to process %s: %v", file, err)
			}

			if idx < len(files)-1 {
				time.Sleep(config.VideoBatchDelay)
			}
		}(i, file)
	}

	wg.Wait()
	log.Println("All videos processed!")
	return nil
}

func (p *VideoProcessor) processFile(ctx context.Context, path string, current, total int) error {
	log.Printf("[%d/%d] Processing: %s", current, total, filepath.Base(path))

	job, err := ReadJobFile(path)
	if err != nil {
		return err
	}
	return p.ProcessJob(ctx, job)
}

// ReadJobFile loads and validates one job file.
func ReadJobFile(path string) (types.VideoJob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.VideoJob{}, fmt.Errorf("failed to read job file: %w", err)
	}

	var job types.VideoJob
	if err := json.Unmarshal(data, &job); err != nil {
		return types.VideoJob{}, fmt.Errorf("failed to parse job file: %w", err)
	}
	if job.Status != "" && job.Status != "success" {
		return types.VideoJob{}, fmt.Errorf("job status is not success: %s", job.Status)
	}
	if len(job.Segments) == 0 {
		return types.VideoJob{}, fmt.Errorf("job has no segments")
	}
	return job, nil
}

func writePlan(plan *types.CompositionPlan, path string) error {
	raw, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode plan: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write plan: %w", err)
	}
	return nil
}

// usedClips lists the clip paths a plan committed to, for recency tracking.
// Stills and placeholders are reusable and not tracked.
func usedClips(plan *types.CompositionPlan) []string {
	var paths []string
	for _, e := range plan.Entries {
		if e.Asset.Kind == types.AssetClip && e.Asset.Source == types.SourceLibrary {
			paths = append(paths, e.Asset.Path)
		}
	}
	return paths
}
