// Package orchestrator drives batch runs: sweep the input directory for job
// files, process them, and optionally repeat on a cron schedule.
package orchestrator

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/robfig/cron/v3"

	"clipsmith/processor"
)

// Orchestrator sweeps inputDir and hands job files to the processor.
type Orchestrator struct {
	processor *processor.VideoProcessor
	inputDir  string
}

// New creates an Orchestrator.
func New(proc *processor.VideoProcessor, inputDir string) *Orchestrator {
	return &Orchestrator{processor: proc, inputDir: inputDir}
}

// RunOnce executes a single sweep of the input directory and logs a summary.
func (o *Orchestrator) RunOnce(ctx context.Context) error {
	log.Println("=== Clipsmith Batch Run ===")

	files, err := filepath.Glob(filepath.Join(o.inputDir, "*.json"))
	if err != nil {
		return fmt.Errorf("failed to read input directory: %w", err)
	}
	log.Printf("Found %d job file(s) in %s", len(files), o.inputDir)

	if len(files) > 0 {
		if err := o.processor.ProcessDirectory(ctx, o.inputDir); err != nil {
			return fmt.Errorf("batch processing failed: %w", err)
		}
	}

	log.Println("=== Batch Run Complete ===")
	return nil
}

// RunScheduled runs RunOnce on the given cron spec (e.g. "0 * * * *") until
// SIGINT/SIGTERM. An immediate first sweep runs before the schedule starts.
func (o *Orchestrator) RunScheduled(ctx context.Context, spec string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := o.RunOnce(ctx); err != nil {
		log.Printf("Warning: initial sweep failed: %v", err)
	}

	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		if err := o.RunOnce(ctx); err != nil {
			log.Printf("❌ Scheduled sweep failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}

	c.Start()
	log.Printf("Scheduler started with spec %q", spec)

	sigterm := make(chan os.Signal, 1)
	signal.Notify(sigterm, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigterm:
		log.Println("Received termination signal")
	case <-ctx.Done():
		log.Println("Context canceled")
	}

	stopCtx := c.Stop()
	<-stopCtx.Done()
	return nil
}
