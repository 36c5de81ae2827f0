package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"strings"

	"clipsmith/api"
	"clipsmith/config"
	"clipsmith/kafka"
	"clipsmith/library"
	"clipsmith/orchestrator"
	"clipsmith/planner"
	"clipsmith/processor"
	"clipsmith/render"
	"clipsmith/storage"
	"clipsmith/usage"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP API server")
	consume := flag.Bool("consume", false, "consume video jobs from Kafka")
	planOnly := flag.Bool("plan-only", false, "write composition plans without rendering")
	cronSpec := flag.String("cron", "", "cron spec for repeated input-directory sweeps, e.g. \"0 * * * *\"")
	overlayPath := flag.String("overlay", "", "brand overlay image (empty disables the overlay)")
	flag.Parse()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	proc, err := buildProcessor(cfg, *planOnly, *overlayPath)
	if err != nil {
		log.Fatalf("Failed to initialize pipeline: %v", err)
	}

	switch {
	case *serve:
		runServer(proc)
	case *consume:
		runConsumer(proc)
	case *cronSpec != "":
		o := orchestrator.New(proc, cfg.InputDir)
		if err := o.RunScheduled(context.Background(), *cronSpec); err != nil {
			log.Fatalf("Scheduler failed: %v", err)
		}
	default:
		o := orchestrator.New(proc, cfg.InputDir)
		if err := o.RunOnce(context.Background()); err != nil {
			log.Fatalf("Batch run failed: %v", err)
		}
	}
}

// buildProcessor wires the asset library, planner, renderer and the optional
// S3/Redis collaborators into a VideoProcessor.
func buildProcessor(cfg config.Config, planOnly bool, overlayPath string) (*processor.VideoProcessor, error) {
	lib, err := library.ScanDir(cfg.MediaLibraryDir)
	if err != nil {
		return nil, err
	}
	music, err := library.ScanMusicDir(cfg.MusicDir)
	if err != nil {
		return nil, err
	}

	matcher := planner.NewMatcher(lib, nil, planner.MatcherConfig{
		Seed:            cfg.Seed,
		GenerateTimeout: cfg.GenerateTimeout,
	})
	assembler := planner.NewAssembler(planner.Config{
		SpeedFactor:       cfg.SpeedFactor,
		OverlayPeriod:     cfg.OverlayRotationPeriod,
		MusicFadeDuration: cfg.MusicFadeDuration,
		MinSpan:           cfg.MinRenderableSpan,
		FrameRate:         config.FrameRate,
		Width:             config.VideoWidth,
		Height:            config.VideoHeight,
		TitleMaxLen:       config.TitleMaxLength,
		WordsPerCue:       config.WordsPerCue,
		Seed:              cfg.Seed,
	}, matcher, music)

	var store processor.ArtifactStore
	if cfg.S3Bucket != "" {
		s, err := storage.NewStore(context.Background(), storage.StoreConfig{
			Bucket:       cfg.S3Bucket,
			Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
			Prefix:       strings.Trim(os.Getenv("S3_PREFIX"), "/"),
			UsePathStyle: strings.EqualFold(os.Getenv("S3_USE_PATH_STYLE"), "true"),
		})
		if err != nil {
			log.Printf("Warning: failed to init S3 client: %v (uploads disabled)", err)
		} else {
			store = s
		}
	}

	recent, err := usage.NewRecentTrackerFromEnv()
	if err != nil {
		log.Printf("Warning: failed to init recent-clip tracker: %v (recency disabled)", err)
		recent = nil
	}

	return processor.New(processor.Options{
		Assembler: assembler,
		Renderer:  render.New(render.Options{OverlayPath: overlayPath}),
		Store:     store,
		Recent:    recent,
		OutputDir: cfg.OutputDir,
		PlanOnly:  planOnly,
	})
}

func runServer(proc *processor.VideoProcessor) {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	server := api.NewServer(proc)
	log.Printf("Starting API server on %s", addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /health")
	log.Println("  POST /api/videos")
	log.Println("  POST /api/plan")

	if err := http.ListenAndServe(addr, server.Router()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func runConsumer(proc *processor.VideoProcessor) {
	consumer, err := kafka.NewJobConsumer(kafka.ConsumerConfig{
		Brokers: kafka.Brokers(),
		Topic:   kafka.Topic(),
		GroupID: kafka.GroupID(),
	}, proc)
	if err != nil {
		log.Fatalf("Failed to create Kafka consumer: %v", err)
	}

	if err := kafka.RunWithGracefulShutdown(consumer); err != nil {
		log.Fatalf("Consumer failed: %v", err)
	}
}
