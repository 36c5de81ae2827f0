package processor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"clipsmith/library"
	"clipsmith/planner"
	"clipsmith/types"
)

type recordingRenderer struct {
	plans []*types.CompositionPlan
}

func (r *recordingRenderer) Render(ctx context.Context, plan *types.CompositionPlan, outputPath string) error {
	r.plans = append(r.plans, plan)
	return os.WriteFile(outputPath, []byte("mp4"), 0o644)
}

func testProcessor(t *testing.T, outputDir string, planOnly bool) (*VideoProcessor, *recordingRenderer) {
	t.Helper()
	assembler := planner.NewAssembler(
		planner.Config{SpeedFactor: 1.0},
		planner.NewMatcher(library.Static{}, nil, planner.MatcherConfig{}),
		nil,
	)
	renderer := &recordingRenderer{}
	p, err := New(Options{
		Assembler: assembler,
		Renderer:  renderer,
		OutputDir: outputDir,
		PlanOnly:  planOnly,
	})
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return p, renderer
}

func testJob() types.VideoJob {
	return types.VideoJob{
		UUID:   "job-1",
		Status: "success",
		Segments: []types.Segment{
			{Index: 0, Text: "markets open", AudioPath: "a.mp3", AudioDuration: 3},
			{Index: 1, Text: "markets close", AudioPath: "b.mp3", AudioDuration: 4},
		},
	}
}

func TestProcessJobWritesPlanAndVideo(t *testing.T) {
	dir := t.TempDir()
	p, renderer := testProcessor(t, dir, false)

	if err := p.ProcessJob(context.Background(), testJob()); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}

	if len(renderer.plans) != 1 {
		t.Fatalf("renderer called %d times; want 1", len(renderer.plans))
	}
	if renderer.plans[0].VideoID != "job-1" {
		t.Fatalf("plan video id = %q; want job-1", renderer.plans[0].VideoID)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "job-1.plan.json"))
	if err != nil {
		t.Fatalf("plan file missing: %v", err)
	}
	var plan types.CompositionPlan
	if err := json.Unmarshal(raw, &plan); err != nil {
		t.Fatalf("plan file is not valid JSON: %v", err)
	}
	if len(plan.Entries) != 2 {
		t.Fatalf("plan has %d entries; want 2", len(plan.Entries))
	}

	if _, err := os.Stat(filepath.Join(dir, "job-1.mp4")); err != nil {
		t.Fatalf("video file missing: %v", err)
	}
}

func TestProcessJobPlanOnlySkipsRender(t *testing.T) {
	dir := t.TempDir()
	p, renderer := testProcessor(t, dir, true)

	if err := p.ProcessJob(context.Background(), testJob()); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if len(renderer.plans) != 0 {
		t.Fatalf("renderer called in plan-only mode")
	}
	if _, err := os.Stat(filepath.Join(dir, "job-1.plan.json")); err != nil {
		t.Fatalf("plan file missing: %v", err)
	}
}

func TestProcessJobGeneratesMissingUUID(t *testing.T) {
	dir := t.TempDir()
	p, renderer := testProcessor(t, dir, false)

	job := testJob()
	job.UUID = ""
	if err := p.ProcessJob(context.Background(), job); err != nil {
		t.Fatalf("ProcessJob error: %v", err)
	}
	if renderer.plans[0].VideoID == "" {
		t.Fatal("plan has empty video id")
	}
}

func TestReadJobFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	raw, _ := json.Marshal(testJob())
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	job, err := ReadJobFile(path)
	if err != nil {
		t.Fatalf("ReadJobFile error: %v", err)
	}
	if job.UUID != "job-1" || len(job.Segments) != 2 {
		t.Fatalf("job = %+v", job)
	}
}

func TestReadJobFileRejectsFailedStatus(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	job := testJob()
	job.Status = "failed"
	raw, _ := json.Marshal(job)
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := ReadJobFile(path); err == nil {
		t.Fatal("ReadJobFile accepted failed job")
	}
}

func TestReadJobFileRejectsEmptySegments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.json")
	if err := os.WriteFile(path, []byte(`{"uuid":"x","status":"success","segments":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := ReadJobFile(path); err == nil {
		t.Fatal("ReadJobFile accepted empty job")
	}
}
