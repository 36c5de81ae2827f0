// Package render turns a composition plan into an mp4 via ffmpeg. The planner
// decides everything; this package only translates plan entries into filter
// graphs and runs them.
package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"clipsmith/config"
	"clipsmith/types"
)

// Options configures a Renderer. Zero values fall back to the build defaults.
type Options struct {
	// OverlayPath is the brand overlay image. Empty disables the overlay.
	OverlayPath string

	// WorkDir holds intermediate segment files. Defaults to os.TempDir().
	WorkDir string
}

// Renderer renders composition plans to video files.
type Renderer struct {
	opts Options
}

// New creates a Renderer.
func New(opts Options) *Renderer {
	if opts.WorkDir == "" {
		opts.WorkDir = os.TempDir()
	}
	return &Renderer{opts: opts}
}

// Render produces outputPath from plan. Intermediate files live under a
// per-video temp directory that is removed afterwards.
func (r *Renderer) Render(ctx context.Context, plan *types.CompositionPlan, outputPath string) error {
	tmpDir, err := os.MkdirTemp(r.opts.WorkDir, "clipsmith_"+plan.VideoID+"_")
	if err != nil {
		return fmt.Errorf("failed to create work directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	segmentPaths := make([]string, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		segPath := filepath.Join(tmpDir, fmt.Sprintf("seg_%03d.mp4", entry.Index))
		if err := r.renderEntry(entry, plan, segPath); err != nil {
			return fmt.Errorf("failed to render segment %d: %w", entry.Index, err)
		}
		segmentPaths = append(segmentPaths, segPath)
	}

	videoPath := filepath.Join(tmpDir, "visuals.mp4")
	if err := concatSegments(segmentPaths, tmpDir, videoPath); err != nil {
		return fmt.Errorf("failed to concatenate segments: %w", err)
	}

	voicePath := filepath.Join(tmpDir, "voice.m4a")
	if err := buildVoiceTrack(plan, tmpDir, voicePath); err != nil {
		return fmt.Errorf("failed to build voice track: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	return r.compose(plan, videoPath, voicePath, tmpDir, outputPath)
}

// renderEntry renders one plan entry to a silent video segment.
func (r *Renderer) renderEntry(entry types.PlanEntry, plan *types.CompositionPlan, outputPath string) error {
	var stream *ffmpeg.Stream

	if entry.Motion != nil {
		// Still image: loop a single frame and sweep the crop window.
		input := ffmpeg.Input(entry.Asset.Path, ffmpeg.KwArgs{
			"loop":      1,
			"framerate": plan.FrameRate,
			"t":         fmt.Sprintf("%.3f", entry.Duration),
		})
		// Upscale before zoompan to avoid subpixel jitter.
		stream = input.
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:-2", plan.Width*2)}).
			Filter("zoompan", ffmpeg.Args{}, zoompanArgs(*entry.Motion, entry.Duration, plan.FrameRate, plan.Width, plan.Height))
	} else {
		inputArgs := ffmpeg.KwArgs{}
		if entry.Decision.Mode == types.ModeLoop && entry.Decision.LoopCount > 1 {
			inputArgs["stream_loop"] = entry.Decision.LoopCount - 1
		}
		input := ffmpeg.Input(entry.Asset.Path, inputArgs)
		// Center-crop to 9:16 and scale, same treatment for every clip.
		stream = input.
			Filter("crop", ffmpeg.Args{"ih*9/16:ih"}).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", plan.Width, plan.Height)}).
			Filter("fps", ffmpeg.Args{fmt.Sprintf("%d", plan.FrameRate)})
	}

	if entry.Title != "" {
		stream = stream.Filter("drawtext", ffmpeg.Args{}, ffmpeg.KwArgs{
			"text":        escapeDrawtext(entry.Title),
			"fontsize":    96,
			"fontcolor":   "white",
			"borderw":     6,
			"bordercolor": "black",
			"x":           "(w-text_w)/2",
			"y":           "h*0.12",
		})
	}

	return ffmpeg.Output([]*ffmpeg.Stream{stream}, outputPath, ffmpeg.KwArgs{
		"t":      fmt.Sprintf("%.3f", entry.Duration),
		"c:v":    config.VideoCodec,
		"preset": config.VideoPreset,
		"an":     "",
	}).OverWriteOutput().Run()
}

// concatSegments joins the rendered segments with the concat demuxer. All
// segments share codec and dimensions, so no re-encode is needed here.
func concatSegments(paths []string, tmpDir, outputPath string) error {
	listPath := filepath.Join(tmpDir, "segments.txt")
	if err := writeConcatList(paths, listPath); err != nil {
		return err
	}

	return ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Output(outputPath, ffmpeg.KwArgs{"c": "copy"}).
		OverWriteOutput().Run()
}

// buildVoiceTrack concatenates the per-segment narration, speeds it up and
// boosts its volume above the music bed.
func buildVoiceTrack(plan *types.CompositionPlan, tmpDir, outputPath string) error {
	paths := make([]string, 0, len(plan.Entries))
	for _, entry := range plan.Entries {
		paths = append(paths, entry.AudioPath)
	}
	listPath := filepath.Join(tmpDir, "voice.txt")
	if err := writeConcatList(paths, listPath); err != nil {
		return err
	}

	stream := ffmpeg.Input(listPath, ffmpeg.KwArgs{"f": "concat", "safe": 0}).
		Filter("atempo", ffmpeg.Args{fmt.Sprintf("%.4f", plan.SpeedFactor)}).
		Filter("volume", ffmpeg.Args{fmt.Sprintf("%.2f", config.VoiceVolumeBoost)})

	return ffmpeg.Output([]*ffmpeg.Stream{stream}, outputPath, ffmpeg.KwArgs{
		"c:a": config.AudioCodec,
		"b:a": config.AudioBitrate,
	}).OverWriteOutput().Run()
}

// musicStream prepares the background bed per the plan: loop or trim the
// pooled track, or synthesize a tone, then fade out into the ending.
func musicStream(plan *types.CompositionPlan) *ffmpeg.Stream {
	bg := plan.Background

	var stream *ffmpeg.Stream
	if bg.Synthesized {
		stream = ffmpeg.Input(synthToneExpr(plan.TotalDuration), ffmpeg.KwArgs{"f": "lavfi"})
	} else {
		inputArgs := ffmpeg.KwArgs{}
		if bg.Decision.Mode == types.ModeLoop && bg.Decision.LoopCount > 1 {
			inputArgs["stream_loop"] = bg.Decision.LoopCount - 1
		}
		stream = ffmpeg.Input(bg.TrackPath, inputArgs)
	}

	stream = stream.
		Filter("atrim", ffmpeg.Args{}, ffmpeg.KwArgs{"duration": fmt.Sprintf("%.3f", bg.Decision.Target)}).
		Filter("volume", ffmpeg.Args{fmt.Sprintf("%.3f", config.MusicVolume)})

	if bg.FadeOutEnd > bg.FadeOutStart {
		stream = stream.Filter("afade", ffmpeg.Args{}, ffmpeg.KwArgs{
			"t":  "out",
			"st": fmt.Sprintf("%.3f", bg.FadeOutStart),
			"d":  fmt.Sprintf("%.3f", bg.FadeOutEnd-bg.FadeOutStart),
		})
	}
	return stream
}

// compose overlays the rotating brand mark, burns the captions and mixes the
// audio tracks into the final output.
func (r *Renderer) compose(plan *types.CompositionPlan, videoPath, voicePath, tmpDir, outputPath string) error {
	video := ffmpeg.Input(videoPath)

	if r.opts.OverlayPath != "" {
		overlay := ffmpeg.Input(r.opts.OverlayPath).
			Filter("scale", ffmpeg.Args{fmt.Sprintf("%d:%d", config.OverlaySize, config.OverlaySize)}).
			Filter("rotate", ffmpeg.Args{}, ffmpeg.KwArgs{
				"angle":     rotateExpr(0, plan.OverlayPeriod),
				"fillcolor": "none",
				"ow":        "rotw(0)",
				"oh":        "roth(0)",
			})
		video = ffmpeg.Filter([]*ffmpeg.Stream{video, overlay}, "overlay", ffmpeg.Args{
			fmt.Sprintf("%d:H-h-%d", config.OverlayMarginX, config.OverlayMarginBottom),
		})
	}

	cues := allCues(plan)
	if len(cues) > 0 {
		assPath := filepath.Join(tmpDir, "subtitles.ass")
		if err := writeASS(cues, assPath); err != nil {
			return fmt.Errorf("failed to generate ASS: %w", err)
		}
		assPathForFFmpeg := strings.ReplaceAll(filepath.ToSlash(assPath), ":", "\\:")
		video = video.Filter("ass", ffmpeg.Args{assPathForFFmpeg})
	}

	voice := ffmpeg.Input(voicePath)
	audio := ffmpeg.Filter([]*ffmpeg.Stream{voice, musicStream(plan)}, "amix", ffmpeg.Args{}, ffmpeg.KwArgs{
		"inputs":             2,
		"duration":           "first",
		"normalize":          0,
		"dropout_transition": 0,
	})

	err := ffmpeg.Output([]*ffmpeg.Stream{video, audio}, outputPath, ffmpeg.KwArgs{
		"c:v":    config.VideoCodec,
		"c:a":    config.AudioCodec,
		"b:a":    config.AudioBitrate,
		"preset": config.VideoPreset,
		"r":      plan.FrameRate,
		"t":      fmt.Sprintf("%.3f", plan.TotalDuration),
	}).OverWriteOutput().Run()
	if err != nil {
		return fmt.Errorf("ffmpeg failed: %w", err)
	}
	return nil
}

func allCues(plan *types.CompositionPlan) []types.CaptionCue {
	var cues []types.CaptionCue
	for _, entry := range plan.Entries {
		cues = append(cues, entry.Cues...)
	}
	return cues
}

func writeConcatList(paths []string, listPath string) error {
	var b strings.Builder
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "file '%s'\n", strings.ReplaceAll(abs, "'", "'\\''"))
	}
	return os.WriteFile(listPath, []byte(b.String()), 0o644)
}

// escapeDrawtext escapes the characters drawtext treats specially.
func escapeDrawtext(text string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		":", "\\:",
		"'", "\\'",
		"%", "\\%",
	)
	return replacer.Replace(text)
}
