package tui

import (
	"fmt"
	"strings"

	"clipsmith/types"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("🎬 Clipsmith Plan Inspector"))
	b.WriteString("\n\n")

	if m.Err != nil {
		b.WriteString(ErrorStyle.Render(fmt.Sprintf("❌ %v", m.Err)))
		b.WriteString("\n\n")
		b.WriteString(InfoStyle.Render("Press 'q' or Ctrl+C to quit"))
		return b.String()
	}
	if m.Plan == nil {
		b.WriteString(StatusStyle.Render("⏳ Loading plan..."))
		return b.String()
	}

	summary := fmt.Sprintf("📊 %s | %d segments | %.1fs total | %.1fx speed | %dx%d@%dfps",
		m.Plan.VideoID, len(m.Plan.Entries), m.Plan.TotalDuration,
		m.Plan.SpeedFactor, m.Plan.Width, m.Plan.Height, m.Plan.FrameRate)
	b.WriteString(InfoStyle.Render(summary))
	b.WriteString("\n\n")

	for i, entry := range m.Plan.Entries {
		line := fmt.Sprintf("%2d  %7.2fs–%-7.2fs %-12s %s",
			entry.Index, entry.Start, entry.Start+entry.Duration,
			entry.Decision.Mode, entryLabel(entry))
		if i == m.Cursor {
			b.WriteString(SelectedStyle.Render(line))
		} else {
			b.WriteString(InfoStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.Cursor < len(m.Plan.Entries) {
		b.WriteString(BoxStyle.Render(formatEntry(m.Plan.Entries[m.Cursor])))
		b.WriteString("\n\n")
	}

	b.WriteString(InfoStyle.Render(formatBackground(m.Plan.Background)))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("↑/↓ navigate | g/G first/last | q quit"))

	return b.String()
}

func entryLabel(entry types.PlanEntry) string {
	label := entry.Asset.Path
	if entry.Degraded {
		label += " ⚠️"
	}
	return label
}

// formatEntry renders the detail box for one plan entry.
func formatEntry(entry types.PlanEntry) string {
	var b strings.Builder

	b.WriteString(SelectedStyle.Render(fmt.Sprintf("Segment %d", entry.Index)))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Asset: %s (%s, %s)\n", entry.Asset.Path, entry.Asset.Kind, entry.Asset.Source))
	b.WriteString(fmt.Sprintf("Window: %.3fs – %.3fs (%.3fs)\n", entry.Start, entry.Start+entry.Duration, entry.Duration))

	switch entry.Decision.Mode {
	case types.ModeLoop:
		b.WriteString(fmt.Sprintf("Decision: loop ×%d, trim to %.3fs\n", entry.Decision.LoopCount, entry.Decision.Target))
	default:
		b.WriteString(fmt.Sprintf("Decision: %s to %.3fs\n", entry.Decision.Mode, entry.Decision.Target))
	}

	if entry.Motion != nil {
		b.WriteString(fmt.Sprintf("Motion: %s  crop %.2f,%.2f,%.2fx%.2f → %.2f,%.2f,%.2fx%.2f\n",
			entry.Motion.Preset,
			entry.Motion.Start.X, entry.Motion.Start.Y, entry.Motion.Start.W, entry.Motion.Start.H,
			entry.Motion.End.X, entry.Motion.End.Y, entry.Motion.End.W, entry.Motion.End.H))
	}
	b.WriteString(fmt.Sprintf("Overlay phase: %.1f° → %.1f°\n", entry.OverlayPhaseIn, entry.OverlayPhaseOut))

	if entry.Title != "" {
		b.WriteString(fmt.Sprintf("Title: %q (%.2fs – %.2fs)\n", entry.Title, entry.TitleStart, entry.TitleEnd))
	}
	if len(entry.Cues) > 0 {
		b.WriteString(fmt.Sprintf("Cues: %d\n", len(entry.Cues)))
		for _, cue := range entry.Cues {
			b.WriteString(InfoStyle.Render(fmt.Sprintf("  %.2fs–%.2fs %s\n", cue.Start, cue.End, cue.Text)))
		}
	}
	if entry.Degraded {
		b.WriteString(ErrorStyle.Render("⚠️  Degraded: placeholder substituted\n"))
	}

	return b.String()
}

func formatBackground(bg types.BackgroundAudioPlan) string {
	source := bg.TrackPath
	if bg.Synthesized {
		source = "synthesized tone"
	}
	detail := fmt.Sprintf("%s to %.1fs", bg.Decision.Mode, bg.Decision.Target)
	if bg.Decision.Mode == types.ModeLoop {
		detail = fmt.Sprintf("loop ×%d, trim to %.1fs", bg.Decision.LoopCount, bg.Decision.Target)
	}
	return fmt.Sprintf("🎵 Music: %s | %s | fade %.1fs–%.1fs", source, detail, bg.FadeOutStart, bg.FadeOutEnd)
}
