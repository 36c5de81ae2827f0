package render

import (
	"fmt"
	"os"

	"clipsmith/config"
	"clipsmith/types"
)

// writeASS writes the burned-in caption track for a plan. Cues are already on
// the global output timeline, so this is a straight dump of one Dialogue line
// per cue.
func writeASS(cues []types.CaptionCue, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintln(file, "[Script Info]")
	fmt.Fprintln(file, "Title: Clipsmith Video")
	fmt.Fprintln(file, "ScriptType: v4.00+")
	fmt.Fprintf(file, "PlayResX: %d\n", config.VideoWidth)
	fmt.Fprintf(file, "PlayResY: %d\n", config.VideoHeight)
	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[V4+ Styles]")
	fmt.Fprintln(file, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")

	// MarginV positions captions at 40% from the bottom of the frame.
	fmt.Fprintf(file, "Style: Default,Consolas,%d,&H00FFFFFF,&H00FFFFFF,&H00000000,&H00000000,-1,0,0,0,100,100,0,0,1,3,0,2,40,40,%d,1\n",
		config.SubtitleFontSize, config.VideoHeight*2/5)

	fmt.Fprintln(file, "")
	fmt.Fprintln(file, "[Events]")
	fmt.Fprintln(file, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	for _, cue := range cues {
		fmt.Fprintf(file, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			formatASSTimestamp(cue.Start),
			formatASSTimestamp(cue.End),
			cue.Text)
	}

	return nil
}

// formatASSTimestamp converts seconds to ASS timestamp format (h:mm:ss.cc)
func formatASSTimestamp(seconds float64) string {
	hours := int(seconds / 3600)
	minutes := int((seconds - float64(hours*3600)) / 60)
	secs := int(seconds) % 60
	centisecs := int((seconds - float64(int(seconds))) * 100)

	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centisecs)
}
