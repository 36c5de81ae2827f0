package config

import "time"

// Video Output Constants
const (
	// VideoWidth is the output video width (9:16 aspect ratio)
	VideoWidth = 1080

	// VideoHeight is the output video height (9:16 aspect ratio)
	VideoHeight = 1920

	// FrameRate is the output frame rate; the minimum renderable span and
	// timing tolerance derive from it
	FrameRate = 30

	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "medium"
)

// Processing Constants
const (
	// MaxConcurrentVideos limits the number of videos planned and rendered
	// simultaneously
	MaxConcurrentVideos = 3

	// VideoBatchDelay is the wait time between processing video batches
	VideoBatchDelay = 2 * time.Second

	// VoiceVolumeBoost raises narration volume before mixing
	VoiceVolumeBoost = 1.5

	// MusicVolume keeps background music under the narration
	MusicVolume = 0.06
)

// Overlay and Caption Constants
const (
	// TitleMaxLength is the maximum rune length of segment title overlays
	TitleMaxLength = 24

	// WordsPerCue is the chunk size for synthesized caption cues
	WordsPerCue = 4

	// SubtitleFontSize is tuned for mobile readability at 1080x1920
	SubtitleFontSize = 130

	// OverlaySize is the brand overlay's square edge in pixels
	OverlaySize = 180

	// OverlayMarginX and OverlayMarginBottom position the overlay in the
	// bottom-left corner
	OverlayMarginX      = 70
	OverlayMarginBottom = 250
)
