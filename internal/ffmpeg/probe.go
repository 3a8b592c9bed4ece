// Package ffmpeg extracts single frames from video inputs with the ffmpeg
// and ffprobe binaries so they can be quantized like still images.
package ffmpeg

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// VideoInfo describes the first video stream of an input.
type VideoInfo struct {
	Width     int
	Height    int
	FrameRate float64
	HDR       bool
}

type probeOutput struct {
	Streams []struct {
		Width         int    `json:"width"`
		Height        int    `json:"height"`
		AvgFrameRate  string `json:"avg_frame_rate"`
		ColorTransfer string `json:"color_transfer"`
		ColorSpace    string `json:"color_space"`
	} `json:"streams"`
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".m4v":  true,
	".mkv":  true,
	".mov":  true,
	".webm": true,
	".avi":  true,
}

// IsVideo reports whether name has a video file extension.
func IsVideo(name string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(name))]
}

// ProbeVideo runs ffprobe on videoURL.
func ProbeVideo(ctx context.Context, videoURL string) (VideoInfo, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,avg_frame_rate,color_transfer,color_space",
		"-of", "json",
		videoURL,
	}

	output, err := exec.CommandContext(ctx, "ffprobe", args...).Output()
	if err != nil {
		return VideoInfo{}, fmt.Errorf("ffprobe error: %w", err)
	}
	return parseProbe(output)
}

func parseProbe(output []byte) (VideoInfo, error) {
	var data probeOutput
	if err := json.Unmarshal(output, &data); err != nil {
		return VideoInfo{}, fmt.Errorf("error parsing ffprobe output: %w", err)
	}
	if len(data.Streams) == 0 {
		return VideoInfo{}, fmt.Errorf("no video streams found")
	}

	stream := data.Streams[0]
	if stream.Width <= 0 || stream.Height <= 0 {
		return VideoInfo{}, fmt.Errorf("invalid dimensions %dx%d", stream.Width, stream.Height)
	}
	framerate, err := parseFrameRate(stream.AvgFrameRate)
	if err != nil {
		return VideoInfo{}, err
	}

	transfer := strings.ToLower(stream.ColorTransfer)
	hdr := strings.Contains(transfer, "smpte2084") ||
		strings.Contains(transfer, "arib-std-b67") ||
		strings.Contains(strings.ToLower(stream.ColorSpace), "bt2020")

	return VideoInfo{
		Width:     stream.Width,
		Height:    stream.Height,
		FrameRate: framerate,
		HDR:       hdr,
	}, nil
}

// parseFrameRate parses "24000/1001" or "25".
func parseFrameRate(s string) (float64, error) {
	if num, den, ok := strings.Cut(s, "/"); ok {
		n, err1 := strconv.ParseFloat(num, 64)
		d, err2 := strconv.ParseFloat(den, 64)
		if err1 != nil || err2 != nil || d == 0 {
			return 0, fmt.Errorf("invalid framerate format %q", s)
		}
		return n / d, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid framerate: %w", err)
	}
	return f, nil
}
