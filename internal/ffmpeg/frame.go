package ffmpeg

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"

	"kquant/internal/logging"
)

// hdrFilter tone-maps HDR sources to SDR rgb24 before PNG encoding.
const hdrFilter = "zscale=t=linear:npl=100,format=gbrpf32le,zscale=p=bt709," +
	"tonemap=tonemap=hable:desat=0,zscale=t=bt709:m=bt709:r=tv,format=rgb24"

var pngSignature = []byte{137, 80, 78, 71, 13, 10, 26, 10}

// FrameOptions selects the frame to extract.
type FrameOptions struct {
	// At is the timestamp as seconds ("12.5") or "HH:MM:SS". Empty means 0.
	At string
	// HDR enables tone mapping.
	HDR bool
	// MaxBytes caps how much ffmpeg output is read. Zero means 256 MiB.
	MaxBytes int64
	Logger   *logging.Logger
}

// parseTimeString converts time strings like "00:05:10" to seconds.
func parseTimeString(timeStr string) (float64, error) {
	if seconds, err := strconv.ParseFloat(timeStr, 64); err == nil {
		if seconds < 0 {
			return 0, fmt.Errorf("negative time: %s", timeStr)
		}
		return seconds, nil
	}

	parts := strings.Split(timeStr, ":")
	if len(parts) == 3 {
		h, errH := strconv.ParseFloat(parts[0], 64)
		m, errM := strconv.ParseFloat(parts[1], 64)
		s, errS := strconv.ParseFloat(parts[2], 64)

		if errH == nil && errM == nil && errS == nil && h >= 0 && m >= 0 && s >= 0 {
			return h*3600 + m*60 + s, nil
		}
	}

	return 0, fmt.Errorf("invalid time format: %s", timeStr)
}

func frameArgs(videoURL string, at float64, hdr bool) []string {
	args := []string{
		"-v", "error",
		"-ss", strconv.FormatFloat(at, 'f', 3, 64),
		"-i", videoURL,
		"-frames:v", "1",
		"-an",
	}
	if hdr {
		args = append(args, "-vf", hdrFilter)
	}
	return append(args,
		"-f", "image2pipe",
		"-pix_fmt", "rgb24",
		"-vcodec", "png",
		"pipe:1",
	)
}

// ExtractFrame decodes one frame of videoURL.
func ExtractFrame(ctx context.Context, videoURL string, opts FrameOptions) (image.Image, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found in $PATH: %w", err)
	}
	at := 0.0
	if opts.At != "" {
		var err error
		if at, err = parseTimeString(opts.At); err != nil {
			return nil, err
		}
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = 256 << 20
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NoopLogger()
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", frameArgs(videoURL, at, opts.HDR)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("error creating stdout pipe: %w", err)
	}
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr

	logger.DebugContext(ctx, "starting ffmpeg", "args", strings.Join(cmd.Args, " "))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("error starting ffmpeg: %w", err)
	}

	img, readErr := readPNGFrame(io.LimitReader(stdout, maxBytes))
	// Drain so ffmpeg is not blocked on a full pipe while we wait.
	_, _ = io.Copy(io.Discard, stdout)
	waitErr := cmd.Wait()

	if waitErr != nil {
		return nil, fmt.Errorf("ffmpeg error: %w - stderr: %s", waitErr, strings.TrimSpace(stderr.String()))
	}
	if readErr != nil {
		return nil, fmt.Errorf("error reading frame at %.3fs: %w", at, readErr)
	}
	return img, nil
}

// readPNGFrame skips bytes until a PNG signature and decodes the image that
// follows.
func readPNGFrame(reader io.Reader) (image.Image, error) {
	bufferedReader := bufio.NewReaderSize(reader, 1024*1024)

	for {
		signature, err := bufferedReader.Peek(len(pngSignature))
		if err != nil {
			return nil, err
		}

		if bytes.Equal(signature, pngSignature) {
			return png.Decode(bufferedReader)
		}

		if _, err := bufferedReader.Discard(1); err != nil {
			return nil, err
		}
	}
}
