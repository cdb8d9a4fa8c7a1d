package ffprobe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// DefaultBitrateKbps is reported when a file carries no bitrate information.
const DefaultBitrateKbps = 128

// ErrProbe marks failures of the external prober, either the tool itself or
// unusable data in its output. Probe failures are deterministic environment
// problems and are never retried.
var ErrProbe = errors.New("probe error")

var commandContext = exec.CommandContext

// Result represents the parsed output from an ffprobe inspection.
type Result struct {
	Format Format `json:"format"`
}

// Format captures container-level metadata extracted by ffprobe.
type Format struct {
	Filename   string `json:"filename"`
	Duration   string `json:"duration"`
	Size       string `json:"size"`
	BitRate    string `json:"bit_rate"`
	FormatName string `json:"format_name"`
}

// Inspect executes ffprobe against the provided path and decodes the JSON
// response.
func Inspect(ctx context.Context, binary string, path string) (Result, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = "ffprobe"
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return Result{}, fmt.Errorf("%w: empty path", ErrProbe)
	}

	cmd := commandContext(ctx, binary, "-v", "error", "-hide_banner", "-show_format", "-of", "json", "--", path)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return Result{}, fmt.Errorf("%w: inspect %s: %v: %s", ErrProbe, path, err, strings.TrimSpace(string(output)))
	}

	var result Result
	if err := json.Unmarshal(output, &result); err != nil {
		return Result{}, fmt.Errorf("%w: parse ffprobe output for %s: %v", ErrProbe, path, err)
	}
	return result, nil
}

// DurationSeconds returns the container duration in seconds. A missing or
// unparseable duration is a probe error: the timeline cannot be built
// without it.
func (r Result) DurationSeconds() (float64, error) {
	cleaned := strings.TrimSpace(r.Format.Duration)
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %s reported no duration", ErrProbe, r.Format.Filename)
	}
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s reported duration %q", ErrProbe, r.Format.Filename, cleaned)
	}
	return parsed, nil
}

// BitRateKbps returns the container bitrate in kilobits per second, falling
// back to DefaultBitrateKbps when the container does not report one.
func (r Result) BitRateKbps() int {
	cleaned := strings.TrimSpace(r.Format.BitRate)
	if cleaned == "" {
		return DefaultBitrateKbps
	}
	parsed, err := strconv.Atoi(cleaned)
	if err != nil || parsed <= 0 {
		return DefaultBitrateKbps
	}
	return parsed / 1000
}
