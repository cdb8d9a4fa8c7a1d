package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"bookbind/internal/logging"
)

var commandContext = exec.CommandContext

// BindSpec describes one concat-and-mux invocation.
type BindSpec struct {
	PlaylistPath string
	MetadataPath string
	CoverPath    string
	Encoder      string
	BitrateKbps  int
	OutputPath   string
}

// Client defines the muxing backend behaviour.
type Client interface {
	Bind(ctx context.Context, spec BindSpec) error
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary != "" {
			c.binary = binary
		}
	}
}

// WithLogger attaches a logger for tool output.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// CLI wraps the ffmpeg command-line muxer.
type CLI struct {
	binary string
	logger *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: "ffmpeg", logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Args builds the ffmpeg argument list for spec. The playlist is always
// input 0; the cover image and metadata document, when present, take the
// following input slots in that order and the metadata mapping index shifts
// accordingly.
func Args(spec BindSpec) []string {
	args := []string{"-y", "-f", "concat", "-safe", "0", "-i", spec.PlaylistPath}

	hasCover := spec.CoverPath != ""
	hasMetadata := spec.MetadataPath != ""
	if hasCover {
		args = append(args, "-i", spec.CoverPath)
	}
	if hasMetadata {
		args = append(args, "-i", spec.MetadataPath)
	}

	args = append(args, "-map", "0:a")
	input := 1
	if hasCover {
		args = append(args, "-map", fmt.Sprintf("%d:v", input))
		input++
	}
	if hasMetadata {
		args = append(args, "-map_metadata", strconv.Itoa(input))
	}

	args = append(args,
		"-c:a", spec.Encoder,
		"-c:v", "copy",
		"-disposition:v:0", "attached_pic",
		"-b:a", fmt.Sprintf("%dk", spec.BitrateKbps),
		"-threads", "0",
		"-fps_mode:a", "auto",
		spec.OutputPath,
	)
	return args
}

// CommandLine renders the full invocation for display, e.g. in dry runs.
func CommandLine(binary string, spec BindSpec) string {
	if strings.TrimSpace(binary) == "" {
		binary = "ffmpeg"
	}
	return binary + " " + strings.Join(Args(spec), " ")
}

// Bind launches ffmpeg and blocks until the mux completes. Tool output is
// streamed to the logger at debug level.
func (c *CLI) Bind(ctx context.Context, spec BindSpec) error {
	if spec.PlaylistPath == "" {
		return errors.New("playlist path required")
	}
	if spec.OutputPath == "" {
		return errors.New("output path required")
	}

	cmd := commandContext(ctx, c.binary, Args(spec)...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", c.binary, err)
	}

	var tail []string
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.logger.Debug("ffmpeg output", logging.String("line", line))
		tail = append(tail, line)
		if len(tail) > 10 {
			tail = tail[1:]
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read ffmpeg output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		if len(tail) > 0 {
			return fmt.Errorf("ffmpeg bind failed: %w: %s", err, strings.Join(tail, " | "))
		}
		return fmt.Errorf("ffmpeg bind failed: %w", err)
	}
	return nil
}

var _ Client = (*CLI)(nil)
