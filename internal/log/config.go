package log

import (
	"io"
	"os"
	"strings"
)

// Format represents the output format for logs
type Format int

const (
	// FormatText outputs logs in human-readable text format
	FormatText Format = iota
	// FormatJSON outputs logs in JSON format
	FormatJSON
)

// String returns the string representation of the format
func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses a string into a Format. Unknown values fall back to text.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	default:
		return FormatText
	}
}

// Output represents where logs should be written
type Output struct {
	writer io.Writer
}

// Writer returns the underlying io.Writer
func (o Output) Writer() io.Writer {
	if o.writer == nil {
		return os.Stderr
	}
	return o.writer
}

// NewOutput creates an Output from an io.Writer
func NewOutput(w io.Writer) Output {
	return Output{writer: w}
}

// OutputStderr creates an Output that writes to stderr
func OutputStderr() Output {
	return Output{writer: os.Stderr}
}

// Config holds configuration for the logger
type Config struct {
	// Level is the minimum log level to output
	Level Level

	// Format is the output format (JSON or Text)
	Format Format

	// Output is where logs should be written. Command output owns stdout,
	// so logs default to stderr.
	Output Output

	// AddSource includes source file and line number in logs
	AddSource bool

	ServiceName    string
	ServiceVersion string
}

// DefaultConfig logs warnings and above as text on stderr.
func DefaultConfig() Config {
	return Config{
		Level:          LevelWarn,
		Format:         FormatText,
		Output:         OutputStderr(),
		ServiceName:    "staffdesk",
		ServiceVersion: "dev",
	}
}

// DevelopmentConfig logs at DEBUG level with source location.
func DevelopmentConfig() Config {
	cfg := DefaultConfig()
	cfg.Level = LevelDebug
	cfg.AddSource = true
	return cfg
}

// ConfigFromStrings builds a Config from flag or config-file values.
func ConfigFromStrings(level, format, version string) Config {
	cfg := DefaultConfig()
	if level != "" {
		cfg.Level = ParseLevel(level)
	}
	if format != "" {
		cfg.Format = ParseFormat(format)
	}
	if version != "" {
		cfg.ServiceVersion = version
	}
	return cfg
}
