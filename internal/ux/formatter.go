package ux

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"gopkg.in/yaml.v3"
)

// Supported output formats.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatXLSX = "xlsx"
)

// Formats lists every accepted --output value.
var Formats = []string{FormatText, FormatJSON, FormatYAML, FormatXLSX}

// Formatter defines the interface for output formatters.
// This enables consistent output formatting across all commands.
type Formatter interface {
	// Format writes the given data to the output writer
	Format(data interface{}) error
}

// FormatterOptions contains configuration for formatters
type FormatterOptions struct {
	// Writer is where output is written (defaults to os.Stdout)
	Writer io.Writer
	// NoColor disables colored output for text formatters
	NoColor bool
	// Compact enables compact output (no indentation for JSON/YAML)
	Compact bool
	// Path is the file written by file formats such as xlsx
	Path string
}

// Tabular is implemented by results that render as rows.
type Tabular interface {
	TableHeaders() []string
	TableRows() [][]string
}

// Table is the result of a list command. Text and xlsx render Headers and Rows;
// json and yaml encode Data.
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
	Data    interface{}
}

// TableHeaders implements Tabular.
func (t *Table) TableHeaders() []string { return t.Headers }

// TableRows implements Tabular.
func (t *Table) TableRows() [][]string { return t.Rows }

// payload returns what structured formats encode for data.
func payload(data interface{}) interface{} {
	if t, ok := data.(*Table); ok {
		if t.Data != nil {
			return t.Data
		}
		return t.Rows
	}
	return data
}

// NewFormatter creates a formatter based on the format string
func NewFormatter(format string, opts *FormatterOptions) (Formatter, error) {
	if opts == nil {
		opts = &FormatterOptions{Writer: os.Stdout}
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}

	switch format {
	case FormatJSON:
		return &JSONFormatter{opts: opts}, nil
	case FormatYAML:
		return &YAMLFormatter{opts: opts}, nil
	case FormatText, "":
		return &TextFormatter{opts: opts}, nil
	case FormatXLSX:
		if opts.Path == "" {
			return nil, fmt.Errorf("xlsx output requires --out-file")
		}
		return &XLSXFormatter{opts: opts}, nil
	default:
		return nil, fmt.Errorf("unknown format: %s (supported: text, json, yaml, xlsx)", format)
	}
}

// JSONFormatter formats output as JSON
type JSONFormatter struct {
	opts *FormatterOptions
}

// Format writes data as JSON
func (f *JSONFormatter) Format(data interface{}) error {
	encoder := json.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(payload(data))
}

// YAMLFormatter formats output as YAML
type YAMLFormatter struct {
	opts *FormatterOptions
}

// Format writes data as YAML
func (f *YAMLFormatter) Format(data interface{}) error {
	encoder := yaml.NewEncoder(f.opts.Writer)
	if !f.opts.Compact {
		encoder.SetIndent(2)
	}
	defer encoder.Close()
	return encoder.Encode(payload(data))
}

// TextFormatter formats output as human-readable text
type TextFormatter struct {
	opts *FormatterOptions
}

// Format writes data as formatted text. Tabular results become a table; other
// data must be a string or implement fmt.Stringer.
func (f *TextFormatter) Format(data interface{}) error {
	switch v := data.(type) {
	case string:
		_, err := fmt.Fprintln(f.opts.Writer, v)
		return err
	case Tabular:
		return f.table(v)
	case fmt.Stringer:
		_, err := fmt.Fprintln(f.opts.Writer, v.String())
		return err
	default:
		return fmt.Errorf("text formatter requires data to implement String() method or be a primitive type")
	}
}

func (f *TextFormatter) table(v Tabular) error {
	if t, ok := v.(*Table); ok && t.Title != "" {
		if _, err := fmt.Fprintln(f.opts.Writer, t.Title); err != nil {
			return err
		}
	}
	rows := v.TableRows()
	if len(rows) == 0 {
		_, err := fmt.Fprintln(f.opts.Writer, "No results.")
		return err
	}

	headerStyle := lipgloss.NewStyle().Bold(!f.opts.NoColor).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(v.TableHeaders()...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	_, err := fmt.Fprintln(f.opts.Writer, tbl.String())
	return err
}

// Compile-time verification that formatters implement Formatter
var _ Formatter = (*JSONFormatter)(nil)
var _ Formatter = (*YAMLFormatter)(nil)
var _ Formatter = (*TextFormatter)(nil)
var _ Formatter = (*XLSXFormatter)(nil)
