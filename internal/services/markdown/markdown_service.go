package markdown

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
)

// DefaultWordWrap is the column glamour wraps rendered output at.
const DefaultWordWrap = 180

// PrintOptions configures where a document goes.
type PrintOptions struct {
	Terminal io.Writer // rendered with glamour; nil skips the terminal
	ToFile   string    // raw markdown path; empty skips the file
}

// Markdown is a document built incrementally.
type Markdown struct {
	content strings.Builder
}

func New() *Markdown {
	return &Markdown{}
}

// AddHeading adds a heading; levels outside 1-6 fall back to 1.
func (m *Markdown) AddHeading(text string, level int) *Markdown {
	if level < 1 || level > 6 {
		level = 1
	}
	fmt.Fprintf(&m.content, "%s %s\n\n", strings.Repeat("#", level), text)
	return m
}

func (m *Markdown) AddParagraph(text string) *Markdown {
	fmt.Fprintf(&m.content, "%s\n\n", text)
	return m
}

// AddTable adds a table. Columns listed in skipRepeatColumns leave a cell blank when it
// repeats the value above it. Pipes inside cells are escaped.
func (m *Markdown) AddTable(headers []string, data [][]string, skipRepeatColumns ...int) *Markdown {
	if len(headers) == 0 {
		return m
	}

	m.content.WriteString("| " + strings.Join(headers, " | ") + " |\n")

	separators := make([]string, len(headers))
	for i := range headers {
		separators[i] = "---"
	}
	m.content.WriteString("| " + strings.Join(separators, " | ") + " |\n")

	skip := make(map[int]bool)
	for _, col := range skipRepeatColumns {
		if col >= 0 && col < len(headers) {
			skip[col] = true
		}
	}

	previous := make([]string, len(headers))
	for _, row := range data {
		cells := make([]string, len(headers))
		copy(cells, row)

		for col := range cells {
			if skip[col] {
				if cells[col] == previous[col] {
					cells[col] = ""
				} else {
					previous[col] = cells[col]
				}
			}
			cells[col] = strings.ReplaceAll(cells[col], "|", `\|`)
		}

		m.content.WriteString("| " + strings.Join(cells, " | ") + " |\n")
	}

	m.content.WriteString("\n")
	return m
}

func (m *Markdown) AddList(items []string) *Markdown {
	if len(items) == 0 {
		return m
	}
	for _, item := range items {
		fmt.Fprintf(&m.content, "- %s\n", item)
	}
	m.content.WriteString("\n")
	return m
}

func (m *Markdown) String() string {
	return m.content.String()
}

func (m *Markdown) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.content.String())
	return int64(n), err
}

// Render returns the document styled for a terminal.
func (m *Markdown) Render() (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultWordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create glamour renderer: %w", err)
	}

	out, err := renderer.Render(m.content.String())
	if err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}

	return out, nil
}

// Print writes the document according to opts. Terminal output falls back to raw markdown
// when glamour cannot render it.
func (m *Markdown) Print(opts PrintOptions) error {
	if opts.Terminal != nil {
		out, err := m.Render()
		if err != nil {
			slog.Debug("glamour render failed, printing raw markdown", "error", err)
			out = m.content.String()
		}
		if _, err := io.WriteString(opts.Terminal, out+"\n"); err != nil {
			return fmt.Errorf("failed to write to terminal: %w", err)
		}
	}

	if opts.ToFile != "" {
		file, err := os.Create(opts.ToFile)
		if err != nil {
			return fmt.Errorf("failed to create file %s: %w", opts.ToFile, err)
		}
		defer file.Close()

		if _, err := m.WriteTo(file); err != nil {
			return fmt.Errorf("failed to write markdown to file %s: %w", opts.ToFile, err)
		}
		slog.Debug("markdown saved to file", "file", opts.ToFile)
	}

	return nil
}
