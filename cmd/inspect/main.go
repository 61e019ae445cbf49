package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/caskhq/cask/stream"
)

var (
	tagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98"))
	kindStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB"))
	valStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
)

func main() {
	var (
		file        = flag.String("file", "", "Path to archive file")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
	)
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -file <archive> [-i]")
		os.Exit(1)
	}

	if *interactive {
		if err := runInteractive(*file); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := dump(*file); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func dump(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	records, err := stream.Parse(f)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	styled := term.IsTerminal(int(os.Stdout.Fd()))
	fmt.Printf("Archive: %s\n", path)
	fmt.Printf("Top-level records: %d\n\n", len(records))
	for _, line := range renderRecords(records, 0, styled) {
		fmt.Println(line)
	}
	return nil
}

// renderRecords flattens a record tree into indented display lines.
func renderRecords(records []stream.Record, depth int, styled bool) []string {
	indent := strings.Repeat("  ", depth)
	var out []string
	for _, r := range records {
		tag := r.Tag
		if tag == "" {
			tag = "(anonymous)"
		}
		kind := r.Kind.String()
		if styled {
			tag = tagStyle.Render(tag)
			kind = kindStyle.Render(kind)
		}

		if r.Kind == stream.KindNodeStart {
			out = append(out, fmt.Sprintf("%s%s <%s> (%d children)", indent, tag, kind, len(r.Children)))
			out = append(out, renderRecords(r.Children, depth+1, styled)...)
			continue
		}

		val := formatValue(r)
		if styled {
			val = valStyle.Render(val)
		}
		out = append(out, fmt.Sprintf("%s%s <%s> = %s", indent, tag, kind, val))
	}
	return out
}

func formatValue(r stream.Record) string {
	switch v := r.Value.(type) {
	case []byte:
		const preview = 16
		if len(v) > preview {
			return fmt.Sprintf("%x… (%d bytes)", v[:preview], len(v))
		}
		return fmt.Sprintf("%x", v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
