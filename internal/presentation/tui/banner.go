package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the screener ASCII banner and version to w.
func PrintBanner(w io.Writer, version string) {
	p := termenv.EnvColorProfile()
	// Teal to blue, one shade per line.
	lines := []struct {
		text  string
		color string
	}{
		{"  ___  ___ _ __ ___  ___ _ __   ___ _ __", "#2dd4bf"},
		{" / __|/ __| '__/ _ \\/ _ \\ '_ \\ / _ \\ '__|", "#22d3ee"},
		{" \\__ \\ (__| | |  __/  __/ | | |  __/ |", "#38bdf8"},
		{" |___/\\___|_|  \\___|\\___|_| |_|\\___|_|", "#60a5fa"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, p.String(l.text).Foreground(p.Color(l.color)))
	}
	if v := strings.TrimSpace(version); v != "" {
		fmt.Fprintln(w, p.String("  v"+v).Faint())
	}
	fmt.Fprintln(w)
}
