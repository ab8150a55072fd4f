package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

var bannerLines = []string{
	"   ______ _____  ___ ",
	"  |  ____/ ____|/ _ \\",
	"  | |__ | (___ | |_| |",
	"  |  __| \\___ \\|  _  |",
	"  | |    ____) | | | |",
	"  |_|   |_____/|_| |_|",
}

var bannerColors = []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}

// PrintBanner writes the ASCII art banner to w, colored when w's terminal
// supports it.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	p := out.ColorProfile()

	fmt.Fprintln(w)
	for i, line := range bannerLines {
		fmt.Fprintln(w, termenv.String(line).Foreground(p.Color(bannerColors[i])))
	}
	fmt.Fprintln(w)
}
