package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"

	"github.com/khanhnv2901/headercheck/internal/api"
)

func printBanner(w io.Writer) {
	fig := figure.NewFigure("headercheck", "", true)
	fmt.Fprint(w, colorInfo(fig.String()))

	rule := strings.Repeat("═", 60)
	fmt.Fprintln(w, colorInfo(rule))
	fmt.Fprintf(w, "  %s\n", colorWarn(api.Disclaimer))
	fmt.Fprintln(w, colorInfo(rule))
}
