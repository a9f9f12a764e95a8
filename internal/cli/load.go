package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"cpsir/grammar"
	"cpsir/internal/errors"
	"cpsir/internal/ir"
)

// compileFile reads, parses and converts the program at path. Diagnostics
// are written to errOut in full; the returned error only summarizes them.
func compileFile(path string, normalize bool, errOut io.Writer) (ir.Node, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	expr, diags := grammar.Parse(path, string(source))
	if len(diags) > 0 {
		reporter := errors.NewReporter(path, string(source))
		fmt.Fprint(errOut, reporter.FormatAll(diags))
		return nil, fmt.Errorf("%d error(s) in %s", len(diags), path)
	}

	prog, err := ir.Compile(expr, normalize)
	if err != nil {
		return nil, fmt.Errorf("conversion failed: %w", err)
	}
	if err := ir.CheckLabels(prog); err != nil {
		return nil, fmt.Errorf("conversion produced invalid IR: %w", err)
	}
	if err := ir.CheckScopes(prog); err != nil {
		return nil, fmt.Errorf("conversion produced invalid IR: %w", err)
	}
	return prog, nil
}

func reportSuccess(w io.Writer, path string, start time.Time) {
	color.New(color.FgGreen).Fprintf(w, "Successfully processed %s in %s\n", path, formatDuration(time.Since(start)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
