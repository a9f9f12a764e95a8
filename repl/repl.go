// Package repl reads expressions line by line, prints their CPS form and
// evaluates it.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"cpsir/grammar"
	"cpsir/internal/config"
	"cpsir/internal/errors"
	"cpsir/internal/interp"
	"cpsir/internal/ir"
)

const (
	PROMPT       = ">> "
	CONTINUATION = ".. "
)

const sourceName = "<repl>"

// Start runs the loop until in is exhausted or the user types :quit.
// An expression may span several lines; input is read until its
// parentheses balance.
func Start(in io.Reader, out io.Writer, c *config.Config) error {
	scanner := bufio.NewScanner(in)
	normalize := c.Normalize

	var pending strings.Builder
	fmt.Fprint(out, PROMPT)
	for scanner.Scan() {
		line := scanner.Text()

		if pending.Len() == 0 {
			switch strings.TrimSpace(line) {
			case "":
				fmt.Fprint(out, PROMPT)
				continue
			case ":quit", ":q":
				return nil
			case ":normalize":
				normalize = !normalize
				fmt.Fprintf(out, "normalize: %t\n", normalize)
				fmt.Fprint(out, PROMPT)
				continue
			}
		}

		pending.WriteString(line)
		pending.WriteString("\n")
		if depth(pending.String()) > 0 {
			fmt.Fprint(out, CONTINUATION)
			continue
		}

		eval(out, pending.String(), normalize)
		pending.Reset()
		fmt.Fprint(out, PROMPT)
	}
	return scanner.Err()
}

func eval(out io.Writer, src string, normalize bool) {
	expr, diags := grammar.Parse(sourceName, src)
	if len(diags) > 0 {
		fmt.Fprint(out, errors.NewReporter(sourceName, src).FormatAll(diags))
		return
	}

	prog, err := ir.Compile(expr, normalize)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "error: %s\n", err)
		return
	}
	fmt.Fprint(out, ir.Print(prog))

	value, err := interp.Run(prog)
	if err != nil {
		color.New(color.FgRed).Fprintf(out, "error: %s\n", err)
		return
	}
	color.New(color.FgGreen).Fprintf(out, "=> %s\n", value)
}

// depth returns how many parentheses of src are still open, ignoring
// strings, character literals and comments.
func depth(src string) int {
	open := 0
	inString := false
	for i := 0; i < len(src); i++ {
		ch := src[i]
		switch {
		case inString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				inString = false
			}
		case ch == '"':
			inString = true
		case ch == ';':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case ch == '#' && i+1 < len(src) && src[i+1] == '\\':
			i += 2
		case ch == '(':
			open++
		case ch == ')':
			open--
		}
	}
	return open
}
