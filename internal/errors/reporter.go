package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"cpsir/internal/ast"
)

// Level is the severity of a diagnostic
type Level string

const (
	Error   Level = "error"
	Warning Level = "warning"
	Note    Level = "note"
)

// Diagnostic is a user-facing problem with the source text
type Diagnostic struct {
	Level    Level
	Code     string       // Code like E0100
	Message  string       // Primary message
	Position ast.Position // Location in source
	Length   int          // Length of the offending region
	Help     string       // Optional hint shown under the snippet
}

// NewDiagnostic creates an error-level diagnostic one character wide
func NewDiagnostic(code, message string, pos ast.Position) Diagnostic {
	return Diagnostic{Level: Error, Code: code, Message: message, Position: pos, Length: 1}
}

// WithLength sets the width of the underline
func (d Diagnostic) WithLength(length int) Diagnostic {
	d.Length = length
	return d
}

// WithHelp attaches a hint
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Error renders the diagnostic on one line, without colour or snippet
func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s[%s]: %s",
		d.Position.Filename, d.Position.Line, d.Position.Column, d.Level, d.Code, d.Message)
}

// Reporter formats diagnostics against the source they refer to
type Reporter struct {
	filename string
	lines    []string
}

// NewReporter creates a reporter for one source file
func NewReporter(filename, source string) *Reporter {
	return &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// Format renders a diagnostic with a rust-like snippet:
//
//	error[E0201]: unknown primitive "i32.mod"
//	    --> prog.scm:1:7
//	     │
//	   1 │ (prim i32.mod 1 2)
//	     │       ^^^^^^^
func (er *Reporter) Format(d Diagnostic) string {
	var result strings.Builder

	levelColor := levelColor(d.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if d.Code != "" {
		result.WriteString(fmt.Sprintf("%s[%s]: %s\n", levelColor(string(d.Level)), d.Code, d.Message))
	} else {
		result.WriteString(fmt.Sprintf("%s: %s\n", levelColor(string(d.Level)), d.Message))
	}

	width := lineNumberWidth(d.Position.Line)
	indent := strings.Repeat(" ", width)

	result.WriteString(fmt.Sprintf("%s %s %s:%d:%d\n",
		indent, dim("-->"), er.filename, d.Position.Line, d.Position.Column))
	result.WriteString(fmt.Sprintf("%s %s\n", indent, dim("│")))

	if d.Position.Line > 0 && d.Position.Line <= len(er.lines) {
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			bold(fmt.Sprintf("%*d", width, d.Position.Line)),
			dim("│"),
			er.lines[d.Position.Line-1]))
		result.WriteString(fmt.Sprintf("%s %s %s\n",
			indent, dim("│"), marker(d.Position.Column, d.Length, levelColor)))
	}

	if d.Help != "" {
		helpColor := color.New(color.FgGreen).SprintFunc()
		result.WriteString(fmt.Sprintf("%s %s %s %s\n", indent, dim("│"), helpColor("help:"), d.Help))
	}

	result.WriteString("\n")
	return result.String()
}

// FormatAll renders every diagnostic in order
func (er *Reporter) FormatAll(diags []Diagnostic) string {
	var b strings.Builder
	for _, d := range diags {
		b.WriteString(er.Format(d))
	}
	return b.String()
}

func levelColor(level Level) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

func marker(column, length int, paint func(...interface{}) string) string {
	if length <= 0 {
		length = 1
	}
	return strings.Repeat(" ", max(0, column-1)) + paint(strings.Repeat("^", length))
}

func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}
