package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cpsir/internal/errors"
)

const diagnosticSource = "cpsir"

// ConvertDiagnostics transforms reader diagnostics into LSP diagnostics for IDE display.
func ConvertDiagnostics(diags []errors.Diagnostic) []protocol.Diagnostic {
	var diagnostics []protocol.Diagnostic

	for _, d := range diags {
		line := uint32(max(0, d.Position.Line-1))     // Convert to 0-based indexing
		start := uint32(max(0, d.Position.Column-1)) // Convert to 0-based indexing
		code := protocol.IntegerOrString{Value: d.Code}

		message := d.Message
		if d.Help != "" {
			message += "\nhelp: " + d.Help
		}

		diagnostics = append(diagnostics, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: line, Character: start},
				End:   protocol.Position{Line: line, Character: start + uint32(max(1, d.Length))},
			},
			Severity: ptrSeverity(severity(d.Level)),
			Code:     &code,
			Source:   ptrString(diagnosticSource),
			Message:  message,
		})
	}

	return diagnostics
}

// invariantDiagnostic reports a conversion or graph failure on the first
// character of the document; these carry no source position.
func invariantDiagnostic(err error) protocol.Diagnostic {
	code := protocol.IntegerOrString{Value: errors.ErrorInvariant}
	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: 0, Character: 0},
			End:   protocol.Position{Line: 0, Character: 1},
		},
		Severity: ptrSeverity(protocol.DiagnosticSeverityError),
		Code:     &code,
		Source:   ptrString(diagnosticSource),
		Message:  err.Error(),
	}
}

func severity(level errors.Level) protocol.DiagnosticSeverity {
	switch level {
	case errors.Warning:
		return protocol.DiagnosticSeverityWarning
	case errors.Note:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

func ptrSeverity(s protocol.DiagnosticSeverity) *protocol.DiagnosticSeverity {
	return &s
}

func ptrString(s string) *string {
	return &s
}
