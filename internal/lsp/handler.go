package lsp

import (
	"fmt"
	"net/url"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"cpsir/grammar"
	"cpsir/internal/analysis"
	"cpsir/internal/builtins"
	"cpsir/internal/config"
	"cpsir/internal/ir"
)

var log = commonlog.GetLogger("cpsir.lsp")

// Define the set of supported semantic token types (as required by the LSP protocol)
var SemanticTokenTypes = []string{
	"keyword",
	"variable",
	"parameter",
	"function",
	"number",
	"string",
	"comment",
	"operator",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// document is the last analysis of one open file. prog and result are nil
// when the text has errors.
type document struct {
	text   string
	prog   ir.Node
	result *analysis.Result
}

// Handler implements the LSP server handlers for CPS source files
type Handler struct {
	mu     sync.RWMutex
	docs   map[string]*document
	config *config.Config
}

// NewHandler creates a handler that converts documents with c
func NewHandler(c *config.Config) *Handler {
	return &Handler{
		docs:   make(map[string]*document),
		config: c,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *Handler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	log.Info("LSP Initialize called")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true), // notify on open/close events
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			CompletionProvider: &protocol.CompletionOptions{
				ResolveProvider: ptrBool(false),
			},
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
	}, nil
}

func (h *Handler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Info("LSP Initialized")
	return nil
}

func (h *Handler) Shutdown(ctx *glsp.Context) error {
	log.Info("LSP Shutdown")
	return nil
}

func (h *Handler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	log.Debugf("trace set to %s", params.Value)
	return nil
}

// TextDocumentDidOpen analyses the opened text and publishes its diagnostics
func (h *Handler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	log.Infof("Opened file: %s", params.TextDocument.URI)
	return h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
}

// TextDocumentDidClose forgets the document
func (h *Handler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	log.Infof("Closed file: %s", params.TextDocument.URI)

	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.docs, params.TextDocument.URI)

	return nil
}

// TextDocumentDidChange re-analyses the document. Only full-text sync is
// advertised, so the last change holds the whole text.
func (h *Handler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	log.Debugf("Changed file: %s", params.TextDocument.URI)

	if len(params.ContentChanges) == 0 {
		return nil
	}
	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case *protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		text = change.Text
	case *protocol.TextDocumentContentChangeEvent:
		text = change.Text
	default:
		return fmt.Errorf("unsupported content change %T", change)
	}
	return h.update(ctx, params.TextDocument.URI, text)
}

// TextDocumentHover shows the CPS form of the document and the expressions
// available at each of its lets.
func (h *Handler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	h.mu.RLock()
	doc, ok := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()
	if !ok || doc.prog == nil {
		return nil, nil
	}

	var md strings.Builder
	md.WriteString("**CPS**\n\n```\n")
	md.WriteString(ir.Print(doc.prog))
	md.WriteString("```\n")

	if facts := doc.result.Lets(); len(facts) > 0 {
		md.WriteString("\n**Available expressions**\n\n")
		for _, fact := range facts {
			fmt.Fprintf(&md, "- `let#%d %s`: before %s, after %s\n",
				fact.Label, fact.Let.Var, fact.Before, fact.After)
		}
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md.String(),
		},
	}, nil
}

// TextDocumentCompletion offers the special forms and every primitive
func (h *Handler) TextDocumentCompletion(ctx *glsp.Context, params *protocol.CompletionParams) (interface{}, error) {
	keyword := protocol.CompletionItemKindKeyword
	operator := protocol.CompletionItemKindOperator

	var items []protocol.CompletionItem
	for _, form := range keywords {
		items = append(items, protocol.CompletionItem{Label: form, Kind: &keyword})
	}
	for _, op := range builtins.All() {
		detail := fmt.Sprintf("%d operand(s)", op.Arity())
		items = append(items, protocol.CompletionItem{Label: op.String(), Kind: &operator, Detail: &detail})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Label < items[j].Label })

	return &protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *Handler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	h.mu.RLock()
	doc, ok := h.docs[params.TextDocument.URI]
	h.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("document %s is not open", params.TextDocument.URI)
	}

	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, err
	}
	tokens := collectSemanticTokens(path, doc.text)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// update parses, converts and analyses text, stores the outcome and
// publishes diagnostics. An empty list clears earlier ones.
func (h *Handler) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) error {
	path, err := uriToPath(uri)
	if err != nil {
		return err
	}

	doc := &document{text: text}
	diagnostics := []protocol.Diagnostic{}

	expr, diags := grammar.Parse(path, text)
	if len(diags) > 0 {
		diagnostics = ConvertDiagnostics(diags)
	} else if prog, err := ir.Compile(expr, h.config.Normalize); err != nil {
		diagnostics = append(diagnostics, invariantDiagnostic(err))
	} else if result, err := analysis.Analyze(prog, h.config.WorklistOrder()); err != nil {
		diagnostics = append(diagnostics, invariantDiagnostic(err))
	} else {
		doc.prog = prog
		doc.result = result
	}

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, diagnostics)
	return nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) → C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	// Normalize to platform-specific separators
	return filepath.FromSlash(path), nil
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.URI, diagnostics []protocol.Diagnostic) {
	log.Debugf("Sending %d diagnostics for %s", len(diagnostics), uri)

	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
