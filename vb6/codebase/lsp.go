package codebase

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/vbt/project"
	"github.com/dhamidi/vbt/vb6/diag"
)

const lsName = "vbt"

type LSPServer struct {
	codebase *Codebase
	watcher  *FileWatcher
	handler  protocol.Handler
	server   *server.Server
	version  string
	notify   glsp.NotifyFunc
}

func NewLSPServer(version string) *LSPServer {
	ls := &LSPServer{
		version: version,
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	p, err := project.LoadFrom(rootDir)
	if err != nil {
		log.Warningf("using defaults: %s", err)
		p = &project.Project{RootDir: rootDir, Config: project.DefaultConfig()}
	}
	ls.codebase = New(p)
	ls.notify = ctx.Notify

	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	if err := ls.codebase.ScanAll(context.Background()); err != nil {
		log.Errorf("scan: %s", err)
	}
	for _, f := range ls.codebase.Files() {
		ls.publish(f.Path, f)
	}

	ls.watcher = NewFileWatcher(ls.codebase)
	ls.watcher.OnChange = ls.publish
	ls.watcher.Start()
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	if ls.watcher != nil {
		ls.watcher.Stop()
		ls.watcher = nil
	}
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	ls.publish(path, ls.codebase.UpdateFile(path, []byte(params.TextDocument.Text)))
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			ls.publish(path, ls.codebase.UpdateFile(path, []byte(textChange.Text)))
		}
	}
	return nil
}

// textDocumentDidClose drops unsaved edits by going back to the file on
// disk. A file that no longer exists is forgotten.
func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	info, err := ls.codebase.ScanFile(path)
	if err != nil {
		ls.codebase.RemoveFile(path)
	}
	ls.publish(path, info)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if params.Text != nil {
		ls.publish(path, ls.codebase.UpdateFile(path, []byte(*params.Text)))
		return nil
	}
	info, err := ls.codebase.ScanFile(path)
	if err != nil {
		log.Errorf("%s", err)
		return nil
	}
	ls.publish(path, info)
	return nil
}

func (ls *LSPServer) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	file := ls.codebase.GetFile(path)
	if file == nil {
		return nil, nil
	}
	return DocumentSymbols(file), nil
}

// publish sends the diagnostics of info for path. A nil info clears them.
func (ls *LSPServer) publish(path string, info *FileInfo) {
	if ls.notify == nil {
		return
	}
	ds := []protocol.Diagnostic{}
	if info != nil {
		ds = ProtocolDiagnostics(info)
	}
	ls.notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(path),
		Diagnostics: ds,
	})
}

// ProtocolDiagnostics converts the diagnostics of a file for the client.
// A diagnostic covers its Text, or a single character when Text is empty.
func ProtocolDiagnostics(f *FileInfo) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(f.Diagnostics))
	for _, d := range f.Diagnostics {
		end := d.Offset + len(d.Text)
		if d.Text == "" {
			end = d.Offset + 1
		}
		severity := protocolSeverity(d.Severity())
		source := lsName
		code := protocol.IntegerOrString{Value: d.Category.String()}
		message := d.Category.Description()
		if d.Expected != "" {
			message += ", expected " + d.Expected
		}
		out = append(out, protocol.Diagnostic{
			Range:    f.protocolRange(d.Offset, end),
			Severity: &severity,
			Code:     &code,
			Source:   &source,
			Message:  message,
		})
	}
	return out
}

func protocolSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.SeverityError:
		return protocol.DiagnosticSeverityError
	case diag.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

// DocumentSymbols converts the symbols of a file for the client.
func DocumentSymbols(f *FileInfo) []protocol.DocumentSymbol {
	return documentSymbols(f, f.Symbols)
}

func documentSymbols(f *FileInfo, syms []Symbol) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(syms))
	for _, sym := range syms {
		detail := sym.Kind.String()
		out = append(out, protocol.DocumentSymbol{
			Name:           sym.Name,
			Detail:         &detail,
			Kind:           protocolSymbolKind(sym.Kind),
			Range:          f.protocolRange(sym.Span.Start, sym.Span.End),
			SelectionRange: f.protocolRange(sym.NameSpan.Start, sym.NameSpan.End),
			Children:       documentSymbols(f, sym.Children),
		})
	}
	return out
}

func protocolSymbolKind(kind SymbolKind) protocol.SymbolKind {
	switch kind {
	case SymbolSub, SymbolFunction, SymbolDeclare:
		return protocol.SymbolKindFunction
	case SymbolProperty:
		return protocol.SymbolKindProperty
	case SymbolEvent:
		return protocol.SymbolKindEvent
	case SymbolEnum:
		return protocol.SymbolKindEnum
	case SymbolEnumMember:
		return protocol.SymbolKindEnumMember
	case SymbolType:
		return protocol.SymbolKindStruct
	case SymbolTypeMember:
		return protocol.SymbolKindField
	case SymbolConst:
		return protocol.SymbolKindConstant
	default:
		return protocol.SymbolKindVariable
	}
}

func (f *FileInfo) protocolRange(start, end int) protocol.Range {
	if end < start {
		end = start
	}
	return protocol.Range{
		Start: f.protocolPosition(start),
		End:   f.protocolPosition(end),
	}
}

// protocolPosition converts a byte offset to a zero-based line and a
// character counted in UTF-16 code units.
func (f *FileInfo) protocolPosition(offset int) protocol.Position {
	pos := f.Lines.Position(offset)
	prefix := f.Content[pos.Offset-(pos.Column-1) : pos.Offset]
	units := 0
	for len(prefix) > 0 {
		r, size := utf8.DecodeRune(prefix)
		prefix = prefix[size:]
		if n := utf16.RuneLen(r); n > 0 {
			units += n
		} else {
			units++
		}
	}
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(units),
	}
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
