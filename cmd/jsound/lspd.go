package main

import (
	"context"
	"io"
	"os"
	"sync"
	"time"

	"github.com/scott-cotton/cli"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"

	"github.com/jsound-go/jsound/jsonschema"
	"github.com/jsound-go/jsound/subsumption"
)

// LSPDCommand wires the optional `jsound lspd` subcommand: a language
// server that pushes subsumption diagnostics live as an editor edits
// a pair of schema documents, mirroring the teacher's own `docd`/
// `logd` long-running server commands and grounded directly on
// _examples/signadot-tony-format/cmd/tony-lsp/main.go's stdio
// transport wiring.
func LSPDCommand(mainCfg *MainConfig) *cli.Command {
	return cli.NewCommand("lspd").
		WithSynopsis("lspd").
		WithDescription("run a language server pushing subsumption diagnostics for an open producer/consumer schema pair").
		WithRun(func(cc *cli.Context, args []string) error {
			return runLSPD(mainCfg, cc, args)
		})
}

func runLSPD(mainCfg *MainConfig, cc *cli.Context, args []string) error {
	if mainCfg.DebugAgent {
		startDebugAgent(cc)
	}
	ctx := context.Background()
	stream := jsonrpc2.NewStream(&stdioReadWriteCloser{read: os.Stdin, write: os.Stdout})
	server := &lspServer{docs: &documentStore{docs: make(map[string]*schemaDoc)}}
	handler := protocol.ServerHandler(server, nil)
	conn := jsonrpc2.NewConn(stream)
	server.conn = conn
	conn.Go(ctx, handler)
	<-conn.Done()
	return nil
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (int, error)  { return s.read.Read(p) }
func (s *stdioReadWriteCloser) Write(p []byte) (int, error) { return s.write.Write(p) }
func (s *stdioReadWriteCloser) Close() error                { return nil }

// schemaDoc is one open schema file; openedAt orders the store's two
// most-recently-opened documents so the server can pick a producer
// and a consumer out of whatever pair an editor happens to have open.
type schemaDoc struct {
	uri      string
	content  string
	version  int32
	openedAt time.Time
}

type documentStore struct {
	mu   sync.RWMutex
	docs map[string]*schemaDoc
}

func (ds *documentStore) put(uri, content string, version int32) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	existing, ok := ds.docs[uri]
	openedAt := time.Time{}
	if ok {
		openedAt = existing.openedAt
	}
	ds.docs[uri] = &schemaDoc{uri: uri, content: content, version: version, openedAt: openedAt}
}

func (ds *documentStore) setOpenedAt(uri string, t time.Time) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if d, ok := ds.docs[uri]; ok {
		d.openedAt = t
	}
}

func (ds *documentStore) remove(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	delete(ds.docs, uri)
}

// pair returns the two most-recently-opened documents in open order
// (producer, consumer). The language-server surface has no notion of
// "which file is the producer" beyond open order — a client that
// cares about the distinction opens the producer first.
func (ds *documentStore) pair() (*schemaDoc, *schemaDoc) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	if len(ds.docs) < 2 {
		return nil, nil
	}
	var all []*schemaDoc
	for _, d := range ds.docs {
		all = append(all, d)
	}
	for i := 0; i < len(all); i++ {
		for j := i + 1; j < len(all); j++ {
			if all[j].openedAt.Before(all[i].openedAt) {
				all[i], all[j] = all[j], all[i]
			}
		}
	}
	n := len(all)
	return all[n-2], all[n-1]
}

type lspServer struct {
	conn jsonrpc2.Conn
	docs *documentStore
}

func (s *lspServer) checkAndPublish(ctx context.Context) {
	producer, consumer := s.docs.pair()
	if producer == nil || consumer == nil {
		return
	}
	pDoc, err := jsonschema.Parse([]byte(producer.content), theLog)
	if err != nil {
		s.publish(ctx, consumer.uri, 0, err.Error())
		return
	}
	cDoc, err := jsonschema.Parse([]byte(consumer.content), theLog)
	if err != nil {
		s.publish(ctx, consumer.uri, 0, err.Error())
		return
	}
	opts := subsumption.DefaultOptions()
	opts.Logger = theLog
	res, err := subsumption.Check(ctx, pDoc, cDoc, opts)
	if err != nil {
		s.publish(ctx, consumer.uri, 0, err.Error())
		return
	}
	if res.Compatible {
		s.publish(ctx, consumer.uri, 0)
		return
	}
	msg := res.Explanation
	if msg == "" {
		msg = "consumer schema does not accept every value the producer schema accepts"
	}
	s.publish(ctx, consumer.uri, 0, msg)
}

// publish sends textDocument/publishDiagnostics for uri. No arguments
// beyond the base clears diagnostics; each extra string becomes one
// error-severity diagnostic anchored at the document's first line,
// since subsumption violations are whole-document properties, not
// token-range ones.
func (s *lspServer) publish(ctx context.Context, uri string, _ int, messages ...string) {
	if s.conn == nil {
		return
	}
	diags := make([]protocol.Diagnostic, 0, len(messages))
	for _, m := range messages {
		diags = append(diags, protocol.Diagnostic{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: 0, Character: 1},
			},
			Severity: protocol.DiagnosticSeverityError,
			Message:  m,
			Source:   "jsound",
		})
	}
	s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics, &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentURI(uri),
		Diagnostics: diags,
	})
}

func (s *lspServer) Initialize(ctx context.Context, params *protocol.InitializeParams) (*protocol.InitializeResult, error) {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				Change:    protocol.TextDocumentSyncKindFull,
				OpenClose: true,
			},
		},
		ServerInfo: &protocol.ServerInfo{Name: "jsound-lspd", Version: "0.1.0"},
	}, nil
}

func (s *lspServer) Initialized(ctx context.Context, params *protocol.InitializedParams) error { return nil }
func (s *lspServer) Shutdown(ctx context.Context) error                                        { return nil }
func (s *lspServer) Exit(ctx context.Context) error                                            { return nil }
func (s *lspServer) SetTrace(ctx context.Context, params *protocol.SetTraceParams) error       { return nil }

func (s *lspServer) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	uri := string(params.TextDocument.URI)
	s.docs.put(uri, params.TextDocument.Text, params.TextDocument.Version)
	s.docs.setOpenedAt(uri, timeNow())
	s.checkAndPublish(ctx)
	return nil
}

func (s *lspServer) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	uri := string(params.TextDocument.URI)
	// Full-document sync only (TextDocumentSyncKindFull above), so the
	// last change event carries the whole new text.
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	s.docs.put(uri, text, params.TextDocument.Version)
	s.checkAndPublish(ctx)
	return nil
}

func (s *lspServer) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	s.docs.remove(string(params.TextDocument.URI))
	return nil
}

func (s *lspServer) DidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) error { return nil }
func (s *lspServer) WillSave(ctx context.Context, params *protocol.WillSaveTextDocumentParams) error {
	return nil
}
func (s *lspServer) WillSaveWaitUntil(ctx context.Context, params *protocol.WillSaveTextDocumentParams) ([]protocol.TextEdit, error) {
	return nil, nil
}
func (s *lspServer) DidChangeConfiguration(ctx context.Context, params *protocol.DidChangeConfigurationParams) error {
	return nil
}
func (s *lspServer) DidChangeWatchedFiles(ctx context.Context, params *protocol.DidChangeWatchedFilesParams) error {
	return nil
}
func (s *lspServer) DidChangeWorkspaceFolders(ctx context.Context, params *protocol.DidChangeWorkspaceFoldersParams) error {
	return nil
}
func (s *lspServer) WorkDoneProgressCancel(ctx context.Context, params *protocol.WorkDoneProgressCancelParams) error {
	return nil
}
func (s *lspServer) LogTrace(ctx context.Context, params *protocol.LogTraceParams) error { return nil }
func (s *lspServer) CodeAction(ctx context.Context, params *protocol.CodeActionParams) ([]protocol.CodeAction, error) {
	return nil, nil
}
func (s *lspServer) CodeLens(ctx context.Context, params *protocol.CodeLensParams) ([]protocol.CodeLens, error) {
	return nil, nil
}
func (s *lspServer) CodeLensResolve(ctx context.Context, params *protocol.CodeLens) (*protocol.CodeLens, error) {
	return nil, nil
}
func (s *lspServer) ColorPresentation(ctx context.Context, params *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	return nil, nil
}
func (s *lspServer) CompletionResolve(ctx context.Context, params *protocol.CompletionItem) (*protocol.CompletionItem, error) {
	return nil, nil
}
func (s *lspServer) Completion(ctx context.Context, params *protocol.CompletionParams) (*protocol.CompletionList, error) {
	return nil, nil
}
func (s *lspServer) Declaration(ctx context.Context, params *protocol.DeclarationParams) ([]protocol.Location, error) {
	return nil, nil
}
func (s *lspServer) Definition(ctx context.Context, params *protocol.DefinitionParams) ([]protocol.Location, error) {
	return nil, nil
}
func (s *lspServer) DocumentColor(ctx context.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return nil, nil
}
func (s *lspServer) DocumentHighlight(ctx context.Context, params *protocol.DocumentHighlightParams) ([]protocol.DocumentHighlight, error) {
	return nil, nil
}
func (s *lspServer) DocumentLink(ctx context.Context, params *protocol.DocumentLinkParams) ([]protocol.DocumentLink, error) {
	return nil, nil
}
func (s *lspServer) DocumentLinkResolve(ctx context.Context, params *protocol.DocumentLink) (*protocol.DocumentLink, error) {
	return nil, nil
}
func (s *lspServer) DocumentSymbol(ctx context.Context, params *protocol.DocumentSymbolParams) ([]interface{}, error) {
	return nil, nil
}
func (s *lspServer) ExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (interface{}, error) {
	return nil, nil
}
func (s *lspServer) FoldingRanges(ctx context.Context, params *protocol.FoldingRangeParams) ([]protocol.FoldingRange, error) {
	return nil, nil
}
func (s *lspServer) Formatting(ctx context.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}
func (s *lspServer) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return nil, nil
}
func (s *lspServer) Implementation(ctx context.Context, params *protocol.ImplementationParams) ([]protocol.Location, error) {
	return nil, nil
}
func (s *lspServer) OnTypeFormatting(ctx context.Context, params *protocol.DocumentOnTypeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}
func (s *lspServer) PrepareRename(ctx context.Context, params *protocol.PrepareRenameParams) (*protocol.Range, error) {
	return nil, nil
}
func (s *lspServer) RangeFormatting(ctx context.Context, params *protocol.DocumentRangeFormattingParams) ([]protocol.TextEdit, error) {
	return nil, nil
}
func (s *lspServer) References(ctx context.Context, params *protocol.ReferenceParams) ([]protocol.Location, error) {
	return nil, nil
}
func (s *lspServer) Rename(ctx context.Context, params *protocol.RenameParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}
func (s *lspServer) SignatureHelp(ctx context.Context, params *protocol.SignatureHelpParams) (*protocol.SignatureHelp, error) {
	return nil, nil
}
func (s *lspServer) Symbols(ctx context.Context, params *protocol.WorkspaceSymbolParams) ([]protocol.SymbolInformation, error) {
	return nil, nil
}
func (s *lspServer) TypeDefinition(ctx context.Context, params *protocol.TypeDefinitionParams) ([]protocol.Location, error) {
	return nil, nil
}
func (s *lspServer) ShowDocument(ctx context.Context, params *protocol.ShowDocumentParams) (*protocol.ShowDocumentResult, error) {
	return nil, nil
}
func (s *lspServer) WillCreateFiles(ctx context.Context, params *protocol.CreateFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}
func (s *lspServer) DidCreateFiles(ctx context.Context, params *protocol.CreateFilesParams) error {
	return nil
}
func (s *lspServer) WillRenameFiles(ctx context.Context, params *protocol.RenameFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}
func (s *lspServer) DidRenameFiles(ctx context.Context, params *protocol.RenameFilesParams) error {
	return nil
}
func (s *lspServer) WillDeleteFiles(ctx context.Context, params *protocol.DeleteFilesParams) (*protocol.WorkspaceEdit, error) {
	return nil, nil
}
func (s *lspServer) DidDeleteFiles(ctx context.Context, params *protocol.DeleteFilesParams) error {
	return nil
}
func (s *lspServer) CodeLensRefresh(ctx context.Context) error { return nil }
func (s *lspServer) PrepareCallHierarchy(ctx context.Context, params *protocol.CallHierarchyPrepareParams) ([]protocol.CallHierarchyItem, error) {
	return nil, nil
}
func (s *lspServer) IncomingCalls(ctx context.Context, params *protocol.CallHierarchyIncomingCallsParams) ([]protocol.CallHierarchyIncomingCall, error) {
	return nil, nil
}
func (s *lspServer) OutgoingCalls(ctx context.Context, params *protocol.CallHierarchyOutgoingCallsParams) ([]protocol.CallHierarchyOutgoingCall, error) {
	return nil, nil
}
func (s *lspServer) SemanticTokensFull(ctx context.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	return nil, nil
}
func (s *lspServer) SemanticTokensFullDelta(ctx context.Context, params *protocol.SemanticTokensDeltaParams) (interface{}, error) {
	return nil, nil
}
func (s *lspServer) SemanticTokensRange(ctx context.Context, params *protocol.SemanticTokensRangeParams) (*protocol.SemanticTokens, error) {
	return nil, nil
}
func (s *lspServer) SemanticTokensRefresh(ctx context.Context) error { return nil }
func (s *lspServer) LinkedEditingRange(ctx context.Context, params *protocol.LinkedEditingRangeParams) (*protocol.LinkedEditingRanges, error) {
	return nil, nil
}
func (s *lspServer) Moniker(ctx context.Context, params *protocol.MonikerParams) ([]protocol.Moniker, error) {
	return nil, nil
}
func (s *lspServer) Request(ctx context.Context, method string, params interface{}) (interface{}, error) {
	return nil, nil
}

func timeNow() time.Time { return time.Now() }
