// Package lsp implements a Language Server Protocol server that completes
// "@person" and "!location" mentions.
//
// It provides completion, go-to-definition and hover for mention links,
// and keeps the vault's indexes fresh with a file watcher.
package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/aidanlsb/mentions/internal/logging"
	"github.com/aidanlsb/mentions/internal/suggest"
	"github.com/aidanlsb/mentions/internal/workspace"
)

// errExit stops the message loop after an "exit" notification.
var errExit = errors.New("exit")

// maxContentLength caps the body size of one message.
const maxContentLength = 16 << 20

// Config configures a Server.
type Config struct {
	// VaultPath may be empty; the client's rootUri is used then.
	VaultPath string
	Logger    *log.Logger

	// Watch starts a file watcher once the client is initialized.
	Watch         bool
	DebounceDelay time.Duration

	Input  io.Reader // Default: os.Stdin
	Output io.Writer // Default: os.Stdout
}

// Server is the mentions LSP server.
type Server struct {
	vaultPath string
	logger    *log.Logger
	watch     bool
	debounce  time.Duration

	ws *workspace.Workspace

	documents *DocumentManager
	sessionMu sync.Mutex
	sessions  map[string]*suggest.Session

	// LSP communication
	input  *bufio.Reader
	output io.Writer
	mu     sync.Mutex // Protects output writes

	ctx      context.Context
	bg       sync.WaitGroup
	shutdown bool
}

// NewServer creates a new LSP server.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	in := cfg.Input
	if in == nil {
		in = os.Stdin
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	return &Server{
		vaultPath: cfg.VaultPath,
		logger:    logger,
		watch:     cfg.Watch,
		debounce:  cfg.DebounceDelay,
		documents: NewDocumentManager(),
		sessions:  make(map[string]*suggest.Session),
		input:     bufio.NewReader(in),
		output:    out,
	}
}

// Run processes messages until the client exits, the input ends or ctx is
// cancelled. Background work started by "initialized" is stopped before
// Run returns.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		s.bg.Wait()
	}()
	s.ctx = ctx

	if s.vaultPath != "" {
		if err := s.openWorkspace(s.vaultPath); err != nil {
			return fmt.Errorf("failed to initialize: %w", err)
		}
	}

	s.logger.Info("LSP server started", "vault", s.vaultPath)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		err := s.handleNextMessage()
		switch {
		case err == nil:
		case errors.Is(err, errExit), errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF):
			return nil
		default:
			s.logger.Warn("error handling message", "err", err)
		}
	}
}

// openWorkspace opens the vault. Indexing starts on "initialized".
func (s *Server) openWorkspace(vaultPath string) error {
	ws, err := workspace.Open(vaultPath, workspace.Options{
		Logger:        s.logger,
		DebounceDelay: s.debounce,
	})
	if err != nil {
		return err
	}
	s.ws = ws
	s.vaultPath = ws.Root()
	return nil
}

// start builds the initial index and, if enabled, starts the watcher.
func (s *Server) start() {
	if s.ws == nil {
		return
	}
	if err := s.ws.Start(s.ctx); err != nil {
		s.logger.Error("failed to index vault", "err", err)
		s.showMessage(MessageTypeError, "mentions: "+err.Error())
		return
	}
	if !s.watch {
		return
	}

	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		if err := s.ws.Watch(s.ctx); err != nil && !errors.Is(err, context.Canceled) {
			s.logger.Error("watcher stopped", "err", err)
		}
	}()
}

// handleNextMessage reads and processes a single LSP message.
func (s *Server) handleNextMessage() error {
	var contentLength int
	for {
		line, err := s.input.ReadString('\n')
		if err != nil {
			return err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break // Empty line separates header from content
		}

		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("bad Content-Length header: %q", line)
			}
			contentLength = n
		}
	}

	if contentLength <= 0 {
		return fmt.Errorf("missing or invalid Content-Length header")
	}
	if contentLength > maxContentLength {
		// Skip the body so the next header starts on a message boundary.
		if _, err := io.CopyN(io.Discard, s.input, int64(contentLength)); err != nil {
			return err
		}
		return fmt.Errorf("message too large: %d bytes", contentLength)
	}

	content := make([]byte, contentLength)
	if _, err := io.ReadFull(s.input, content); err != nil {
		return err
	}

	var msg jsonRPCMessage
	if err := json.Unmarshal(content, &msg); err != nil {
		return fmt.Errorf("failed to parse message: %w", err)
	}

	s.logger.Debug("received", "method", msg.Method)

	return s.dispatch(msg)
}

// dispatch routes a message to the appropriate handler.
func (s *Server) dispatch(msg jsonRPCMessage) error {
	if s.shutdown && msg.Method != "exit" {
		if msg.ID != nil {
			return s.sendError(msg.ID, codeInvalidRequest, "server is shutting down")
		}
		return nil
	}

	switch msg.Method {
	case "initialize":
		return s.handleInitialize(msg)
	case "initialized":
		s.start()
		return nil
	case "shutdown":
		s.shutdown = true
		return s.sendResult(msg.ID, nil)
	case "exit":
		return errExit
	case "textDocument/didOpen":
		return s.handleDidOpen(msg)
	case "textDocument/didChange":
		return s.handleDidChange(msg)
	case "textDocument/didClose":
		return s.handleDidClose(msg)
	case "textDocument/completion":
		return s.handleCompletion(msg)
	case "textDocument/definition":
		return s.handleDefinition(msg)
	case "textDocument/hover":
		return s.handleHover(msg)
	case "workspace/executeCommand":
		return s.handleExecuteCommand(msg)
	case "workspace/didChangeConfiguration":
		return s.handleDidChangeConfiguration(msg)
	case "workspace/didChangeWatchedFiles":
		return s.handleDidChangeWatchedFiles(msg)
	default:
		if msg.ID != nil && msg.Method != "" {
			return s.sendError(msg.ID, codeMethodNotFound, "method not found: "+msg.Method)
		}
		s.logger.Debug("unhandled method", "method", msg.Method)
		return nil
	}
}

// sendResult sends a successful response.
func (s *Server) sendResult(id interface{}, result interface{}) error {
	return s.send(jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

// sendError sends an error response.
func (s *Server) sendError(id interface{}, code int, message string) error {
	return s.send(jsonRPCErrorResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: jsonRPCError{
			Code:    code,
			Message: message,
		},
	})
}

// sendNotification sends a notification (no response expected).
func (s *Server) sendNotification(method string, params interface{}) error {
	return s.send(jsonRPCMessage{
		JSONRPC: "2.0",
		Method:  method,
		Params:  mustMarshal(params),
	})
}

// showMessage asks the client to display a message.
func (s *Server) showMessage(typ int, message string) {
	if err := s.sendNotification("window/showMessage", ShowMessageParams{Type: typ, Message: message}); err != nil {
		s.logger.Warn("failed to send message", "err", err)
	}
}

// send writes a JSON-RPC message to the output.
func (s *Server) send(msg interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	content, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(content))
	if _, err := io.WriteString(s.output, header); err != nil {
		return err
	}
	_, err = s.output.Write(content)
	return err
}

// Helper functions

// uriToPath converts a file:// URI to a filesystem path.
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return strings.TrimPrefix(uri, "file://")
	}
	return filepath.FromSlash(u.Path)
}

func (s *Server) pathToURI(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.vaultPath, filepath.FromSlash(path))
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func mustMarshal(v interface{}) json.RawMessage {
	data, _ := json.Marshal(v)
	return data
}

// JSON-RPC types

type jsonRPCMessage struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id,omitempty"`
	Method  string          `json:"method,omitempty"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// jsonRPCResponse always carries "result", null included.
type jsonRPCResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result"`
}

type jsonRPCErrorResponse struct {
	JSONRPC string       `json:"jsonrpc"`
	ID      interface{}  `json:"id"`
	Error   jsonRPCError `json:"error"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// JSON-RPC error codes
const (
	codeInvalidRequest = -32600
	codeInvalidParams  = -32602
	codeMethodNotFound = -32601
	codeInternalError  = -32603
	codeNotInitialized = -32002
)
