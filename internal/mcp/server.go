// Package mcp implements the stdio server that exposes documentation
// lookup and code analysis to automated clients.
//
// The transport is JSON-RPC 2.0 with newline-delimited framing: one
// JSON object per line on stdin, one response per line on stdout. All
// logging goes to stderr so stdout stays a clean protocol channel.
package mcp

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/yaklabco/leptomcp/internal/logging"
	"github.com/yaklabco/leptomcp/pkg/config"
	"github.com/yaklabco/leptomcp/pkg/lint"
	"github.com/yaklabco/leptomcp/pkg/lint/rules"
)

// protocolVersion is the protocol revision advertised to clients.
const protocolVersion = "2024-11-05"

// serverName identifies this server in initialize responses.
const serverName = "leptos-mcp-server"

// maxLineBytes bounds a single request line. Code submitted for
// analysis arrives inline, so the limit is generous.
const maxLineBytes = 10 << 20

// Server is the stdio request loop. Requests are handled serially in
// arrival order.
type Server struct {
	cfg     *config.Config
	engine  *lint.Engine
	version string
	session string

	in     io.Reader
	out    io.Writer
	logger *log.Logger
}

// Options configures a Server. Zero-value fields fall back to stdio
// and the package default logger.
type Options struct {
	// Config carries rule enablement and severity overrides. Nil means
	// catalog defaults.
	Config *config.Config

	// Version is reported in the initialize response.
	Version string

	In     io.Reader
	Out    io.Writer
	Logger *log.Logger
}

// NewServer creates a Server over the built-in rule catalog. Each
// server gets a fresh session id for log correlation.
func NewServer(opts Options) *Server {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	if opts.Version == "" {
		opts.Version = "dev"
	}

	return &Server{
		cfg:     opts.Config,
		engine:  lint.NewEngine(rules.Catalog()),
		version: opts.Version,
		session: uuid.NewString(),
		in:      opts.In,
		out:     opts.Out,
		logger:  opts.Logger,
	}
}

// Session returns the session id assigned at construction.
func (s *Server) Session() string {
	return s.session
}

// Serve reads requests line by line until EOF or context cancellation.
// Empty lines are skipped, undecodable lines are logged and skipped,
// and notifications are consumed without a response.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("server started",
		logging.FieldSession, s.session,
		logging.FieldVersion, s.version)

	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var req request
		if err := json.Unmarshal(line, &req); err != nil {
			s.logger.Error("failed to parse request", logging.FieldError, err)
			continue
		}

		if req.isNotification() {
			s.logger.Debug("notification", logging.FieldMethod, req.Method)
			continue
		}

		if err := s.send(s.handle(ctx, &req)); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}

	s.logger.Info("server stopped", logging.FieldSession, s.session)
	return nil
}

func (s *Server) handle(ctx context.Context, req *request) response {
	s.logger.Info("handling request", logging.FieldMethod, req.Method)

	var (
		result any
		rpcErr *responseError
	)

	switch req.Method {
	case "initialize":
		result = s.initialize()
	case "tools/list":
		result = listTools()
	case "tools/call":
		result, rpcErr = s.callTool(ctx, req.Params)
	default:
		// Unknown methods answer an empty object rather than an error
		// so exploratory clients keep working.
		s.logger.Warn("unknown method", logging.FieldMethod, req.Method)
		result = struct{}{}
	}

	if rpcErr != nil {
		return response{JSONRPC: jsonRPCVersion, ID: req.ID, Error: rpcErr}
	}
	return response{JSONRPC: jsonRPCVersion, ID: req.ID, Result: result}
}

func (s *Server) initialize() initializeResult {
	return initializeResult{
		ProtocolVersion: protocolVersion,
		ServerInfo: serverInfo{
			Name:    serverName,
			Version: s.version,
		},
	}
}

func (s *Server) send(resp response) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("marshal response: %w", err)
	}
	data = append(data, '\n')
	_, err = s.out.Write(data)
	return err
}

func rpcErrorf(format string, args ...any) *responseError {
	return &responseError{
		Code:    codeInvalidRequest,
		Message: fmt.Sprintf(format, args...),
	}
}
