package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
	"github.com/ironsheep/particle-svg-mcp/internal/particle"
)

// Version is reported in the initialize handshake.
const Version = "0.1.0"

// Config holds the server settings that are not per-call arguments.
type Config struct {
	// RateLimit is how many conversions may start within RateWindow.
	// Zero or less disables limiting.
	RateLimit int

	// RateWindow is the length of the sliding window.
	RateWindow time.Duration

	// MaxSize caps the width and height of images before sampling.
	MaxSize int

	// Logger receives engine diagnostics. Nil keeps the engine silent.
	Logger *slog.Logger
}

// DefaultConfig allows 20 conversions per minute on images capped at 600px.
func DefaultConfig() Config {
	return Config{
		RateLimit:  20,
		RateWindow: time.Minute,
		MaxSize:    imaging.DefaultMaxSize,
	}
}

// Server handles MCP protocol communication
type Server struct {
	cache   *imaging.ImageCache
	engine  *particle.Engine
	limiter *RateLimiter
}

// MCPRequest represents an incoming JSON-RPC request
type MCPRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      interface{}     `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// MCPResponse represents an outgoing JSON-RPC response
type MCPResponse struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      interface{} `json:"id"`
	Result  interface{} `json:"result,omitempty"`
	Error   *MCPError   `json:"error,omitempty"`
}

// MCPError represents a JSON-RPC error
type MCPError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// New creates a server with DefaultConfig.
func New() *Server {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a server with its own image cache, conversion
// engine and rate limiter.
func NewWithConfig(cfg Config) *Server {
	opts := []particle.Option{particle.WithMaxSize(cfg.MaxSize)}
	if cfg.Logger != nil {
		opts = append(opts, particle.WithLogger(cfg.Logger))
	}
	return &Server{
		cache:   imaging.NewImageCache(),
		engine:  particle.NewEngine(opts...),
		limiter: NewRateLimiter(cfg.RateLimit, cfg.RateWindow),
	}
}

// Run serves requests from stdin until it is closed, writing responses to
// stdout.
func (s *Server) Run() error {
	return s.Serve(os.Stdin, os.Stdout)
}

// Serve reads newline-delimited JSON-RPC requests from r and writes one
// response line per request to w. Notifications get no response.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	// inline SVG arguments can be large
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 32*1024*1024)

	encoder := json.NewEncoder(w)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var req MCPRequest
		if err := json.Unmarshal(line, &req); err != nil {
			log.Printf("Failed to parse request: %v", err)
			continue
		}

		resp := s.handleRequest(&req)
		if resp != nil {
			if err := encoder.Encode(resp); err != nil {
				log.Printf("Failed to encode response: %v", err)
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scanner error: %w", err)
	}

	return nil
}

// handleRequest routes requests to appropriate handlers
func (s *Server) handleRequest(req *MCPRequest) *MCPResponse {
	switch req.Method {
	case "initialize":
		return s.handleInitialize(req)
	case "notifications/initialized":
		return nil
	case "tools/list":
		return s.handleToolsList(req)
	case "tools/call":
		return s.handleToolsCall(req)
	case "ping":
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result:  map[string]interface{}{},
		}
	default:
		return &MCPResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error: &MCPError{
				Code:    -32601,
				Message: fmt.Sprintf("Method not found: %s", req.Method),
			},
		}
	}
}

func (s *Server) handleInitialize(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"protocolVersion": "2024-11-05",
			"capabilities": map[string]interface{}{
				"tools": map[string]interface{}{},
			},
			"serverInfo": map[string]interface{}{
				"name":    "particle-svg-mcp",
				"version": Version,
			},
		},
	}
}
