// Package server implements the MCP (Model Context Protocol) server for
// particle-art conversion.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// # Available Tools
//
// Image information:
//   - image_load: Load image and get metadata, including the sampled size
//   - image_dimensions: Get width and height
//
// Conversion:
//   - particle_convert: Convert one image to particle-art SVG
//   - particle_convert_batch: Convert several images in order
//
// SVG:
//   - svg_export: Rasterize an SVG to PNG, JPEG or WEBP
//   - svg_info: Report SVG dimensions
//
// # Rate Limiting
//
// Conversions pass through a sliding-window RateLimiter owned by the
// Server (20 per minute by default). Each image of a batch counts
// separately; a refused image is reported in the batch like any other
// failure. The conversion engine itself has no notion of rate.
//
// # Image Caching
//
// Decoded source images are cached by path and reused across tool calls.
// The cache persists for the lifetime of the server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string
//
// # Usage
//
//	srv := server.New()
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
