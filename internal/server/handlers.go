package server

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/particle-svg-mcp/internal/export"
	"github.com/ironsheep/particle-svg-mcp/internal/imaging"
	"github.com/ironsheep/particle-svg-mcp/internal/particle"
)

// ErrRateLimited is returned when a conversion would exceed the configured
// rate.
var ErrRateLimited = errors.New("rate limit exceeded")

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "particle_convert").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Tool execution errors return a JSON-RPC error response with code -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	case "particle_convert":
		return s.handleParticleConvert(args)
	case "particle_convert_batch":
		return s.handleParticleConvertBatch(args)

	case "svg_export":
		return s.handleSVGExport(args)
	case "svg_info":
		return s.handleSVGInfo(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// On marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// === Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

// handleImageLoad always re-reads the file so an image edited on disk is
// picked up by later conversions.
func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	s.cache.Evict(a.Path)
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Conversion Handlers ===

type particleConvertArgs struct {
	Path string `json:"path"`
	particle.Settings

	// Save writes the SVG next to the source (or to OutputPath).
	Save       bool   `json:"save"`
	OutputPath string `json:"output_path"`

	// OmitSVG leaves the markup out of the response.
	OmitSVG bool `json:"omit_svg"`
}

// ConvertResult is the response of particle_convert and one entry of a
// batch response.
type ConvertResult struct {
	Source     string         `json:"source"`
	OutputPath string         `json:"output_path,omitempty"`
	Width      int            `json:"width"`
	Height     int            `json:"height"`
	Colors     []string       `json:"colors"`
	ElapsedMS  float64        `json:"elapsed_ms"`
	SVGBytes   int            `json:"svg_bytes"`
	Stats      particle.Stats `json:"stats"`
	SVG        string         `json:"svg,omitempty"`
}

func (s *Server) handleParticleConvert(args json.RawMessage) (interface{}, error) {
	a := particleConvertArgs{Settings: particle.DefaultSettings()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return s.convert(a.Path, a.Settings, a.Save, a.OutputPath, a.OmitSVG)
}

// convert runs one rate-limited conversion through the image cache.
func (s *Server) convert(path string, settings particle.Settings, save bool, outputPath string, omitSVG bool) (*ConvertResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	if !s.limiter.Allow() {
		return nil, fmt.Errorf("%w: retry in %s", ErrRateLimited, s.limiter.Remaining().Round(time.Millisecond))
	}

	img, err := s.cache.Load(path)
	if err != nil {
		return nil, err
	}
	res, err := s.engine.Convert(img, path, settings)
	if err != nil {
		return nil, err
	}

	out := &ConvertResult{
		Source:    res.Source,
		Width:     res.Width,
		Height:    res.Height,
		Colors:    res.Colors,
		ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
		SVGBytes:  len(res.SVG),
		Stats:     res.Stats,
	}
	if !omitSVG {
		out.SVG = res.SVG
	}

	if save || outputPath != "" {
		if outputPath == "" {
			outputPath = SVGPath(path)
		}
		if err := os.WriteFile(outputPath, []byte(res.SVG), 0o644); err != nil {
			return nil, fmt.Errorf("failed to write svg: %w", err)
		}
		out.OutputPath = outputPath
	}
	return out, nil
}

// SVGPath returns the output path for a converted image: the source path
// with its extension replaced by ".svg".
func SVGPath(source string) string {
	return strings.TrimSuffix(source, filepath.Ext(source)) + ".svg"
}

type particleConvertBatchArgs struct {
	Paths []string `json:"paths"`
	particle.Settings
	Save    bool `json:"save"`
	OmitSVG bool `json:"omit_svg"`
}

// BatchItem is the outcome for one image of a batch.
type BatchItem struct {
	Path   string         `json:"path"`
	OK     bool           `json:"ok"`
	Error  string         `json:"error,omitempty"`
	Result *ConvertResult `json:"result,omitempty"`
}

// BatchResult reports every image in submission order.
type BatchResult struct {
	Converted int         `json:"converted"`
	Failed    int         `json:"failed"`
	Items     []BatchItem `json:"items"`
}

// handleParticleConvertBatch converts images one at a time in the given
// order. A failed image is recorded and the batch continues.
func (s *Server) handleParticleConvertBatch(args json.RawMessage) (interface{}, error) {
	a := particleConvertBatchArgs{Settings: particle.DefaultSettings()}
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if len(a.Paths) == 0 {
		return nil, fmt.Errorf("paths must not be empty")
	}
	if err := a.Settings.Validate(); err != nil {
		return nil, err
	}

	batch := &BatchResult{Items: make([]BatchItem, 0, len(a.Paths))}
	for _, path := range a.Paths {
		item := BatchItem{Path: path}
		res, err := s.convert(path, a.Settings, a.Save, "", a.OmitSVG)
		if err != nil {
			item.Error = err.Error()
			batch.Failed++
		} else {
			item.OK = true
			item.Result = res
			batch.Converted++
		}
		batch.Items = append(batch.Items, item)
	}
	return batch, nil
}

// === SVG Handlers ===

type svgSourceArgs struct {
	// SVG is inline markup; Path names an .svg file. SVG wins if both are set.
	SVG  string `json:"svg"`
	Path string `json:"path"`
}

func (a svgSourceArgs) load() (string, error) {
	if a.SVG != "" {
		return a.SVG, nil
	}
	if a.Path == "" {
		return "", fmt.Errorf("either svg or path is required")
	}
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return "", fmt.Errorf("failed to read svg: %w", err)
	}
	return string(data), nil
}

type svgExportArgs struct {
	svgSourceArgs
	Format     string  `json:"format"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Scale      float64 `json:"scale"`
	Quality    float64 `json:"quality"`
	Background string  `json:"background"`
	OutputPath string  `json:"output_path"`
}

// ExportResult is the response of svg_export. ImageBase64 is set only when
// the image was not written to disk.
type ExportResult struct {
	Format      export.Format `json:"format"`
	MIMEType    string        `json:"mime_type"`
	Width       int           `json:"width"`
	Height      int           `json:"height"`
	Bytes       int           `json:"bytes"`
	OutputPath  string        `json:"output_path,omitempty"`
	ImageBase64 string        `json:"image_base64,omitempty"`
}

func (s *Server) handleSVGExport(args json.RawMessage) (interface{}, error) {
	var a svgExportArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := a.load()
	if err != nil {
		return nil, err
	}

	format := export.PNG
	switch {
	case a.Format != "":
		format, err = export.ParseFormat(a.Format)
	case a.OutputPath != "":
		format, err = export.ParseFormat(filepath.Ext(a.OutputPath))
	}
	if err != nil {
		return nil, err
	}

	res, err := export.Export(doc, export.Options{
		Width:      a.Width,
		Height:     a.Height,
		Scale:      a.Scale,
		Format:     format,
		Quality:    a.Quality,
		Background: a.Background,
	})
	if err != nil {
		return nil, err
	}

	out := &ExportResult{
		Format:   res.Format,
		MIMEType: res.MIMEType,
		Width:    res.Width,
		Height:   res.Height,
		Bytes:    len(res.Data),
	}
	if a.OutputPath != "" {
		if err := os.WriteFile(a.OutputPath, res.Data, 0o644); err != nil {
			return nil, fmt.Errorf("failed to write image: %w", err)
		}
		out.OutputPath = a.OutputPath
	} else {
		out.ImageBase64 = base64.StdEncoding.EncodeToString(res.Data)
	}
	return out, nil
}

// SVGInfoResult is the response of svg_info.
type SVGInfoResult struct {
	*export.Info
	Bytes int `json:"bytes"`
}

func (s *Server) handleSVGInfo(args json.RawMessage) (interface{}, error) {
	var a svgSourceArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	doc, err := a.load()
	if err != nil {
		return nil, err
	}
	info, err := export.Inspect(doc)
	if err != nil {
		return nil, err
	}
	return &SVGInfoResult{Info: info, Bytes: len(doc)}, nil
}
