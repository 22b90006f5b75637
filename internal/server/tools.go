package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func stringProperty(desc string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": desc,
	}
}

// settingsProperties describes the particle.Settings arguments shared by
// the conversion tools.
func settingsProperties() map[string]interface{} {
	return map[string]interface{}{
		"particle_size": map[string]interface{}{
			"type":        "number",
			"description": "Particle radius in pixels, at least 0.05. The grid step it gives at the chosen density must be at least 1px (size 0.25 or more at density 100). Default 2",
			"minimum":     0.05,
			"default":     2,
		},
		"particle_density": map[string]interface{}{
			"type":        "number",
			"description": "Sampling density in percent, 10-100. Lower values space particles further apart. Default 50",
			"minimum":     10,
			"maximum":     100,
			"default":     50,
		},
		"blur": map[string]interface{}{
			"type":        "number",
			"description": "Gaussian blur sigma applied before sampling. 0 disables. Default 0",
			"minimum":     0,
			"default":     0,
		},
		"save": map[string]interface{}{
			"type":        "boolean",
			"description": "Write the SVG next to the source image with a .svg extension",
			"default":     false,
		},
		"omit_svg": map[string]interface{}{
			"type":        "boolean",
			"description": "Leave the SVG markup out of the response (useful with save)",
			"default":     false,
		},
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	convertProps := settingsProperties()
	convertProps["path"] = stringProperty("Absolute path to a PNG, JPEG, WEBP or GIF image")
	convertProps["output_path"] = stringProperty("Optional path for the SVG file. Implies save")

	batchProps := settingsProperties()
	batchProps["paths"] = map[string]interface{}{
		"type":        "array",
		"items":       map[string]interface{}{"type": "string"},
		"description": "Absolute image paths, converted in order",
	}

	svgSource := func() map[string]interface{} {
		return map[string]interface{}{
			"svg":  stringProperty("Inline SVG markup"),
			"path": stringProperty("Absolute path to an SVG file (used when svg is empty)"),
		}
	}

	exportProps := svgSource()
	exportProps["format"] = map[string]interface{}{
		"type":        "string",
		"enum":        []string{"png", "jpeg", "jpg", "webp"},
		"description": "Output format. Defaults to the output_path extension, else png",
	}
	exportProps["scale"] = map[string]interface{}{
		"type":        "number",
		"description": "Multiplier applied to the document size. Default 2",
		"default":     2.0,
	}
	exportProps["quality"] = map[string]interface{}{
		"type":        "number",
		"description": "Lossy quality in (0,1] for jpeg and webp. Default 0.95",
		"default":     0.95,
	}
	exportProps["background"] = map[string]interface{}{
		"type":        "string",
		"description": "Background fill as #rrggbb. jpeg defaults to #ffffff; png and webp stay transparent without it",
	}
	exportProps["width"] = map[string]interface{}{
		"type":        "number",
		"description": "Document width in user units. Defaults to the viewBox width",
	}
	exportProps["height"] = map[string]interface{}{
		"type":        "number",
		"description": "Document height in user units. Defaults to the viewBox height",
	}
	exportProps["output_path"] = stringProperty("Optional file to write. Without it the image is returned base64-encoded")

	return []Tool{
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions, format, alpha support and the size it will be sampled at.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_dimensions",
			Description: "Get the width and height of an image file.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": stringProperty("Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "particle_convert",
			Description: "Convert an image into particle-art SVG: the image is sampled on two interleaved grids, same-color particles that touch are merged into one path, and groups are painted dark to light. Images larger than 600px are downscaled first.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": convertProps,
				"required":   []string{"path"},
			},
		},
		{
			Name:        "particle_convert_batch",
			Description: "Convert several images in order with the same settings. A failing image is reported and the rest still run.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": batchProps,
				"required":   []string{"paths"},
			},
		},
		{
			Name:        "svg_export",
			Description: "Rasterize an SVG document to PNG, JPEG or WEBP at a given scale, with an optional background.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": exportProps,
			},
		},
		{
			Name:        "svg_info",
			Description: "Report the width, height and viewBox of an SVG document.",
			InputSchema: map[string]interface{}{
				"type":       "object",
				"properties": svgSource(),
			},
		},
	}
}

// handleToolsList returns the list of available tools
func (s *Server) handleToolsList(req *MCPRequest) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"tools": GetToolDefinitions(),
		},
	}
}
