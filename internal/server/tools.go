package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func pathProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"description": "Absolute path to the image file",
	}
}

func regionProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "object",
		"description": "Optional rectangle to analyse instead of the whole image. (x1,y1) inclusive, (x2,y2) exclusive.",
		"properties": map[string]interface{}{
			"x1": map[string]interface{}{"type": "integer"},
			"y1": map[string]interface{}{"type": "integer"},
			"x2": map[string]interface{}{"type": "integer"},
			"y2": map[string]interface{}{"type": "integer"},
		},
		"required": []string{"x1", "y1", "x2", "y2"},
	}
}

func grayMethodProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "string",
		"enum":        []string{"luma", "lightness"},
		"description": "How color images are reduced to intensity. 'luma' uses Rec. 601 weights, 'lightness' uses CIE L*. Defaults to the server setting.",
	}
}

func strategyProperty(allowAll bool) map[string]interface{} {
	values := []string{"cumulative", "histogram", "pixel"}
	desc := "Group statistics strategy. All strategies return the same threshold; they differ in cost."
	if allowAll {
		values = append(values, "all")
		desc += " 'all' runs every strategy and reports whether they agree."
	}
	return map[string]interface{}{
		"type":        "string",
		"enum":        values,
		"description": desc,
	}
}

func maxIterationsProperty() map[string]interface{} {
	return map[string]interface{}{
		"type":        "integer",
		"description": "Upper bound on solver iterations. Defaults to the server setting.",
		"minimum":     1,
	}
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Basic Image Information
		{
			Name:        "image_load",
			Description: "Load an image file and return its dimensions and format. The decoded image is cached for subsequent operations.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
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
					"path": pathProperty(),
				},
				"required": []string{"path"},
			},
		},

		// Intensity Analysis
		{
			Name:        "image_histogram",
			Description: "Count how many pixels have each of the 256 intensity levels. Returns the counts, the pixel total, the mean intensity and the threshold solved from the counts.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":        pathProperty(),
					"region":      regionProperty(),
					"gray_method": grayMethodProperty(),
					"chart": map[string]interface{}{
						"type":        "boolean",
						"description": "Also return a PNG plot of the histogram with the threshold marked",
						"default":     false,
					},
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_threshold",
			Description: "Find a global threshold separating dark from bright pixels using iterative mean splitting, starting at 127 and stopping when the threshold moves by at most 1.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":           pathProperty(),
					"strategy":       strategyProperty(true),
					"region":         regionProperty(),
					"max_iterations": maxIterationsProperty(),
					"gray_method":    grayMethodProperty(),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "image_binarize",
			Description: "Convert an image to black and white. Pixels at or below the threshold become 0, all others 255. The threshold is computed unless given.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": pathProperty(),
					"threshold": map[string]interface{}{
						"type":        "integer",
						"description": "Explicit threshold (0-255). When omitted it is computed.",
						"minimum":     0,
						"maximum":     255,
					},
					"strategy":       strategyProperty(false),
					"max_iterations": maxIterationsProperty(),
					"region":         regionProperty(),
					"gray_method":    grayMethodProperty(),
					"output_path": map[string]interface{}{
						"type":        "string",
						"description": "Write the result here (.png, .jpg, .bmp). When omitted the result is returned as base64 PNG.",
					},
				},
				"required": []string{"path"},
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
