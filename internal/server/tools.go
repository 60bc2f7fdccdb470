package server

// Tool represents an MCP tool definition
type Tool struct {
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	InputSchema map[string]interface{} `json:"inputSchema"`
}

func prop(typ, description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        typ,
		"description": description,
	}
}

// gridInput is the schema of a tool taking one grid plus extra properties.
func gridInput(extra map[string]interface{}, required ...string) map[string]interface{} {
	props := map[string]interface{}{
		"handle": prop("string", "Handle returned by an earlier raster tool"),
		"path":   prop("string", "Absolute path to a PGM, PPM, PNG, JPEG, GIF, BMP or TIFF file, used when no handle is given"),
	}
	for k, v := range extra {
		props[k] = v
	}
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// GetToolDefinitions returns all available tools
func GetToolDefinitions() []Tool {
	return []Tool{
		// Loading and inspection
		{
			Name:        "raster_load",
			Description: "Load an image file as a gray raster and return a handle with its rows, columns, maximum sample and mean sample. P6 and other color files are reduced to luminance.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path": prop("string", "Absolute path to the image file"),
				},
				"required": []string{"path"},
			},
		},
		{
			Name:        "raster_info",
			Description: "Report rows, columns, maximum sample and mean sample of a raster.",
			InputSchema: gridInput(nil),
		},
		{
			Name:        "raster_pixel",
			Description: "Read the sample at a row and column.",
			InputSchema: gridInput(map[string]interface{}{
				"row": prop("integer", "Row index (0-based, top is 0)"),
				"col": prop("integer", "Column index (0-based, left is 0)"),
			}, "row", "col"),
		},

		// Geometry
		{
			Name:        "raster_crop",
			Description: "Copy the rectangle [top, bottom) x [left, right) into a new raster. The rectangle must lie inside the source.",
			InputSchema: gridInput(map[string]interface{}{
				"top":    prop("integer", "First row (inclusive)"),
				"left":   prop("integer", "First column (inclusive)"),
				"bottom": prop("integer", "Last row (exclusive)"),
				"right":  prop("integer", "Last column (exclusive)"),
			}, "top", "left", "bottom", "right"),
		},
		{
			Name:        "raster_crop_region",
			Description: "Crop a named region: top-left, top-right, bottom-left, bottom-right (quarters), top-half, bottom-half, left-half, right-half, or center (middle half in each direction).",
			InputSchema: gridInput(map[string]interface{}{
				"region": map[string]interface{}{
					"type":        "string",
					"description": "Region name",
					"enum": []string{
						"top-left", "top-right", "bottom-left", "bottom-right",
						"top-half", "bottom-half", "left-half", "right-half", "center",
					},
				},
			}, "region"),
		},
		{
			Name:        "raster_enlarge",
			Description: "Enlarge by an integer factor, replicating each sample into a factor x factor block.",
			InputSchema: gridInput(map[string]interface{}{
				"factor": map[string]interface{}{
					"type":        "integer",
					"description": "Scale factor, at least 1. Default 2",
					"default":     2,
				},
			}),
		},
		{
			Name:        "raster_shrink",
			Description: "Shrink by an integer factor, keeping every factor-th sample in each direction (no averaging).",
			InputSchema: gridInput(map[string]interface{}{
				"factor": map[string]interface{}{
					"type":        "integer",
					"description": "Decimation factor, at least 1. Default 2",
					"default":     2,
				},
			}),
		},
		{
			Name:        "raster_mirror",
			Description: "Mirror a raster. horizontal reverses the row order (top becomes bottom), vertical reverses the column order.",
			InputSchema: gridInput(map[string]interface{}{
				"axis": map[string]interface{}{
					"type":        "string",
					"description": "Mirror axis. Default horizontal",
					"enum":        []string{"horizontal", "vertical"},
					"default":     "horizontal",
				},
			}),
		},
		{
			Name:        "raster_shift",
			Description: "Translate the raster down and right by delta samples along the diagonal, filling uncovered samples with zero.",
			InputSchema: gridInput(map[string]interface{}{
				"delta": prop("integer", "Non-negative shift in rows and columns"),
			}, "delta"),
		},
		{
			Name:        "raster_rotate",
			Description: "Rotate about the center by a whole number of degrees using nearest-neighbor forward mapping. Unvisited samples are zero, then each zero sample takes its right neighbor's value.",
			InputSchema: gridInput(map[string]interface{}{
				"degrees": prop("integer", "Rotation angle in degrees"),
			}, "degrees"),
		},

		// Sample arithmetic
		{
			Name:        "raster_invert",
			Description: "Replace every sample v with 255 - v.",
			InputSchema: gridInput(nil),
		},
		{
			Name:        "raster_combine",
			Description: "Combine two rasters of equal size. average takes (a+b)/2; difference takes |a-b| and zeroes differences below 35.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"a_handle": prop("string", "Handle of the first raster"),
					"a_path":   prop("string", "Path of the first raster, used when a_handle is empty"),
					"b_handle": prop("string", "Handle of the second raster"),
					"b_path":   prop("string", "Path of the second raster, used when b_handle is empty"),
					"mode": map[string]interface{}{
						"type":        "string",
						"description": "Combination mode. Default average",
						"enum":        []string{"average", "difference"},
						"default":     "average",
					},
				},
			},
		},

		// Filters
		{
			Name:        "raster_smooth",
			Description: "Apply a separable 3x3 Gaussian blur (1-2-1 weights, vertical pass first). Border samples are kept.",
			InputSchema: gridInput(nil),
		},
		{
			Name:        "raster_stretch",
			Description: "Stretch contrast linearly between the histogram percentiles at cutoff and 1-cutoff.",
			InputSchema: gridInput(map[string]interface{}{
				"cutoff": map[string]interface{}{
					"type":        "number",
					"description": "Fraction of samples clipped at each end, in [0, 0.5). Default 0.05",
					"default":     0.05,
				},
			}),
		},
		{
			Name:        "raster_energy",
			Description: "Compute the gradient magnitude of each interior sample from central differences, scaled by 1/sqrt(2). The border is zero.",
			InputSchema: gridInput(nil),
		},
		{
			Name:        "raster_threshold",
			Description: "Map samples above the threshold to 255 and all others to 0.",
			InputSchema: gridInput(map[string]interface{}{
				"threshold": map[string]interface{}{
					"type":        "integer",
					"description": "Threshold. Default 30",
					"default":     30,
				},
			}),
		},

		{
			Name:        "raster_regions",
			Description: "List the 8-connected regions of nonzero samples, largest first, with bounds, centroid and area. Run it on a threshold or segment mask.",
			InputSchema: gridInput(map[string]interface{}{
				"min_area": map[string]interface{}{
					"type":        "integer",
					"description": "Smallest region to report, in samples. Default 1",
					"default":     1,
				},
			}),
		},

		// Output
		{
			Name:        "raster_save",
			Description: "Write a raster to disk. .pgm files are written as raw P5; .png, .jpg, .gif, .tif and .bmp by extension.",
			InputSchema: gridInput(map[string]interface{}{
				"output": prop("string", "Absolute output path"),
			}, "output"),
		},
		{
			Name:        "raster_preview",
			Description: "Render a raster as a base64-encoded PNG, optionally scaled with nearest-neighbor resampling.",
			InputSchema: gridInput(map[string]interface{}{
				"scale": map[string]interface{}{
					"type":        "number",
					"description": "Scale factor. Default 1.0",
					"default":     1.0,
				},
			}),
		},

		// Color
		{
			Name:        "color_sample",
			Description: "Read one pixel of a P6 file and report its channels, 0-255 hue, saturation and value, and hex code.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    prop("string", "Absolute path to the P6 file"),
					"x":       prop("integer", "Column (0-based)"),
					"y":       prop("integer", "Row (0-based)"),
					"swap_rb": prop("boolean", "Treat triples as blue, green, red"),
				},
				"required": []string{"path", "x", "y"},
			},
		},
		{
			Name:        "color_segment",
			Description: "Build the 8-bin hue histogram of a P6 file, pick the dominant bin and return a mask raster handle marking samples in that bin above the saturation and value floors.",
			InputSchema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"path":    prop("string", "Absolute path to the P6 file"),
					"swap_rb": prop("boolean", "Treat triples as blue, green, red"),
					"min_sat": map[string]interface{}{
						"type":        "integer",
						"description": "Saturation floor (exclusive). Default 100",
						"default":     100,
					},
					"min_val": map[string]interface{}{
						"type":        "integer",
						"description": "Value floor (exclusive). Default 100",
						"default":     100,
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
