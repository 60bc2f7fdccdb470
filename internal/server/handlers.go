package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/raster-tools/internal/chroma"
	"github.com/ironsheep/raster-tools/internal/imaging"
	"github.com/ironsheep/raster-tools/internal/logging"
	"github.com/ironsheep/raster-tools/internal/netpbm"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "raster_load", "raster_rotate").
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
func (s *Server) handleToolsCall(ctx context.Context, req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}
	if len(params.Arguments) == 0 {
		params.Arguments = json.RawMessage("{}")
	}

	ctx = logging.AppendCtx(ctx, slog.String("tool", params.Name))
	start := time.Now()
	result, err := s.runTool(params.Name, params.Arguments)
	if err != nil {
		s.log.WarnContext(ctx, "tool failed", "error", err, "elapsed", time.Since(start))
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}
	s.log.InfoContext(ctx, "tool done", "elapsed", time.Since(start))

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

// runTool calls executeTool, reporting a handler panic as an error.
func (s *Server) runTool(name string, args json.RawMessage) (result interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			result, err = nil, fmt.Errorf("tool %s panicked: %v", name, r)
		}
	}()
	return s.executeTool(name, args)
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Grid tools resolve their input from a handle or a path, run one imaging
// operation and store the result under a fresh handle.
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Loading and inspection
	case "raster_load":
		return s.handleLoad(args)
	case "raster_info":
		return s.handleInfo(args)
	case "raster_pixel":
		return s.handlePixel(args)

	// Geometry
	case "raster_crop":
		return s.handleCrop(args)
	case "raster_crop_region":
		return s.handleCropRegion(args)
	case "raster_enlarge":
		return s.handleScale(args, imaging.Enlarge)
	case "raster_shrink":
		return s.handleScale(args, imaging.Shrink)
	case "raster_mirror":
		return s.handleMirror(args)
	case "raster_shift":
		return s.handleShift(args)
	case "raster_rotate":
		return s.handleRotate(args)

	// Sample arithmetic
	case "raster_invert":
		return s.handleUnary(args, imaging.Invert)
	case "raster_combine":
		return s.handleCombine(args)

	// Filters
	case "raster_smooth":
		return s.handleUnary(args, imaging.Smooth)
	case "raster_stretch":
		return s.handleStretch(args)
	case "raster_energy":
		return s.handleUnary(args, imaging.GradientEnergy)
	case "raster_threshold":
		return s.handleThreshold(args)
	case "raster_regions":
		return s.handleRegions(args)

	// Output
	case "raster_save":
		return s.handleSave(args)
	case "raster_preview":
		return s.handlePreview(args)

	// Color
	case "color_sample":
		return s.handleColorSample(args)
	case "color_segment":
		return s.handleColorSegment(args)

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
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// gridRef names a tool's input grid, by handle or by path.
type gridRef struct {
	Handle string `json:"handle"`
	Path   string `json:"path"`
}

// GridResult describes a grid stored in the server's cache.
type GridResult struct {
	Handle string `json:"handle"`
	imaging.GridInfo
}

func (s *Server) store(g *imaging.Grid) GridResult {
	return GridResult{Handle: s.cache.Put(g), GridInfo: g.Info()}
}

func (s *Server) resolve(ref gridRef) (*imaging.Grid, error) {
	return s.cache.Resolve(ref.Handle, ref.Path)
}

// === Loading and Inspection Handlers ===

func (s *Server) handleLoad(args json.RawMessage) (interface{}, error) {
	var a gridRef
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Path == "" {
		return nil, fmt.Errorf("path is required: %w", imaging.ErrInvalidParameter)
	}
	g, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return s.store(g), nil
}

func (s *Server) handleInfo(args json.RawMessage) (interface{}, error) {
	var a gridRef
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a)
	if err != nil {
		return nil, err
	}
	return g.Info(), nil
}

type pixelArgs struct {
	gridRef
	Row int `json:"row"`
	Col int `json:"col"`
}

// PixelResult is a single sample value.
type PixelResult struct {
	Row   int `json:"row"`
	Col   int `json:"col"`
	Value int `json:"value"`
}

func (s *Server) handlePixel(args json.RawMessage) (interface{}, error) {
	var a pixelArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	v, err := g.Sample(a.Row, a.Col)
	if err != nil {
		return nil, err
	}
	return PixelResult{Row: a.Row, Col: a.Col, Value: v}, nil
}

// === Geometry Handlers ===

type cropArgs struct {
	gridRef
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

func (s *Server) handleCrop(args json.RawMessage) (interface{}, error) {
	var a cropArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Crop(g, a.Top, a.Left, a.Bottom, a.Right)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type cropRegionArgs struct {
	gridRef
	Region string `json:"region"`
}

func (s *Server) handleCropRegion(args json.RawMessage) (interface{}, error) {
	var a cropRegionArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	out, err := imaging.CropRegion(g, a.Region)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type scaleArgs struct {
	gridRef
	Factor int `json:"factor"`
}

func (s *Server) handleScale(args json.RawMessage, op func(*imaging.Grid, int) (*imaging.Grid, error)) (interface{}, error) {
	var a scaleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Factor == 0 {
		a.Factor = 2
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	out, err := op(g, a.Factor)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type mirrorArgs struct {
	gridRef
	Axis string `json:"axis"`
}

func (s *Server) handleMirror(args json.RawMessage) (interface{}, error) {
	var a mirrorArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	var horizontal bool
	switch strings.ToLower(a.Axis) {
	case "", "horizontal":
		horizontal = true
	case "vertical":
	default:
		return nil, fmt.Errorf("axis must be horizontal or vertical, got %q: %w", a.Axis, imaging.ErrInvalidParameter)
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	return s.store(imaging.Mirror(g, horizontal)), nil
}

type shiftArgs struct {
	gridRef
	Delta int `json:"delta"`
}

func (s *Server) handleShift(args json.RawMessage) (interface{}, error) {
	var a shiftArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	out, err := imaging.Shift(g, a.Delta)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type rotateArgs struct {
	gridRef
	Degrees int `json:"degrees"`
}

func (s *Server) handleRotate(args json.RawMessage) (interface{}, error) {
	var a rotateArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	return s.store(imaging.Rotate(g, a.Degrees)), nil
}

// === Sample Arithmetic and Filter Handlers ===

func (s *Server) handleUnary(args json.RawMessage, op func(*imaging.Grid) *imaging.Grid) (interface{}, error) {
	var a gridRef
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	g, err := s.resolve(a)
	if err != nil {
		return nil, err
	}
	return s.store(op(g)), nil
}

type combineArgs struct {
	AHandle string `json:"a_handle"`
	APath   string `json:"a_path"`
	BHandle string `json:"b_handle"`
	BPath   string `json:"b_path"`
	Mode    string `json:"mode"`
}

func (s *Server) handleCombine(args json.RawMessage) (interface{}, error) {
	var a combineArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}

	var op func(a, b *imaging.Grid) (*imaging.Grid, error)
	switch a.Mode {
	case "", "average":
		op = imaging.CombineAverage
	case "difference":
		op = imaging.CombineDifference
	default:
		return nil, fmt.Errorf("mode must be average or difference, got %q: %w", a.Mode, imaging.ErrInvalidParameter)
	}

	first, err := s.resolve(gridRef{Handle: a.AHandle, Path: a.APath})
	if err != nil {
		return nil, fmt.Errorf("first grid: %w", err)
	}
	second, err := s.resolve(gridRef{Handle: a.BHandle, Path: a.BPath})
	if err != nil {
		return nil, fmt.Errorf("second grid: %w", err)
	}
	out, err := op(first, second)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type stretchArgs struct {
	gridRef
	Cutoff *float64 `json:"cutoff"`
}

func (s *Server) handleStretch(args json.RawMessage) (interface{}, error) {
	var a stretchArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	cutoff := imaging.DefaultStretchCutoff
	if a.Cutoff != nil {
		cutoff = *a.Cutoff
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	out, err := imaging.StretchContrast(g, cutoff)
	if err != nil {
		return nil, err
	}
	return s.store(out), nil
}

type thresholdArgs struct {
	gridRef
	Threshold *int `json:"threshold"`
}

func (s *Server) handleThreshold(args json.RawMessage) (interface{}, error) {
	var a thresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	t := imaging.DefaultEnergyThreshold
	if a.Threshold != nil {
		t = *a.Threshold
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	return s.store(imaging.Threshold(g, t)), nil
}

type regionsArgs struct {
	gridRef
	MinArea int `json:"min_area"`
}

// RegionsResult lists the connected nonzero regions of a raster.
type RegionsResult struct {
	Count   int              `json:"count"`
	Regions []imaging.Region `json:"regions"`
}

func (s *Server) handleRegions(args json.RawMessage) (interface{}, error) {
	var a regionsArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.MinArea < 0 {
		return nil, fmt.Errorf("min_area must be non-negative, got %d: %w", a.MinArea, imaging.ErrInvalidParameter)
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	regions := imaging.FindRegions(g, max(a.MinArea, 1))
	return RegionsResult{Count: len(regions), Regions: regions}, nil
}

// === Output Handlers ===

type saveArgs struct {
	gridRef
	Output string `json:"output"`
}

// SaveResult reports a written file.
type SaveResult struct {
	Output string `json:"output"`
	Format string `json:"format"`
	imaging.GridInfo
}

func (s *Server) handleSave(args json.RawMessage) (interface{}, error) {
	var a saveArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Output == "" {
		return nil, fmt.Errorf("output is required: %w", imaging.ErrInvalidParameter)
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(a.Output))
	format := strings.TrimPrefix(ext, ".")
	if ext == ".pgm" {
		err = netpbm.WriteGray(a.Output, g)
	} else {
		err = imaging.Export(g, a.Output)
	}
	if err != nil {
		return nil, err
	}
	// A grid cached under this path is now stale.
	s.cache.Evict(a.Output)
	return SaveResult{Output: a.Output, Format: format, GridInfo: g.Info()}, nil
}

type previewArgs struct {
	gridRef
	Scale float64 `json:"scale"`
}

func (s *Server) handlePreview(args json.RawMessage) (interface{}, error) {
	var a previewArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if a.Scale == 0 {
		a.Scale = 1.0
	}
	g, err := s.resolve(a.gridRef)
	if err != nil {
		return nil, err
	}
	return imaging.Preview(g, a.Scale)
}

// === Color Handlers ===

type colorSampleArgs struct {
	Path   string `json:"path"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	SwapRB *bool  `json:"swap_rb"`
}

// ColorSampleResult describes one color sample.
type ColorSampleResult struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	R     uint8  `json:"r"`
	G     uint8  `json:"g"`
	B     uint8  `json:"b"`
	A     uint8  `json:"a"`
	Hue   uint8  `json:"hue"`
	Sat   uint8  `json:"sat"`
	Value uint8  `json:"value"`
	Hex   string `json:"hex"`
}

func (s *Server) swap(flag *bool) bool {
	if flag != nil {
		return *flag
	}
	return s.swapRB
}

func (s *Server) handleColorSample(args json.RawMessage) (interface{}, error) {
	var a colorSampleArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	img, err := netpbm.ReadColor(a.Path, s.swap(a.SwapRB))
	if err != nil {
		return nil, err
	}
	c, err := img.SampleAt(a.X, a.Y)
	if err != nil {
		return nil, err
	}
	return ColorSampleResult{
		X: a.X, Y: a.Y,
		R: c.R(), G: c.G(), B: c.B(), A: c.A(),
		Hue: c.Hue(), Sat: c.Sat(), Value: c.Value(),
		Hex: c.Hex(),
	}, nil
}

type colorSegmentArgs struct {
	Path   string `json:"path"`
	SwapRB *bool  `json:"swap_rb"`
	MinSat *int   `json:"min_sat"`
	MinVal *int   `json:"min_val"`
}

// SegmentResult is a dominant-hue segmentation with its stored mask.
type SegmentResult struct {
	Histogram [chroma.HueBins]int `json:"histogram"`
	Bin       int                 `json:"dominant_bin"`
	Coverage  int                 `json:"coverage"`
	Mask      GridResult          `json:"mask"`
}

func (s *Server) handleColorSegment(args json.RawMessage) (interface{}, error) {
	var a colorSegmentArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	minSat, minVal := chroma.DefaultMinSat, chroma.DefaultMinVal
	if a.MinSat != nil {
		minSat = *a.MinSat
	}
	if a.MinVal != nil {
		minVal = *a.MinVal
	}
	img, err := netpbm.ReadColor(a.Path, s.swap(a.SwapRB))
	if err != nil {
		return nil, err
	}
	seg := chroma.SegmentDominant(img, minSat, minVal)
	return SegmentResult{
		Histogram: seg.Histogram,
		Bin:       seg.Bin,
		Coverage:  seg.Coverage,
		Mask:      s.store(seg.Mask),
	}, nil
}
