package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/ironsheep/threshold-mcp/internal/imaging"
	"github.com/ironsheep/threshold-mcp/internal/threshold"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "image_load", "image_threshold").
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
		s.log.Error("server", err, map[string]interface{}{"tool": params.Name})
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
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies server defaults for optional parameters
//  3. Loads the image from cache and reduces it to intensity
//  4. Calls into the threshold package
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Basic Image Information
	case "image_load":
		return s.handleImageLoad(args)
	case "image_dimensions":
		return s.handleImageDimensions(args)

	// Intensity Analysis
	case "image_histogram":
		return s.handleImageHistogram(args)
	case "image_threshold":
		return s.handleImageThreshold(args)
	case "image_binarize":
		return s.handleImageBinarize(args)

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

// === Basic Image Information Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

func (s *Server) handleImageDimensions(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	return imaging.GetDimensions(s.cache, a.Path)
}

// === Intensity Analysis Handlers ===

// intensityArgs are shared by every tool that works on the gray image.
type intensityArgs struct {
	Path       string          `json:"path"`
	Region     *imaging.Region `json:"region"`
	GrayMethod string          `json:"gray_method"`
}

func (s *Server) loadGray(a intensityArgs) (*image.Gray, error) {
	if a.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	method := s.cfg.GrayMethod
	if a.GrayMethod != "" {
		m, err := imaging.ParseGrayMethod(a.GrayMethod)
		if err != nil {
			return nil, err
		}
		method = m
	}
	return s.cache.LoadGray(a.Path, method, a.Region)
}

// solveArgs are the solver overrides accepted by image_threshold and image_binarize.
type solveArgs struct {
	Strategy      string `json:"strategy"`
	MaxIterations *int   `json:"max_iterations"`
}

func (s *Server) solveOptions(a solveArgs) (threshold.Options, error) {
	opts := s.cfg.SolveOptions()
	if a.MaxIterations != nil {
		if *a.MaxIterations < 1 {
			return opts, fmt.Errorf("max_iterations must be at least 1, got %d", *a.MaxIterations)
		}
		opts.MaxIterations = *a.MaxIterations
	}
	return opts, nil
}

func (s *Server) strategy(name string) (threshold.Strategy, error) {
	if name == "" {
		return s.cfg.Strategy, nil
	}
	return threshold.ParseStrategy(name)
}

// HistogramResult is returned by image_histogram. Threshold is solved from
// the counts with the cumulative strategy.
type HistogramResult struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Counts    []int64 `json:"counts"`
	Total     int64   `json:"total"`
	Mean      float64 `json:"mean"`
	Threshold int      `json:"threshold"`
	Converged bool     `json:"converged"`
	Warnings  []string `json:"warnings,omitempty"`

	// Chart is a PNG plot of Counts with the threshold marked, when requested.
	Chart *imaging.EncodedImage `json:"chart,omitempty"`
}

type imageHistogramArgs struct {
	intensityArgs
	Chart bool `json:"chart"`
}

func (s *Server) handleImageHistogram(args json.RawMessage) (interface{}, error) {
	var a imageHistogramArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	gray, err := s.loadGray(a.intensityArgs)
	if err != nil {
		return nil, err
	}
	h, err := threshold.BuildHistogram(gray)
	if err != nil {
		return nil, err
	}
	res, err := threshold.SolveHistogram(h, s.cfg.SolveOptions())
	if err != nil && !errors.Is(err, threshold.ErrNonConvergence) {
		return nil, err
	}
	result := &HistogramResult{
		Width:     gray.Bounds().Dx(),
		Height:    gray.Bounds().Dy(),
		Counts:    h[:],
		Total:     h.Total(),
		Mean:      h.Mean(),
		Threshold: res.Threshold,
		Converged: res.Converged,
		Warnings:  solveWarnings(res, err),
	}
	if len(result.Warnings) > 0 {
		s.log.Warning("histogram", "threshold solved with warnings", map[string]interface{}{
			"path":      a.Path,
			"threshold": res.Threshold,
			"warnings":  result.Warnings,
		})
	}
	if a.Chart {
		title := fmt.Sprintf("%s (threshold %d)", filepath.Base(a.Path), res.Threshold)
		if result.Chart, err = imaging.EncodeHistogramChart(result.Counts, res.Threshold, title); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// ThresholdReport is one solve as reported by image_threshold.
type ThresholdReport struct {
	threshold.Result
	ElapsedMicros int64    `json:"elapsed_us"`
	Warnings      []string `json:"warnings,omitempty"`
}

// ThresholdComparison is returned by image_threshold with strategy "all".
type ThresholdComparison struct {
	Threshold int               `json:"threshold"`
	Agree     bool              `json:"agree"`
	Results   []ThresholdReport `json:"results"`
}

type imageThresholdArgs struct {
	intensityArgs
	solveArgs
}

func (s *Server) handleImageThreshold(args json.RawMessage) (interface{}, error) {
	var a imageThresholdArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	opts, err := s.solveOptions(a.solveArgs)
	if err != nil {
		return nil, err
	}

	all := isAllStrategies(a.Strategy)
	strategies := threshold.Strategies
	if !all {
		st, err := s.strategy(a.Strategy)
		if err != nil {
			return nil, err
		}
		strategies = []threshold.Strategy{st}
	}

	gray, err := s.loadGray(a.intensityArgs)
	if err != nil {
		return nil, err
	}

	reports := make([]ThresholdReport, 0, len(strategies))
	for _, st := range strategies {
		report, err := s.solve(a.Path, gray, st, opts)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if !all {
		return &reports[0], nil
	}

	cmp := &ThresholdComparison{
		Threshold: reports[0].Threshold,
		Agree:     true,
		Results:   reports,
	}
	for _, r := range reports[1:] {
		if r.Threshold != cmp.Threshold {
			cmp.Agree = false
		}
	}
	if !cmp.Agree {
		s.log.Warning("server", "strategies disagree", map[string]interface{}{"path": a.Path})
	}
	return cmp, nil
}

// solve runs one strategy. Non-convergence is downgraded to a warning on the
// report; every other solver error is returned.
func (s *Server) solve(path string, gray *image.Gray, st threshold.Strategy, opts threshold.Options) (ThresholdReport, error) {
	start := time.Now()
	res, err := threshold.Solve(gray, st, opts)
	report := ThresholdReport{Result: res, ElapsedMicros: time.Since(start).Microseconds()}

	fields := map[string]interface{}{
		"path":       path,
		"strategy":   st.String(),
		"threshold":  res.Threshold,
		"iterations": res.Iterations,
		"elapsed_us": report.ElapsedMicros,
	}
	switch {
	case errors.Is(err, threshold.ErrNonConvergence):
		s.log.Warning("threshold", err.Error(), fields)
	case err != nil:
		return ThresholdReport{}, err
	default:
		s.log.Info("threshold", "solved", fields)
	}
	report.Warnings = solveWarnings(res, err)
	return report, nil
}

// solveWarnings describes a usable but imperfect solve: non-convergence and
// steps where one group was empty.
func solveWarnings(res threshold.Result, err error) []string {
	var warnings []string
	if errors.Is(err, threshold.ErrNonConvergence) {
		warnings = append(warnings, err.Error())
	}
	if res.DegenerateSteps > 0 {
		warnings = append(warnings,
			fmt.Sprintf("%d iteration(s) left one group empty; the overall mean was used", res.DegenerateSteps))
	}
	return warnings
}

// isAllStrategies reports whether name asks for every strategy.
func isAllStrategies(name string) bool {
	return strings.ToLower(strings.TrimSpace(name)) == "all"
}

// BinarizeResult is returned by image_binarize.
type BinarizeResult struct {
	Threshold       int                   `json:"threshold"`
	Computed        bool                  `json:"computed"`
	Solve           *ThresholdReport      `json:"solve,omitempty"`
	BackgroundCount int64                 `json:"background_pixels"`
	ForegroundCount int64                 `json:"foreground_pixels"`
	OutputPath      string                `json:"output_path,omitempty"`
	Image           *imaging.EncodedImage `json:"image,omitempty"`
}

type imageBinarizeArgs struct {
	intensityArgs
	solveArgs
	Threshold  *int   `json:"threshold"`
	OutputPath string `json:"output_path"`
}

func (s *Server) handleImageBinarize(args json.RawMessage) (interface{}, error) {
	var a imageBinarizeArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return nil, err
	}
	if isAllStrategies(a.Strategy) {
		return nil, fmt.Errorf("strategy \"all\" is only valid for image_threshold")
	}
	opts, err := s.solveOptions(a.solveArgs)
	if err != nil {
		return nil, err
	}
	st, err := s.strategy(a.Strategy)
	if err != nil {
		return nil, err
	}

	gray, err := s.loadGray(a.intensityArgs)
	if err != nil {
		return nil, err
	}

	result := &BinarizeResult{}
	if a.Threshold != nil {
		result.Threshold = *a.Threshold
	} else {
		report, err := s.solve(a.Path, gray, st, opts)
		if err != nil {
			return nil, err
		}
		result.Threshold = report.Threshold
		result.Computed = true
		result.Solve = &report
	}

	bin, err := threshold.Binarize(gray, result.Threshold)
	if err != nil {
		return nil, err
	}

	h, err := threshold.BuildHistogram(gray)
	if err != nil {
		return nil, err
	}
	result.BackgroundCount, result.ForegroundCount = h.Partition(result.Threshold)

	if a.OutputPath != "" {
		if err := imaging.Save(a.OutputPath, bin); err != nil {
			return nil, err
		}
		result.OutputPath = a.OutputPath
		s.log.Info("binarize", "saved", map[string]interface{}{"path": a.OutputPath, "threshold": result.Threshold})
		return result, nil
	}

	if result.Image, err = imaging.EncodeBase64PNG(bin); err != nil {
		return nil, err
	}
	return result, nil
}
