// Package server implements the MCP (Model Context Protocol) server for
// global intensity thresholding.
//
// This package provides a JSON-RPC 2.0 server that exposes the threshold
// package through the MCP protocol, so that an MCP client can inspect an
// image's intensity distribution, compute its global threshold and binarize it.
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
// Basic Image Information:
//   - image_load: Load image and get metadata
//   - image_dimensions: Get width and height
//
// Intensity Analysis:
//   - image_histogram: 256-level intensity histogram, optionally charted
//   - image_threshold: Iterative global threshold, per strategy or all of them
//   - image_binarize: Map pixels to 0/255 and save or return the result
//
// Color images are reduced to intensity with the configured gray method
// (luma or CIE lightness). Every intensity tool accepts an optional region.
//
// # Image Caching
//
// The server maintains an in-memory cache of decoded images keyed by path.
// Gray conversions are recomputed per call so that different gray methods and
// regions never share state.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: Additional error details (typically the Go error string)
//
// A solve that hits the iteration cap is not an error at this layer: the last
// threshold is returned with a warning and converged set to false.
//
// # Usage
//
//	cfg, _ := config.Load()
//	srv := server.NewWithConfig(cfg, logger.NewFromConfig(os.Stderr, cfg.LogLevel, cfg.LogFormat))
//	if err := srv.Run(); err != nil {
//	    log.Fatal(err)
//	}
package server
