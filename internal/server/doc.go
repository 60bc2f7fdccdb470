// Package server implements the MCP (Model Context Protocol) server for raster tools.
//
// This package provides a JSON-RPC 2.0 server that exposes the gray raster
// geometry, filter and codec operations, plus P6 color sampling, as MCP
// tools.
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
// # Handles
//
// Grid tools take their input either as a path or as a handle returned by
// an earlier call. Every tool that produces a grid stores it under a new
// handle and returns the handle with the grid's rows, columns, maximum
// sample and mean, so operations chain without touching the disk:
//
//	raster_load(path) -> raster_shrink(handle) -> raster_rotate(handle) -> raster_save(handle, output)
//
// Files loaded by path are cached by path. Both caches live as long as the
// server process.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with:
//   - code: -32000 (tool execution failure) or standard JSON-RPC codes
//   - message: Human-readable error description
//   - data: The Go error string, including the file path for codec errors
//
// # Usage
//
//	srv := server.New(server.WithLogger(logger))
//	if err := srv.Run(ctx); err != nil {
//	    logger.Error("server stopped", "error", err)
//	}
package server
