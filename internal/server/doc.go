// Package server implements the MCP (Model Context Protocol) server for the
// Sims 4 screenshot reader and family tree.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses and notifications on stdout
//
// Supported MCP methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// A tools/call carrying params._meta.progressToken receives
// notifications/progress messages (0 to 100) while OCR runs.
//
// # Available Tools
//
// Screenshot Reading:
//   - sim_scan_screenshot: OCR a Simology panel and match it against the vocabulary
//   - sim_parse_text: Match already recognised text
//
// Image and OCR:
//   - ocr_text: Text with word or block positions
//   - image_load: Size, format, brightness and panel location
//
// Vocabulary:
//   - vocabulary_list: Picker labels in Swedish order
//   - vocabulary_translate: English to Swedish and back
//
// Family Tree:
//   - family_add_world, family_list_worlds
//   - family_add_house, family_list_houses
//   - family_add_sim, family_list_sims, family_sim_overview
//   - family_update_sim, family_delete_sim, family_delete_house
//   - family_add_relationship, family_delete_relationship
//   - family_add_diary_entry, family_delete_diary_entry
//
// # Image Caching
//
// Images are cached by path and reused across tool calls for the lifetime of
// the server process.
//
// # Error Handling
//
//   - -32601: unknown method
//   - -32602: malformed params, or arguments that fail the tool's input schema
//   - -32000: the tool ran and failed; data holds the Go error string
//
// # Usage
//
//	srv := server.New(
//	    server.WithEngine(engine),
//	    server.WithTree(family.NewTree(store)),
//	    server.WithLogger(logger),
//	)
//	if err := srv.Run(ctx); err != nil {
//	    log.Fatal(err)
//	}
package server
