// Package sheet provides the HTTP client for the spreadsheet-backed board endpoint.
//
// # Overview
//
// All board data lives in a spreadsheet published as a web app. The web app
// exposes exactly one URL: a GET returns every post and comment, a POST with a
// form field named "payload" performs one write. This package is the single
// choke point for both calls and the only place that knows the sheet's column
// layout.
//
// # Architecture
//
//   - client.go: Gateway interface, HTTP client, request/response handling
//   - payload.go: typed write payloads
//   - types.go: wire records and the structured Post/Comment types
//   - codec.go: packing of location and price kind into legacy text columns
//   - errors.go: transport, rejection and validation error kinds
//
// # Wire Protocol
//
// Read:
//
//	GET <endpoint>
//	→ {"post": [PostRecord...], "comment": [CommentRecord...]}
//
// Missing keys are treated as empty lists.
//
// Write:
//
//	POST <endpoint>
//	Content-Type: application/x-www-form-urlencoded
//	payload={"action_type": "new_post", ...}
//	→ {"success": true|false, "message": "..."}
//
// Recognised actions are new_post, update_post, update_status, delete_post,
// new_comment and verify_password.
//
// # Legacy Packing
//
// The sheet has no location or price-kind columns. Location travels as a
// leading "[LOCATION: ...]" line of the memo, and per-person prices as a
// "[1인당]" title prefix. EncodeBody/DecodeBody and EncodeTitle/DecodeTitle are
// the only functions that read or write these markers; everything above this
// package works with Post.Location and Post.PriceKind.
//
// # Error Handling
//
//   - ErrTransport: network failure, HTTP status >= 400 or an undecodable body
//   - *RejectionError: success=false from the sheet, message shown verbatim
//   - *ValidationError: a required field was missing, raised by callers before
//     any request is made
//
// A success=false Ack is not an error at this layer; the caller decides how to
// surface it.
package sheet
