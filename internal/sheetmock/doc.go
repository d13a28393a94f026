// Package sheetmock is a local stand-in for the spreadsheet web app, for
// development without network access to the real sheet.
//
// It serves the same single-URL protocol as the sheet package expects:
// GET returns {"post": [...], "comment": [...]}, POST takes a form field
// named "payload" and answers {"success": bool, "message": string}.
// Business failures such as a wrong password are success=false with HTTP
// 200; only malformed requests and storage failures use error statuses.
//
// Rows live in SQLite. Post ids are fixed-width UTC timestamps, the same
// role the timestamp column plays in the real sheet.
package sheetmock
