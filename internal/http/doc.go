// Package http provides the HTTP surface of the schedule fill service.
//
// The router exposes the following endpoints:
//   - POST /api/fill: runs one generate-from-template pass for an employee's
//     contract and month, exchanging the fillRequest/FillResult payloads
//     defined in fill_handler.go. The response status mirrors the run's
//     terminal state: 200 completed, 207 partial, 409 blocked, 422 invalid
//     input, 404 unknown contract, 502 store failure.
//   - GET /healthz: liveness probe.
//
// Request DTOs live alongside their handlers so tests and documentation share
// the same ground truth.
package http
