// Package status serves the HTTP status endpoint of the version server.
//
// GET /version returns the loaded version as JSON and GET /healthz reports liveness.
package status
