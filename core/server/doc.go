// Package server holds the status HTTP server configuration.
//
// The status server is optional. When enabled it exposes the last reconciliation
// report, the tracked message ids and a name-data refresh trigger (see feature/status).
//
// # Configuration
//
// The Config struct defines whether the server runs, its port and the API key that
// protects every route.
package server
