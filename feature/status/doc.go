// Package status exposes the bot's state over HTTP.
//
// Routes:
//
//	GET  /health          liveness
//	GET  /status          report of the latest reconciliation cycle
//	GET  /messages        tracked status message ids
//	GET  /names           loaded name data
//	POST /names/refresh   reload name data now
//
// All handlers only read shared state, except the name refresh which goes
// through the resolver's single-flight refresh.
package status
