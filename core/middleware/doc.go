// Package middleware contains HTTP middleware for the status server.
//
// # Components
//
//   - auth: API key validation protecting every route except the docs.
//   - rayid: a unique request id (ray id) for every incoming request, stored in
//     the context locals and echoed in the X-Ray-ID response header.
package middleware
