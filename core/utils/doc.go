// Package utils provides loose type conversion helpers for decoded JSON data,
// such as persisted message ids and name data documents.
package utils
