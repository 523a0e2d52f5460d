// Package msgstore persists which status message belongs to which channel.
//
// The state is a JSON object mapping channel keys ("chat" or "chat:thread") to
// message ids. It is read once at startup and written once per reconciliation
// cycle, either to a local file (FileBackend) or to an S3/MinIO object
// (S3Backend). Missing or corrupt state is not an error: the bot starts with an
// empty map and sends fresh status messages.
package msgstore
