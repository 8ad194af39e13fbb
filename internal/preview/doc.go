// Package preview serves a live view of the counter application.
//
// The runtime and its document live on a single go-eventloop Loop. HTTP
// and WebSocket handlers never touch them directly: every read or event
// is submitted to the loop with Server.Do and waits for completion.
//
// Routes:
//
//	GET /          the current document with the live client script
//	GET /ws        snapshots pushed after every event; events received as JSON
//	GET /metrics   runtime metrics, when enabled
//	GET /healthz   liveness
package preview
