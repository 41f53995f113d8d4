// Package bot is the command-dispatch layer between inbound chat requests
// and the dictionary store.
//
// A Registry maps command names (and aliases) to handlers. Dispatch stamps
// each request with a UUIDv7 invocation ID and a logical sequence number,
// records it in the journal, runs the handler, and records the outcome.
// Handlers are thin: they translate a request into store operations and
// format a human-readable reply.
//
// The package also keeps the reboot-notification bookkeeping: channels
// that asked to hear about the next restart are persisted to a JSON
// sidecar and drained into announcements on startup.
package bot
