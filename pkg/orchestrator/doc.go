// Package orchestrator wires the definition store -> form builder ->
// controller -> renderer pipeline behind a single entry point, for callers
// that handle one request at a time (HTTP handlers, the validate command).
package orchestrator
