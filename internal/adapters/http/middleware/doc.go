// Package middleware provides the inbound request pipeline of the escrow API.
//
// Global middleware runs in this order:
//
//	Recovery → RequestID → CorrelationID → Caller → OpenTelemetry → Logging → Timeout → router
//
// Idempotency wraps only the POST routes, after Caller has established the
// identity its keys are scoped by. It runs inside Timeout, so a settlement
// that outlives the deadline still records its real outcome for the retry.
package middleware
