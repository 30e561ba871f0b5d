// Package client contains the client side of technotes.
//
// # Overview
//
// The package provides:
//  1. A transport-agnostic API contract (see the Client interface) covering
//     Ping and the list/get/create/update/delete operations on accounts and
//     notes.
//  2. A concrete gRPC implementation (see GRPCClient) that manages a
//     connection, tags every call with a request id via an interceptor and
//     maps gRPC status codes to sentinel errors.
//
// # Error Handling
//
// Server outcomes are exposed as sentinel errors that callers can match with
// errors.Is: ErrInvalidInput, ErrNotFound, ErrConflict, ErrUnavailable. The
// server's message is kept in the error text.
//
// Concurrency & Contexts
//
// GRPCClient is safe for concurrent use. All operations accept
// context.Context and honor cancellation/timeouts.
package client
