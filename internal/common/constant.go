package common

// RequestIDHeaderName is the gRPC metadata / HTTP header key carrying the
// caller-generated request id.
const RequestIDHeaderName = "x-request-id"

// DefaultBcryptCost is the work factor applied when hashing account secrets.
const DefaultBcryptCost = 10
