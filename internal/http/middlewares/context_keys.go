package middlewares

// gin context keys; untyped strings because gin's context is string-keyed.
const (
	CtxRequestID = "request_id"
	CtxSnapshot  = "session.snapshot"
)
