package service

// OperationalLog is the durable event trail of the service, separate from the
// process logger: records survive restarts and are rotated by the maintenance
// worker. Appending is best-effort for callers; a failed append is never worth
// failing the operation that produced it.
type OperationalLog interface {
	// Message records a notable event.
	Message(message string, data any) error

	// Error records an operational error, typically a best-effort step failing
	// downstream of a committed success.
	Error(message string, data any) error
}
