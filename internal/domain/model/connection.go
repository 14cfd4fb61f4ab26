package model

// ConnectionState records whether the remote service has been tried and
// whether the most recent settled attempt succeeded. The zero value is the
// state at process start. It is never persisted.
type ConnectionState struct {
	Attempted bool
	Reachable bool
}

// CircuitOpen reports whether calls must short-circuit without network I/O.
func (s ConnectionState) CircuitOpen() bool {
	return s.Attempted && !s.Reachable
}
