package alerts

import "time"

// Kind classifies an alert log entry.
type Kind string

// Alert kinds.
const (
	// KindConnection marks plain connectivity chatter.
	KindConnection Kind = "connection"

	// KindWarning marks a vital sign outside its safe range.
	KindWarning Kind = "warning"

	// KindSuccess marks a positive status change, e.g. device reconnect.
	KindSuccess Kind = "success"

	// KindError marks a failure, e.g. device connection lost.
	KindError Kind = "error"
)

// Notifiable reports whether entries of this kind are escalated to a device
// notification. Connectivity and success chatter stay in the log only.
func (k Kind) Notifiable() bool {
	return k == KindWarning || k == KindError
}

// Entry is one row of the alert log.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
