package alerts

import "sync"

// Log is the in-memory alert history, newest first.
//
// The log is bounded; once maxEntries is reached the oldest entries fall off.
// History does not survive a daemon restart, matching the backend-less nature
// of the alert pipeline.
//
// Thread Safety: all methods are safe for concurrent use.
type Log struct {
	mu      sync.RWMutex
	entries []Entry
	max     int
}

// defaultMaxEntries bounds the in-memory history.
const defaultMaxEntries = 500

// NewLog creates an empty alert log. maxEntries <= 0 selects the default.
func NewLog(maxEntries int) *Log {
	if maxEntries <= 0 {
		maxEntries = defaultMaxEntries
	}
	return &Log{max: maxEntries}
}

// Append adds an entry at the head of the log.
func (l *Log) Append(entry Entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append([]Entry{entry}, l.entries...)
	if len(l.entries) > l.max {
		l.entries = l.entries[:l.max]
	}
}

// Entries returns a copy of the log, newest first.
func (l *Log) Entries() []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries in the log.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

// Clear discards the whole history.
func (l *Log) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
}
