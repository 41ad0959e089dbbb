package game

// Entry is one resolved action. To == 0 marks a supply of one die to From.
type Entry struct {
	From    int  `json:"from" db:"from_area"`
	To      int  `json:"to" db:"to_area"`
	Success bool `json:"success" db:"success"`
}

// IsSupply reports whether the entry is a reinforcement rather than an attack.
func (e Entry) IsSupply() bool {
	return e.To == 0
}

// HistoryLog is the append-only record of a game session.
type HistoryLog struct {
	entries []Entry
}

// NewHistoryLog returns an empty log.
func NewHistoryLog() *HistoryLog {
	return &HistoryLog{}
}

// Append records one resolved action.
func (h *HistoryLog) Append(from, to int, success bool) {
	h.entries = append(h.entries, Entry{From: from, To: to, Success: success})
}

// Len is the number of recorded entries.
func (h *HistoryLog) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the log, oldest first.
func (h *HistoryLog) Entries() []Entry {
	out := make([]Entry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Prefix returns a copy of the first n entries.
func (h *HistoryLog) Prefix(n int) []Entry {
	if n > len(h.entries) {
		n = len(h.entries)
	}
	if n < 0 {
		n = 0
	}
	out := make([]Entry, n)
	copy(out, h.entries[:n])
	return out
}
