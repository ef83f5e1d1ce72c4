package search

// History is the list of confirmed queries, browsable with up and down
// while the prompt is open.
type History struct {
	entries []string
	pos     int
	draft   string
}

// Add records a confirmed query. Empty queries and repeats of the newest
// entry are dropped. Browsing restarts from the end.
func (h *History) Add(q string) {
	if q != "" && (len(h.entries) == 0 || h.entries[len(h.entries)-1] != q) {
		h.entries = append(h.entries, q)
	}
	h.Reset()
}

// Reset ends browsing.
func (h *History) Reset() {
	h.pos = len(h.entries)
	h.draft = ""
}

// Prev steps to the older entry. current is the prompt text, kept as the
// draft when browsing starts.
func (h *History) Prev(current string) (string, bool) {
	if h.pos == 0 {
		return "", false
	}
	if h.pos == len(h.entries) {
		h.draft = current
	}
	h.pos--
	return h.entries[h.pos], true
}

// Next steps to the newer entry, ending on the saved draft.
func (h *History) Next() (string, bool) {
	if h.pos >= len(h.entries) {
		return "", false
	}
	h.pos++
	if h.pos == len(h.entries) {
		return h.draft, true
	}
	return h.entries[h.pos], true
}

// Entries returns the recorded queries, oldest first.
func (h *History) Entries() []string {
	return h.entries
}
