package ollama

import "strings"

// deltaTracker converts Ollama's cumulative message content into
// incremental deltas. Each chat-stream line carries the FULL text
// generated so far, so the tracker remembers the previous full string
// and emits only the new suffix.
//
// A payload that does not extend the previous one (the server restarted
// the message, or the stream is actually incremental) is emitted whole
// and becomes the new reference point.
type deltaTracker struct {
	last string
}

// delta returns the increment between the previous full string and the
// new one, and advances the tracker.
func (d *deltaTracker) delta(full string) string {
	if strings.HasPrefix(full, d.last) {
		out := full[len(d.last):]
		d.last = full
		return out
	}
	d.last = full
	return full
}
