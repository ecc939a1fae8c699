package anim

// Immediate completes every effect as soon as it is played and records it.
type Immediate struct {
	Played []Effect
}

// Play records e and calls done.
func (im *Immediate) Play(e Effect, done func()) {
	im.Played = append(im.Played, e)
	done()
}

type pending struct {
	effect Effect
	done   func()
}

// Queue holds played effects until the caller steps them, one per Step.
// A front end calls Step from its frame tick so that effects are visible
// for at least one frame each.
type Queue struct {
	pending []pending
}

// Play queues e.
func (q *Queue) Play(e Effect, done func()) {
	q.pending = append(q.pending, pending{effect: e, done: done})
}

// Len returns the number of effects waiting to complete.
func (q *Queue) Len() int { return len(q.pending) }

// Showing returns the effects currently on screen.
func (q *Queue) Showing() []Effect {
	out := make([]Effect, len(q.pending))
	for i, p := range q.pending {
		out[i] = p.effect
	}
	return out
}

// Step completes every effect queued before the call. Completions may queue
// further effects; those wait for the next Step. It reports whether anything
// completed.
func (q *Queue) Step() bool {
	if len(q.pending) == 0 {
		return false
	}
	batch := q.pending
	q.pending = nil
	for _, p := range batch {
		p.done()
	}
	return true
}

// Drain steps until nothing is queued or limit steps have run.
func (q *Queue) Drain(limit int) {
	for i := 0; i < limit && q.Step(); i++ {
	}
}

// Clear drops every queued effect without completing it.
func (q *Queue) Clear() { q.pending = nil }
