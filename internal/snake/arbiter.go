package snake

// Arbiter collapses direction intents from any number of sources into a single
// pending vector that the engine consumes once per step.
//
// The anti-reversal check runs against the committed vector (the one applied on
// the last completed step), never against the pending one, so a burst of
// proposals between two steps cannot chain into a reversal.
//
// Arbiter is not safe for concurrent use; the owner serialises access.
type Arbiter struct {
	committed  Vector
	pending    Vector
	hasPending bool
}

// Propose offers a direction. It is accepted, replacing any earlier pending
// proposal, unless it is Idle, not a legal vector, or the inverse of the
// committed direction. Rejected proposals are dropped.
func (a *Arbiter) Propose(candidate Vector) bool {
	if candidate.IsZero() || !candidate.Valid() {
		return false
	}
	if candidate.IsInverseOf(a.committed) {
		return false
	}
	a.pending = candidate
	a.hasPending = true
	return true
}

// Commit promotes the pending proposal, if any, and returns the vector to apply
// on this step. Without a proposal the previous committed vector repeats.
func (a *Arbiter) Commit() Vector {
	if a.hasPending {
		a.committed = a.pending
		a.hasPending = false
	}
	return a.committed
}

// Committed returns the vector applied on the last step.
func (a *Arbiter) Committed() Vector {
	return a.committed
}

// Pending returns the proposal waiting for the next step.
func (a *Arbiter) Pending() (Vector, bool) {
	return a.pending, a.hasPending
}

// Reset returns the arbiter to the idle state.
func (a *Arbiter) Reset() {
	*a = Arbiter{}
}

// SwipeVector turns a drag gesture into a direction. The dominant axis wins and
// its magnitude must exceed threshold; otherwise ok is false.
func SwipeVector(dx, dy, threshold float64) (v Vector, ok bool) {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}

	if ax > ay {
		if ax <= threshold {
			return Idle, false
		}
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}

	if ay <= threshold {
		return Idle, false
	}
	if dy > 0 {
		return Down, true
	}
	return Up, true
}
