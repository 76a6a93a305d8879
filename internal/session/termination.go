package session

// Snapshot is the session state a termination policy decides on.
type Snapshot struct {
	Rounds int
	Chips  int
}

// TerminationPolicy decides whether another round is played.
type TerminationPolicy interface {
	Continue(s Snapshot) bool
}

// TerminationFunc adapts a function to TerminationPolicy.
type TerminationFunc func(s Snapshot) bool

// Continue implements TerminationPolicy.
func (f TerminationFunc) Continue(s Snapshot) bool {
	return f(s)
}

// RoundLimit stops after n rounds.
func RoundLimit(n int) TerminationPolicy {
	return TerminationFunc(func(s Snapshot) bool {
		return s.Rounds < n
	})
}

// BankrollExhausted stops once the player has no chips left.
func BankrollExhausted() TerminationPolicy {
	return TerminationFunc(func(s Snapshot) bool {
		return s.Chips > 0
	})
}

// All continues only while every policy continues.
func All(policies ...TerminationPolicy) TerminationPolicy {
	return TerminationFunc(func(s Snapshot) bool {
		for _, p := range policies {
			if !p.Continue(s) {
				return false
			}
		}
		return true
	})
}
