package blackjack

// DealerStandsOn is the total at which the dealer stops drawing.
const DealerStandsOn = 17

// DealerPolicy is the fixed draw-to-17 house rule.
type DealerPolicy struct {
	// HitSoft17 makes the dealer draw on a soft 17.
	HitSoft17 bool
}

// ShouldHit reports whether the dealer draws another card.
func (d DealerPolicy) ShouldHit(h *Hand) bool {
	if h.IsBust() {
		return false
	}
	if h.Value() < DealerStandsOn {
		return true
	}
	return d.HitSoft17 && h.Value() == DealerStandsOn && h.IsSoft()
}

// Play draws for the dealer until the policy stops or the hand busts.
func (d DealerPolicy) Play(h *Hand, draw DrawFunc) error {
	for d.ShouldHit(h) {
		c, err := draw()
		if err != nil {
			return err
		}
		if err := h.AddCard(c); err != nil {
			return err
		}
	}
	if !h.Finished() {
		h.Stand()
	}
	return nil
}
