package blackjack

import (
	"errors"
	"fmt"
)

// DefaultPayoutMultiplier returns the stake plus equal winnings.
const DefaultPayoutMultiplier = 2

// Outcome is the result of a finished round.
type Outcome int

// Round outcomes.
const (
	PlayerBust Outcome = iota + 1
	DealerBust
	PlayerWin
	DealerWin
	Push
)

// AllOutcomes lists outcomes in display order.
var AllOutcomes = []Outcome{PlayerBust, DealerBust, PlayerWin, DealerWin, Push}

func (o Outcome) String() string {
	switch o {
	case PlayerBust:
		return "player_bust"
	case DealerBust:
		return "dealer_bust"
	case PlayerWin:
		return "player_win"
	case DealerWin:
		return "dealer_win"
	case Push:
		return "push"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// ParseOutcome is the inverse of Outcome.String.
func ParseOutcome(s string) (Outcome, error) {
	for _, o := range AllOutcomes {
		if o.String() == s {
			return o, nil
		}
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

// Label is a human-readable outcome.
func (o Outcome) Label() string {
	switch o {
	case PlayerBust:
		return "Player busts, dealer wins"
	case DealerBust:
		return "Dealer busts, player wins"
	case PlayerWin:
		return "Player wins"
	case DealerWin:
		return "Dealer wins"
	case Push:
		return "Push, bet returned"
	default:
		return o.String()
	}
}

// IsWin reports a player win.
func (o Outcome) IsWin() bool {
	return o == DealerBust || o == PlayerWin
}

// IsLoss reports a player loss.
func (o Outcome) IsLoss() bool {
	return o == PlayerBust || o == DealerWin
}

var errMissingDealer = errors.New("dealer hand required unless the player busted")

// Resolve compares the finished hands. dealer may be nil only if the player busted.
func Resolve(player, dealer *Hand) (Outcome, error) {
	if player.IsBust() {
		return PlayerBust, nil
	}
	if dealer == nil {
		return 0, errMissingDealer
	}
	switch {
	case dealer.IsBust():
		return DealerBust, nil
	case player.Value() > dealer.Value():
		return PlayerWin, nil
	case player.Value() < dealer.Value():
		return DealerWin, nil
	default:
		return Push, nil
	}
}

// Payout is the amount credited back for a stake already deducted.
func Payout(o Outcome, bet, multiplier int) int {
	switch {
	case o.IsWin():
		return bet * multiplier
	case o == Push:
		return bet
	default:
		return 0
	}
}
