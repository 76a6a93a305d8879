package session

import "github.com/verte-zerg/hilo/internal/blackjack"

// Player is the bankroll and streak state carried across rounds.
type Player struct {
	Chips      int
	BaseBet    int
	CurrentBet int
	WinStreak  int
	LoseStreak int
}

func newPlayer(chips, baseBet int) Player {
	return Player{Chips: chips, BaseBet: baseBet, CurrentBet: baseBet}
}

// place deducts the stake before any card is dealt.
func (p *Player) place(bet int) {
	p.CurrentBet = bet
	p.Chips -= bet
}

func (p *Player) refund() {
	p.Chips += p.CurrentBet
}

func (p *Player) settle(o blackjack.Outcome, payout int) {
	p.Chips += payout
	switch {
	case o.IsWin():
		p.WinStreak++
		p.LoseStreak = 0
	case o.IsLoss():
		p.WinStreak = 0
		p.LoseStreak++
	}
}
