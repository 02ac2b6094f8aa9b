package game

// The ledger methods are the only paths that move money. The hard
// invariant is that Budget never goes negative: every debit re-checks
// affordability at mutation time, even when the caller validated
// earlier in the same command, because a cascading bidding award may
// have changed the balance in between.

// CanAfford reports whether the player can cover amount.
func (p *Player) CanAfford(amount int) bool {
	return p.Budget >= amount
}

// DebitAndAward deducts totalCost and appends a copy of the card to the
// player's inventory. Returns false, with no mutation, if the budget
// cannot cover the cost.
func (p *Player) DebitAndAward(card Card, totalCost int) bool {
	if !p.CanAfford(totalCost) {
		return false
	}
	p.Budget -= totalCost
	p.Inventory = append(p.Inventory, card)
	return true
}

// Credit adds amount to the budget unconditionally. Used for packaging
// refunds and box-office yields.
func (p *Player) Credit(amount int) {
	p.Budget += amount
}
