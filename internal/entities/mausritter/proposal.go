package mausritter

import "time"

// ProposedHireling is a hireling rolled as part of a proposal, before it has
// an id or an inventory.
type ProposedHireling struct {
	Type        string `json:"type"`
	Look        string `json:"look"`
	Disposition string `json:"disposition"`
	STR         int    `json:"str"`
	DEX         int    `json:"dex"`
	WIL         int    `json:"wil"`
	HP          int    `json:"hp"`
}

// Proposal is a freshly generated character waiting for the player to accept
// it or roll again.
type Proposal struct {
	ID          string             `json:"id"`
	CharacterID string             `json:"character_id"`
	Name        string             `json:"name"`
	Background  string             `json:"background"`
	STR         int                `json:"str"`
	DEX         int                `json:"dex"`
	WIL         int                `json:"wil"`
	HP          int                `json:"hp"`
	Pips        int                `json:"pips"`
	Appearance  ProposalAppearance `json:"appearance"`
	// Items is the flat starting equipment list in stowing order
	Items     []string           `json:"items"`
	Hirelings []ProposedHireling `json:"hirelings,omitempty"`
	CreatedAt time.Time          `json:"created_at"`
	ExpiresAt time.Time          `json:"expires_at"`
}

// ProposalAppearance mirrors Appearance with wire names
type ProposalAppearance struct {
	Birthsign      string `json:"birthsign"`
	Disposition    string `json:"disposition"`
	CoatColor      string `json:"coat_color"`
	CoatPattern    string `json:"coat_pattern"`
	PhysicalDetail string `json:"physical_detail"`
}

// Attributes returns the rolled attributes at full
func (p *Proposal) Attributes() Attributes {
	return Attributes{STR: Full(p.STR), DEX: Full(p.DEX), WIL: Full(p.WIL)}
}

// Highest returns the best rolled attribute
func (p *Proposal) Highest() int {
	return p.Attributes().Highest()
}

// Appearance converts to the aggregate's appearance
func (a ProposalAppearance) Appearance() Appearance {
	return Appearance(a)
}

// Hireling builds an unattached hireling from the rolled values
func (p ProposedHireling) Hireling(id string) *Hireling {
	return &Hireling{
		ID:          id,
		Type:        p.Type,
		Look:        p.Look,
		Disposition: p.Disposition,
		Attributes:  Attributes{STR: Full(p.STR), DEX: Full(p.DEX), WIL: Full(p.WIL)},
		HP:          Full(p.HP),
	}
}

// Expired reports whether the proposal is past its expiry
func (p *Proposal) Expired(now time.Time) bool {
	return !p.ExpiresAt.IsZero() && !now.Before(p.ExpiresAt)
}
