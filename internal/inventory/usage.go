package inventory

import "github.com/KirkDiggler/mausritter-api/internal/catalog"

// MarkerCount is the number of charge marks on every slot
const MarkerCount = 3

// ChargeMark is the state of one usage marker
type ChargeMark int

// Charge marks. Half is only valid on six use items.
const (
	MarkEmpty ChargeMark = iota
	MarkHalf
	MarkFull
)

// UsageState tracks how used up the item in a slot is
type UsageState struct {
	Charges [MarkerCount]ChargeMark
	Kind    catalog.Usage
}

func newUsage(kind catalog.Usage) UsageState {
	if kind == "" {
		kind = catalog.UsageStandard
	}
	return UsageState{Kind: kind}
}

// Depleted reports whether all marks are full
func (u UsageState) Depleted() bool {
	for _, c := range u.Charges {
		if c != MarkFull {
			return false
		}
	}
	return true
}

// Used counts the full marks
func (u UsageState) Used() int {
	n := 0
	for _, c := range u.Charges {
		if c == MarkFull {
			n++
		}
	}
	return n
}

// IsClear reports whether no mark is set
func (u UsageState) IsClear() bool {
	return u.Charges == [MarkerCount]ChargeMark{}
}

// Toggle applies a click on marker idx. Standard items behave as a counter:
// a click inside the filled run removes the rightmost mark and any other
// click fills the next one. Six use marks cycle empty, half, full on their own.
func (u *UsageState) Toggle(idx int) {
	if u.Kind == catalog.UsageSixUse {
		u.Charges[idx] = (u.Charges[idx] + 1) % (MarkFull + 1)
		return
	}

	used := u.Used()
	switch {
	case idx < used:
		used--
	case used < MarkerCount:
		used++
	}
	for i := range u.Charges {
		if i < used {
			u.Charges[i] = MarkFull
		} else {
			u.Charges[i] = MarkEmpty
		}
	}
}

// Reset clears every mark and keeps the kind
func (u *UsageState) Reset() {
	u.Charges = [MarkerCount]ChargeMark{}
}
