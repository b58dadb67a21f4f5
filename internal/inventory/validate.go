package inventory

import (
	"github.com/KirkDiggler/mausritter-api/internal/catalog"
	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// ErrInconsistent is returned by Validate when pairing or usage state breaks
// the inventory's invariants.
var ErrInconsistent = errors.DataLoss("inventory state is inconsistent")

func inconsistent(id SlotID, format string, args ...interface{}) error {
	return errors.WrapWithCodef(ErrInconsistent, errors.CodeDataLoss, format, args...).
		WithMeta("slot_id", string(id))
}

// Validate checks pairing symmetry, mirror consistency and usage marks
func (inv *Inventory) Validate() error {
	for i := range inv.slots {
		s := &inv.slots[i]

		if s.Usage.Kind == catalog.UsageStandard {
			for _, c := range s.Usage.Charges {
				if c == MarkHalf {
					return inconsistent(s.ID, "slot %s has a half mark on a standard item", s.ID)
				}
			}
		}

		if !s.IsPaired() {
			if s.Secondary {
				return inconsistent(s.ID, "slot %s is secondary without a partner", s.ID)
			}
			continue
		}

		partner, err := inv.slot(s.PairedWith)
		if err != nil {
			return inconsistent(s.ID, "slot %s is paired with unknown slot %s", s.ID, s.PairedWith)
		}
		if !inv.shape.IsPair(s.ID, partner.ID) {
			return inconsistent(s.ID, "slots %s and %s cannot pair", s.ID, partner.ID)
		}
		if partner.PairedWith != s.ID {
			return inconsistent(s.ID, "slot %s points at %s but %s points at %q", s.ID, partner.ID, partner.ID, partner.PairedWith)
		}
		if s.Secondary == partner.Secondary {
			return inconsistent(s.ID, "pair %s/%s needs exactly one secondary", s.ID, partner.ID)
		}
		if s.Secondary && s.Contents != partner.Contents {
			return inconsistent(s.ID, "secondary slot %s does not mirror %s", s.ID, partner.ID)
		}
	}
	return nil
}
