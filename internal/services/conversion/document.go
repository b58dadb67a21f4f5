package conversion

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
	"github.com/KirkDiggler/mausritter-api/internal/inventory"
)

// DocumentVersion is written into every document produced by ToDocument.
// Documents without it come from the original sheet and get their pairing,
// placeholder and six use state inferred on load.
const DocumentVersion = 2

// ErrInvalidDocument is returned for documents that cannot be loaded
var ErrInvalidDocument = errors.DataLoss("invalid character document")

// Document is the persisted JSON form of a character
type Document struct {
	Version        int                     `json:"version,omitempty"`
	ID             string                  `json:"id,omitempty"`
	Name           string                  `json:"name"`
	Background     string                  `json:"background"`
	Attributes     AttributesDoc           `json:"attributes"`
	HP             StatDoc                 `json:"hp"`
	Pips           int                     `json:"pips"`
	Level          int                     `json:"level"`
	XP             int                     `json:"xp"`
	Grit           int                     `json:"grit"`
	MaxGrit        int                     `json:"max_grit"`
	Inventory      InventoryDoc            `json:"inventory"`
	InventoryUsage map[string]SlotUsageDoc `json:"inventory_usage"`
	Conditions     []string                `json:"conditions"`
	// IgnoredConditions carries the clear text next to each name
	IgnoredConditions []IgnoredConditionDoc `json:"ignored_conditions,omitempty"`
	Hirelings         []HirelingDoc         `json:"hirelings"`
	Appearance        *AppearanceDoc        `json:"appearance,omitempty"`
	BankedText        string                `json:"banked_text,omitempty"`
	Notes             string                `json:"notes,omitempty"`
}

// StatDoc is a max and current pair
type StatDoc struct {
	Max     int `json:"max"`
	Current int `json:"current"`
}

// AttributesDoc holds the three attributes under their sheet names
type AttributesDoc struct {
	STR StatDoc `json:"STR"`
	DEX StatDoc `json:"DEX"`
	WIL StatDoc `json:"WIL"`
}

// InventoryDoc is the slot text of a character inventory
type InventoryDoc struct {
	MainPaw string   `json:"main_paw"`
	OffPaw  string   `json:"off_paw"`
	Body    []string `json:"body"`
	Pack    []string `json:"pack"`
}

// SlotUsageDoc is the per slot state stored next to the slot text
type SlotUsageDoc struct {
	Markers          [inventory.MarkerCount]Mark `json:"markers"`
	TwoSlotItem      bool                        `json:"twoSlotItem"`
	TwoSlotSecondary bool                        `json:"twoSlotSecondary"`
	ConditionSlot    bool                        `json:"conditionSlot"`
	Depleted         bool                        `json:"depleted"`
	PairedWith       string                      `json:"pairedWith,omitempty"`
	SixUse           bool                        `json:"sixUse,omitempty"`
	Source           string                      `json:"source,omitempty"`
	NeedsSelection   bool                        `json:"needsSelection,omitempty"`
	ClearCondition   string                      `json:"clearCondition,omitempty"`
}

// IgnoredConditionDoc is one condition ignored with grit
type IgnoredConditionDoc struct {
	Name           string `json:"name"`
	ClearCondition string `json:"clear_condition,omitempty"`
}

// AppearanceDoc is the rolled look of the mouse
type AppearanceDoc struct {
	Birthsign      string `json:"birthsign,omitempty"`
	Disposition    string `json:"disposition,omitempty"`
	CoatColor      string `json:"coat_color,omitempty"`
	CoatPattern    string `json:"coat_pattern,omitempty"`
	PhysicalDetail string `json:"physical_detail,omitempty"`
}

// HirelingDoc is one hireling with its own small inventory
type HirelingDoc struct {
	ID          string               `json:"id,omitempty"`
	Type        string               `json:"type"`
	Ordinal     int                  `json:"ordinal,omitempty"`
	Name        string               `json:"name,omitempty"`
	Look        string               `json:"look"`
	Disposition string               `json:"disposition"`
	Attributes  AttributesDoc        `json:"attributes"`
	HP          StatDoc              `json:"hp"`
	Inventory   HirelingInventoryDoc `json:"inventory"`
	Usage       HirelingUsageDoc     `json:"usage"`
	// Slots holds pairing and placement flags keyed by slot id; markers in
	// Usage win over the ones repeated here.
	Slots map[string]SlotUsageDoc `json:"slots,omitempty"`
}

// HirelingInventoryDoc is the slot text of a hireling inventory
type HirelingInventoryDoc struct {
	Paws []string `json:"paws"`
	Pack []string `json:"pack"`
}

// HirelingUsageDoc is the charge marks of a hireling inventory
type HirelingUsageDoc struct {
	Paws [][inventory.MarkerCount]Mark `json:"paws"`
	Pack [][inventory.MarkerCount]Mark `json:"pack"`
}

// Mark is a charge mark on the wire: false, "half" or "used"
type Mark inventory.ChargeMark

// MarshalJSON implements json.Marshaler
func (m Mark) MarshalJSON() ([]byte, error) {
	switch inventory.ChargeMark(m) {
	case inventory.MarkHalf:
		return []byte(`"half"`), nil
	case inventory.MarkFull:
		return []byte(`"used"`), nil
	default:
		return []byte("false"), nil
	}
}

// UnmarshalJSON implements json.Unmarshaler. true is accepted as a full
// mark for sheets saved before the half state existed.
func (m *Mark) UnmarshalJSON(data []byte) error {
	switch string(bytes.TrimSpace(data)) {
	case "false", "null", `""`:
		*m = Mark(inventory.MarkEmpty)
	case `"half"`:
		*m = Mark(inventory.MarkHalf)
	case `"used"`, "true":
		*m = Mark(inventory.MarkFull)
	default:
		return fmt.Errorf("unknown charge mark %s", data)
	}
	return nil
}

var (
	_ json.Marshaler   = Mark(0)
	_ json.Unmarshaler = (*Mark)(nil)
)

// Character inventory slots in document order
var (
	bodySlots = []inventory.SlotID{inventory.Body1, inventory.Body2}
	packSlots = []inventory.SlotID{
		inventory.Pack1, inventory.Pack2, inventory.Pack3,
		inventory.Pack4, inventory.Pack5, inventory.Pack6,
	}
	hirelingPawSlots  = []inventory.SlotID{inventory.Paw1, inventory.Paw2}
	hirelingPackSlots = []inventory.SlotID{inventory.Pack1, inventory.Pack2, inventory.Pack3, inventory.Pack4}
)
