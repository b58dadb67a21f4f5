package conversion

import (
	"github.com/KirkDiggler/mausritter-api/internal/entities/mausritter"
	"github.com/KirkDiggler/mausritter-api/internal/pkg/idgen"
)

// CharacterConverter handles conversions between the persisted JSON document
// and the character aggregate. It is the only place that knows the document
// layout, including how legacy documents are upgraded on load.
type CharacterConverter interface {
	// ToDocument snapshots the full character state
	ToDocument(c *mausritter.Character) *Document

	// FromDocument rebuilds a character. Documents that break inventory or
	// grit invariants fail with ErrInvalidDocument.
	FromDocument(doc *Document) (*mausritter.Character, error)

	// Marshal encodes the character as JSON
	Marshal(c *mausritter.Character) ([]byte, error)

	// Unmarshal decodes a JSON document into a character
	Unmarshal(data []byte) (*mausritter.Character, error)

	// LoadOrDefault decodes a document and falls back to an empty character
	// when it is malformed. The returned error is non nil whenever the
	// fallback was used, the character never is.
	LoadOrDefault(data []byte) (*mausritter.Character, error)

	// ApplyPatch applies a typed partial update. Either the whole patch
	// applies or the character is left untouched.
	ApplyPatch(c *mausritter.Character, patch *Patch) error

	// ApplyProposal writes an accepted proposal onto the character, seeds the
	// inventory and attaches granted hirelings. It returns a warning for every
	// item that did not fit.
	ApplyProposal(c *mausritter.Character, p *mausritter.Proposal, hirelingIDs idgen.Generator) []string
}
