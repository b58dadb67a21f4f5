// Package character provides the interface for character persistence
package character

//go:generate mockgen -destination=mock/mock_repository.go -package=charactermock github.com/KirkDiggler/mausritter-api/internal/repositories/character Repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/KirkDiggler/mausritter-api/internal/errors"
)

// Repository defines the interface for character persistence. Records carry
// the serialized character document; the repository never decodes it.
type Repository interface {
	// Create stores a new record, stamping version 1 and both timestamps
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a record with the same ID exists
	// Returns errors.Internal for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a record by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update overwrites an existing record. The last write wins; the version
	// is bumped on every write and never compared.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)

	// Delete deletes a record by ID
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the record doesn't exist
	// Returns errors.Internal for storage failures
	Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error)

	// List returns every record ordered by creation time
	// Returns errors.Internal for storage failures
	List(ctx context.Context, input ListInput) (*ListOutput, error)

	// DeleteAll removes every record
	// Returns errors.Internal for storage failures
	DeleteAll(ctx context.Context, input DeleteAllInput) (*DeleteAllOutput, error)
}

// Record is one stored character
type Record struct {
	ID string `json:"id"`
	// PlayerTokenID is the jti of the player token currently valid for the
	// character
	PlayerTokenID string `json:"player_token_id,omitempty"`
	// Name is denormalized from the document for anonymous listings
	Name      string          `json:"name"`
	Document  json.RawMessage `json:"document"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateInput defines the input for creating a record
type CreateInput struct {
	Record *Record
}

// CreateOutput defines the output for creating a record
type CreateOutput struct {
	Record *Record
}

// GetInput defines the input for getting a record
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a record
type GetOutput struct {
	Record *Record
}

// UpdateInput defines the input for updating a record
type UpdateInput struct {
	Record *Record
}

// UpdateOutput defines the output for updating a record
type UpdateOutput struct {
	Record *Record
}

// DeleteInput defines the input for deleting a record
type DeleteInput struct {
	ID string
}

// DeleteOutput defines the output for deleting a record
type DeleteOutput struct{}

// ListInput defines the input for listing records
type ListInput struct{}

// ListOutput defines the output for listing records
type ListOutput struct {
	Records []*Record
}

// DeleteAllInput defines the input for removing every record
type DeleteAllInput struct{}

// DeleteAllOutput reports how many records were removed
type DeleteAllOutput struct {
	Deleted int
}

const (
	errRecordNil     = "record cannot be nil"
	errRecordIDEmpty = "character ID cannot be empty"
	errDocumentEmpty = "document cannot be empty"
)

func validateRecord(r *Record) error {
	if r == nil {
		return errors.InvalidArgument(errRecordNil)
	}
	if r.ID == "" {
		return errors.InvalidArgument(errRecordIDEmpty)
	}
	if len(r.Document) == 0 {
		return errors.InvalidArgument(errDocumentEmpty).WithMeta("character_id", r.ID)
	}
	return nil
}

func copyRecord(r *Record) *Record {
	out := *r
	out.Document = append(json.RawMessage(nil), r.Document...)
	return &out
}
