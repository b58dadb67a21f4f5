package session

import (
	"encoding/json"
	"time"
)

// ExportVersion is the envelope version written by Export
const ExportVersion = "1.0"

// Combat is the turn tracker carried in session files. The server does not
// drive it; it survives export and import unchanged.
type Combat struct {
	Active      bool     `json:"active"`
	TurnOrder   []string `json:"turn_order"`
	CurrentTurn int      `json:"current_turn"`
}

// Info is the public view of the session
type Info struct {
	ID             string
	Name           string
	Notes          string
	CreatedAt      time.Time
	Combat         Combat
	CharacterCount int
}

// InfoInput defines the request for reading the session
type InfoInput struct{}

// InfoOutput defines the response for reading the session
type InfoOutput struct {
	Session Info
}

// RenameInput defines the request for renaming the session
type RenameInput struct {
	Name string
}

// RenameOutput defines the response for renaming the session
type RenameOutput struct {
	Session Info
}

// SetNotesInput defines the request for replacing the GM notes
type SetNotesInput struct {
	Notes string
}

// SetNotesOutput defines the response for replacing the GM notes
type SetNotesOutput struct {
	Session Info
}

// ExportInput defines the request for exporting the session
type ExportInput struct{}

// ExportOutput carries the session file
type ExportOutput struct {
	Data     []byte
	Filename string
}

// ImportInput defines the request for loading a session file
type ImportInput struct {
	Data []byte
}

// ImportOutput defines the response for loading a session file
type ImportOutput struct {
	Session Info
	// Imported is how many characters were loaded
	Imported int
	// GMTokenID is the jti of the new GM token
	GMTokenID string
}

// ResetInput defines the request for starting a fresh session
type ResetInput struct{}

// ResetOutput defines the response for starting a fresh session
type ResetOutput struct {
	Session   Info
	Deleted   int
	GMTokenID string
}

// envelope is the session file layout
type envelope struct {
	Version  string       `json:"version"`
	Exported string       `json:"exported"`
	Session  *fileSession `json:"session"`
}

type fileSession struct {
	SessionName string                     `json:"session_name"`
	Created     string                     `json:"created"`
	GMNotes     string                     `json:"gm_notes"`
	Characters  map[string]json.RawMessage `json:"characters"`
	Combat      *Combat                    `json:"combat,omitempty"`
}
