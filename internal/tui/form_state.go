package tui

import (
	"teamdesk/internal/config"
	"teamdesk/internal/validation"
)

// Field identifies one editable input of the server dialog
type Field int

const (
	FieldName Field = iota
	FieldURL
	FieldIdentity
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return validation.FieldName
	case FieldURL:
		return validation.FieldURL
	case FieldIdentity:
		return validation.FieldIdentity
	}
	return "unknown"
}

// Phase is the dialog lifecycle. Hidden -> Pristine on show, Pristine ->
// Attempted on the first save attempt, any -> Hidden on hide.
type Phase int

const (
	PhaseHidden Phase = iota
	PhasePristine
	PhaseAttempted
)

func (p Phase) String() string {
	switch p {
	case PhaseHidden:
		return "hidden"
	case PhasePristine:
		return "pristine"
	case PhaseAttempted:
		return "attempted"
	}
	return "unknown"
}

// ServerRecord is what the dialog is seeded with and what it hands to OnSave.
// Index is nil for a server that does not exist yet.
type ServerRecord struct {
	Name     string
	URL      string
	Identity string
	Index    *int
	Order    int
}

// RecordFromServer builds an edit seed for the server stored at index
func RecordFromServer(server config.Server, index int) *ServerRecord {
	return &ServerRecord{
		Name:     server.Name,
		URL:      server.URL,
		Identity: server.Identity,
		Index:    &index,
		Order:    server.Order,
	}
}

// Server converts the record into its stored form
func (r ServerRecord) Server() config.Server {
	return config.Server{
		Name:     r.Name,
		URL:      r.URL,
		Identity: r.Identity,
		Order:    r.Order,
	}
}

// FormState is the dialog's working copy of a record
type FormState struct {
	Name     string
	URL      string
	Identity string
	Index    *int
	Order    int
	Phase    Phase
}

// SubmitAttempted reports whether validation errors are visible
func (s FormState) SubmitAttempted() bool {
	return s.Phase == PhaseAttempted
}

// Value returns the text of one field
func (s FormState) Value(field Field) string {
	switch field {
	case FieldName:
		return s.Name
	case FieldURL:
		return s.URL
	case FieldIdentity:
		return s.Identity
	}
	return ""
}

// Record returns the record OnSave receives. Strings are passed through as typed.
func (s FormState) Record() ServerRecord {
	return ServerRecord{
		Name:     s.Name,
		URL:      s.URL,
		Identity: s.Identity,
		Index:    copyIndex(s.Index),
		Order:    s.Order,
	}
}

func (s *FormState) set(field Field, value string) {
	switch field {
	case FieldName:
		s.Name = value
	case FieldURL:
		s.URL = value
	case FieldIdentity:
		s.Identity = value
	}
}

// seedState builds the pristine state for a show. A nil seed means a new
// server placed at currentOrder.
func seedState(seed *ServerRecord, currentOrder int) FormState {
	if seed == nil {
		return FormState{Order: currentOrder, Phase: PhasePristine}
	}
	return FormState{
		Name:     seed.Name,
		URL:      seed.URL,
		Identity: seed.Identity,
		Index:    copyIndex(seed.Index),
		Order:    seed.Order,
		Phase:    PhasePristine,
	}
}

func copyIndex(index *int) *int {
	if index == nil {
		return nil
	}
	i := *index
	return &i
}

// FieldErrors are the visible errors for a state
type FieldErrors struct {
	validation.Result
}

// Validate returns the visible errors for state. Nothing is reported until a
// save has been attempted.
func Validate(state FormState) FieldErrors {
	if !state.SubmitAttempted() {
		return FieldErrors{}
	}
	return FieldErrors{Result: validation.Check(state.Name, state.URL, state.Identity)}
}

// For returns the error of one field, or nil
func (e FieldErrors) For(field Field) *validation.FieldError {
	switch field {
	case FieldName:
		return e.Name
	case FieldURL:
		return e.URL
	case FieldIdentity:
		return e.Identity
	}
	return nil
}
