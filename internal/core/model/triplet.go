package model

import "fmt"

// Status is the review state of a triplet. Triplets enter the session as
// Pending and may move freely between states; reviewers can change their mind.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
)

// Reason classifies the outcome of validating a single triplet.
type Reason string

const (
	ReasonValid              Reason = "valid"
	ReasonUnknownRole        Reason = "unknown_role"
	ReasonUnknownCounterrole Reason = "unknown_counterrole"
	ReasonAmbiguousMatch     Reason = "ambiguous_match"
	// ReasonDuplicateVerb is only produced by batch validation, when a
	// triplet repeats an earlier (role, canonical practice, counterrole).
	ReasonDuplicateVerb Reason = "duplicate_verb"
)

// NEREntity is a named entity found in the supporting context.
type NEREntity struct {
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Triplet is one role→practice→counterrole relationship with its supporting
// context. Role, Practice and Counterrole hold the normalized values once the
// validator has run; the raw extracted strings are preserved alongside.
type Triplet struct {
	ID          string  `json:"id"`
	Role        string  `json:"role"`
	Practice    string  `json:"practice"`
	Counterrole string  `json:"counterrole"`
	Context     string  `json:"context"`
	Confidence  float64 `json:"confidence"`

	RoleRaw     string `json:"role_raw,omitempty"`
	PracticeRaw string `json:"practice_raw,omitempty"`

	Entities  []NEREntity `json:"entities,omitempty"`
	Validated Status      `json:"validated"`

	// Validation annotations, advisory only.
	Reason   Reason   `json:"reason,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// RawTriplet is the ingestion-boundary shape produced by the extraction
// layer. ID is optional and assigned by the session when absent.
type RawTriplet struct {
	ID        string `json:"id,omitempty"`
	Extracted struct {
		Role        string `json:"role"`
		Practice    string `json:"practice"`
		Counterrole string `json:"counterrole"`
	} `json:"extracted"`
	Text       string      `json:"text"`
	Confidence float64     `json:"confidence"`
	Entities   []NEREntity `json:"entities,omitempty"`
}

// MalformedTripletError reports a raw triplet missing required fields. It is
// raised at the ingestion boundary so downstream code never sees a triplet
// without role, practice and counterrole.
type MalformedTripletError struct {
	Field string
}

func (e *MalformedTripletError) Error() string {
	return fmt.Sprintf("malformed triplet: missing field %q", e.Field)
}

// Validate checks the required fields of a raw triplet.
func (r RawTriplet) Validate() error {
	switch {
	case r.Extracted.Role == "":
		return &MalformedTripletError{Field: "role"}
	case r.Extracted.Practice == "":
		return &MalformedTripletError{Field: "practice"}
	case r.Extracted.Counterrole == "":
		return &MalformedTripletError{Field: "counterrole"}
	}
	return nil
}

// FromRaw lifts an ingestion-boundary record into a session triplet. The
// caller must have checked r.Validate first.
func FromRaw(r RawTriplet) Triplet {
	return Triplet{
		ID:          r.ID,
		Role:        r.Extracted.Role,
		Practice:    r.Extracted.Practice,
		Counterrole: r.Extracted.Counterrole,
		Context:     r.Text,
		Confidence:  r.Confidence,
		Entities:    r.Entities,
		Validated:   StatusPending,
	}
}

// ValidationResult is the advisory outcome of validating one triplet. The
// validator never flips a triplet's status; the final accept/reject decision
// belongs to the human reviewer.
type ValidationResult struct {
	OK                 bool     `json:"ok"`
	Reason             Reason   `json:"reason"`
	NormalizedRole     string   `json:"normalized_role,omitempty"`
	NormalizedPractice string   `json:"normalized_practice,omitempty"`
	PracticeCanonical  bool     `json:"practice_canonical"`
	Warnings           []string `json:"warnings,omitempty"`
}
