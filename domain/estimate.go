package domain

import (
	"time"

	"github.com/google/uuid"
)

// EstimateStatus represents the lifecycle state of an estimate version
type EstimateStatus string

const (
	// EstimateStatusDraft marks a version still open to recalculation
	EstimateStatusDraft EstimateStatus = "draft"

	// EstimateStatusFinalized marks a version locked as a baseline
	EstimateStatusFinalized EstimateStatus = "finalized"

	// EstimateStatusSuperseded marks a version replaced by a newer one
	EstimateStatusSuperseded EstimateStatus = "superseded"
)

// Estimate is one version of a project's function point count.
// Versions form a history: recalculation mutates a draft in place,
// while NewVersion clones the estimate into a fresh draft and marks
// the source superseded. Non-draft versions are immutable.
type Estimate struct {
	ID        string
	ProjectID string
	Name      string
	Version   int
	Status    EstimateStatus

	Components []Component
	GSC        GSCVector

	// Hours of effort per adjusted function point. Organization
	// specific and always supplied by the caller; never defaulted.
	ProductivityFactor float64

	// Derived values, populated by calculation
	UnadjustedFP int
	VAF          float64
	AdjustedFP   float64
	EffortHours  float64

	CreatedAt    time.Time
	CalculatedAt time.Time
}

// NewDraftEstimate creates the first draft version for a project
func NewDraftEstimate(projectID, name string) *Estimate {
	return &Estimate{
		ID:        uuid.NewString(),
		ProjectID: projectID,
		Name:      name,
		Version:   1,
		Status:    EstimateStatusDraft,
		CreatedAt: time.Now(),
	}
}

// IsDraft reports whether the version is still open to recalculation
func (e *Estimate) IsDraft() bool {
	return e.Status == EstimateStatusDraft
}

// ApplyCalculation records derived values on a draft version.
// Returns an error for finalized or superseded versions.
func (e *Estimate) ApplyCalculation(ufp int, vaf, afp, effortHours float64) error {
	if !e.IsDraft() {
		return NewImmutableVersionError(e.Version, string(e.Status))
	}
	e.UnadjustedFP = ufp
	e.VAF = vaf
	e.AdjustedFP = afp
	e.EffortHours = effortHours
	e.CalculatedAt = time.Now()
	return nil
}

// Finalize locks a draft version as a baseline
func (e *Estimate) Finalize() error {
	if !e.IsDraft() {
		return NewImmutableVersionError(e.Version, string(e.Status))
	}
	e.Status = EstimateStatusFinalized
	return nil
}

// NewVersion clones the estimate into the next draft version and
// marks the receiver superseded. The clone gets a fresh identity;
// components and the GSC vector are deep-copied so later edits
// never reach back into history.
func (e *Estimate) NewVersion() (*Estimate, error) {
	if e.Status == EstimateStatusSuperseded {
		return nil, NewImmutableVersionError(e.Version, string(e.Status))
	}

	next := *e
	next.ID = uuid.NewString()
	next.Version = e.Version + 1
	next.Status = EstimateStatusDraft
	next.CreatedAt = time.Now()
	next.CalculatedAt = time.Time{}

	next.Components = make([]Component, len(e.Components))
	for i, c := range e.Components {
		next.Components[i] = c.Clone()
	}

	e.Status = EstimateStatusSuperseded
	return &next, nil
}

// Validate checks structural integrity of the estimate definition
func (e *Estimate) Validate() error {
	if e.Version < 1 {
		return NewValidationError("estimate version must be at least 1")
	}
	switch e.Status {
	case EstimateStatusDraft, EstimateStatusFinalized, EstimateStatusSuperseded:
	default:
		return NewValidationError("estimate status must be draft, finalized, or superseded")
	}
	for i := range e.Components {
		if !e.Components[i].Kind.IsValid() {
			return NewUnknownKindError(string(e.Components[i].Kind))
		}
	}
	return e.GSC.Validate()
}
