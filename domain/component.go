package domain

import (
	"fmt"
	"strings"
)

// ComponentKind represents the five IFPUG function types
type ComponentKind string

const (
	// Data functions
	KindILF ComponentKind = "ILF" // Internal Logical File
	KindEIF ComponentKind = "EIF" // External Interface File

	// Transactional functions
	KindEI ComponentKind = "EI" // External Input
	KindEO ComponentKind = "EO" // External Output
	KindEQ ComponentKind = "EQ" // External Inquiry
)

// IsDataFunction returns true for file-type components (ILF, EIF)
func (k ComponentKind) IsDataFunction() bool {
	return k == KindILF || k == KindEIF
}

// IsTransactional returns true for transaction-type components (EI, EO, EQ)
func (k ComponentKind) IsTransactional() bool {
	return k == KindEI || k == KindEO || k == KindEQ
}

// IsValid checks whether the kind is one of the five IFPUG function types
func (k ComponentKind) IsValid() bool {
	return k.IsDataFunction() || k.IsTransactional()
}

// ParseComponentKind converts a string to a ComponentKind, case-insensitively
func ParseComponentKind(s string) (ComponentKind, error) {
	kind := ComponentKind(strings.ToUpper(strings.TrimSpace(s)))
	if !kind.IsValid() {
		return "", NewUnknownKindError(s)
	}
	return kind, nil
}

// AllComponentKinds returns the five kinds in canonical reporting order
func AllComponentKinds() []ComponentKind {
	return []ComponentKind{KindILF, KindEIF, KindEI, KindEO, KindEQ}
}

// Complexity represents an IFPUG complexity rating
type Complexity string

const (
	ComplexityLow     Complexity = "low"
	ComplexityAverage Complexity = "average"
	ComplexityHigh    Complexity = "high"
)

// Rank returns the ordering of the rating (low < average < high)
func (c Complexity) Rank() int {
	switch c {
	case ComplexityLow:
		return 0
	case ComplexityAverage:
		return 1
	case ComplexityHigh:
		return 2
	default:
		return -1
	}
}

// IsValid checks whether the rating is one of the three IFPUG levels
func (c Complexity) IsValid() bool {
	return c.Rank() >= 0
}

// EQSides holds separate input-side and output-side counts for an
// external inquiry measured in dual mode. The input side is rated
// against the EI matrix and the output side against the EO matrix;
// the higher-scoring side determines the component's contribution.
type EQSides struct {
	InputFTR  int
	InputDET  int
	OutputFTR int
	OutputDET int
}

// Component represents a single counted function: a data function
// measured in DETs and RETs, or a transactional function measured
// in DETs and FTRs.
type Component struct {
	ID   string
	Name string
	Kind ComponentKind

	// Data element types crossed by the component
	DET int

	// Record element types (data functions only)
	RET int

	// File types referenced (transactional functions only)
	FTR int

	// Optional dual-mode counts for external inquiries.
	// When set, DET and FTR above are ignored for this component.
	Dual *EQSides
}

// UsesDualCount reports whether the component carries separate
// input-side and output-side counts
func (c *Component) UsesDualCount() bool {
	return c.Kind == KindEQ && c.Dual != nil
}

// Clone returns a deep copy of the component
func (c Component) Clone() Component {
	out := c
	if c.Dual != nil {
		dual := *c.Dual
		out.Dual = &dual
	}
	return out
}

// DisplayName returns the component name, falling back to the ID
func (c *Component) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	if c.ID != "" {
		return c.ID
	}
	return fmt.Sprintf("unnamed %s", c.Kind)
}

// GSCCount is the number of general system characteristics defined by IFPUG
const GSCCount = 14

// GSCVector holds the degrees of influence for the fourteen general
// system characteristics. Each degree ranges from 0 (not present) to
// 5 (strong influence throughout).
type GSCVector [GSCCount]int

// GSCNames lists the fourteen characteristics in IFPUG order,
// indexed to match GSCVector positions.
var GSCNames = [GSCCount]string{
	"Data Communications",
	"Distributed Data Processing",
	"Performance",
	"Heavily Used Configuration",
	"Transaction Rate",
	"Online Data Entry",
	"End-User Efficiency",
	"Online Update",
	"Complex Processing",
	"Reusability",
	"Installation Ease",
	"Operational Ease",
	"Multiple Sites",
	"Facilitate Change",
}

// Validate checks that every degree of influence is within 0..5
func (g GSCVector) Validate() error {
	for i, degree := range g {
		if degree < MinGSCDegree || degree > MaxGSCDegree {
			return NewMalformedGSCError(fmt.Sprintf("characteristic %q has degree %d, must be between %d and %d",
				GSCNames[i], degree, MinGSCDegree, MaxGSCDegree))
		}
	}
	return nil
}

// TotalInfluence returns the sum of all fourteen degrees of influence
func (g GSCVector) TotalInfluence() int {
	total := 0
	for _, degree := range g {
		total += degree
	}
	return total
}

// IssueSeverity distinguishes blocking errors from advisory warnings
type IssueSeverity string

const (
	SeverityError   IssueSeverity = "error"
	SeverityWarning IssueSeverity = "warning"
)

// ValidationIssue describes a single problem found while validating
// a component's counts
type ValidationIssue struct {
	Severity IssueSeverity
	Code     string
	Field    string
	Message  string
}

func (i ValidationIssue) String() string {
	if i.Field != "" {
		return fmt.Sprintf("%s: %s", i.Field, i.Message)
	}
	return i.Message
}

// ValidationResult aggregates the outcome of the validation pipeline
// for one component. Warnings never affect Valid.
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

// HasWarnings returns true if any advisory issues were recorded
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}
