package analyzer

import (
	"testing"

	"github.com/scopeworks/fpoint/domain"
)

func issueCodes(issues []domain.ValidationIssue) []string {
	codes := make([]string, len(issues))
	for i, issue := range issues {
		codes[i] = issue.Code
	}
	return codes
}

func hasIssue(issues []domain.ValidationIssue, code string) bool {
	for _, issue := range issues {
		if issue.Code == code {
			return true
		}
	}
	return false
}

func TestValidateComponentUnknownKind(t *testing.T) {
	_, err := ValidateComponent(domain.Component{Name: "x", Kind: "FILE"}, DefaultValidationOptions())
	if err == nil {
		t.Fatal("unknown kinds must be a hard error, not a finding")
	}
}

func TestValidateComponentCleanCounts(t *testing.T) {
	testCases := []struct {
		name      string
		component domain.Component
	}{
		{"InternalFile", domain.Component{Name: "customers", Kind: domain.KindILF, RET: 2, DET: 15}},
		{"InterfaceFile", domain.Component{Name: "tax tables", Kind: domain.KindEIF, RET: 3, DET: 30}},
		{"Input", domain.Component{Name: "add order", Kind: domain.KindEI, FTR: 2, DET: 8}},
		{"Output", domain.Component{Name: "invoice", Kind: domain.KindEO, FTR: 2, DET: 10}},
		{"Inquiry", domain.Component{Name: "lookup", Kind: domain.KindEQ, FTR: 1, DET: 10}},
		{"DualInquiry", domain.Component{Name: "search", Kind: domain.KindEQ,
			Dual: &domain.EQSides{InputFTR: 1, InputDET: 3, OutputFTR: 2, OutputDET: 10}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ValidateComponent(tc.component, DefaultValidationOptions())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Valid {
				t.Errorf("expected valid, got errors: %v", issueCodes(result.Errors))
			}
			if len(result.Errors) != 0 {
				t.Errorf("expected no errors, got %v", issueCodes(result.Errors))
			}
		})
	}
}

func TestValidateComponentDETRange(t *testing.T) {
	result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindILF, RET: 0, DET: 0}, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasIssue(result.Errors, IssueDETRange) {
		t.Errorf("expected a DET range error, got %v", issueCodes(result.Errors))
	}
	// The RET problem belongs to a later stage that must not have run
	if hasIssue(result.Errors, IssueRETRange) {
		t.Errorf("stage after the failing one ran: %v", issueCodes(result.Errors))
	}
}

func TestValidateComponentStageShortCircuit(t *testing.T) {
	// DET is fine, RET is broken: the reference stage fails and the
	// later stages stay silent.
	result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindEIF, RET: 0, DET: 19}, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("expected invalid result")
	}
	if !hasIssue(result.Errors, IssueRETRange) {
		t.Errorf("expected a RET range error, got %v", issueCodes(result.Errors))
	}
	// DET=19 sits on a band edge, but the boundary stage never ran
	if hasIssue(result.Warnings, IssueBandBoundary) {
		t.Errorf("boundary stage ran after a failing stage: %v", issueCodes(result.Warnings))
	}
}

func TestValidateComponentAccumulatesWithinStage(t *testing.T) {
	// Both sides negative: the DET stage reports every finding it has
	// before the driver stops.
	component := domain.Component{Name: "x", Kind: domain.KindEQ,
		Dual: &domain.EQSides{InputDET: -1, OutputDET: -2}}
	result, err := ValidateComponent(component, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Errors) != 2 {
		t.Errorf("expected both side errors, got %v", issueCodes(result.Errors))
	}
}

func TestValidateComponentWarningsSurviveSuccess(t *testing.T) {
	// DET=19 on an ILF sits exactly on the 19/20 band edge
	result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindILF, RET: 3, DET: 19}, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("boundary warnings must not block: %v", issueCodes(result.Errors))
	}
	if !hasIssue(result.Warnings, IssueBandBoundary) {
		t.Errorf("expected a boundary warning, got %v", issueCodes(result.Warnings))
	}
}

func TestValidateComponentBoundaryWarningsOff(t *testing.T) {
	opts := DefaultValidationOptions()
	opts.BoundaryWarnings = false
	result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindILF, RET: 3, DET: 19}, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hasIssue(result.Warnings, IssueBandBoundary) {
		t.Error("boundary warnings were disabled but still emitted")
	}
}

func TestValidateComponentEQCeiling(t *testing.T) {
	component := domain.Component{Name: "search", Kind: domain.KindEQ,
		Dual: &domain.EQSides{InputFTR: 1, InputDET: 60, OutputFTR: 1, OutputDET: 50}}

	result, err := ValidateComponent(component, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("combined DET above the ceiling must fail")
	}
	if !hasIssue(result.Errors, IssueEQDETCeiling) {
		t.Errorf("expected a ceiling error, got %v", issueCodes(result.Errors))
	}

	// A wider ceiling admits the same counts
	opts := DefaultValidationOptions()
	opts.EQDETCeiling = 200
	result, err = ValidateComponent(component, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Errorf("expected valid under the wider ceiling, got %v", issueCodes(result.Errors))
	}
}

func TestValidateComponentDualNeedsOneDET(t *testing.T) {
	component := domain.Component{Name: "search", Kind: domain.KindEQ,
		Dual: &domain.EQSides{InputFTR: 1, OutputFTR: 1}}
	result, err := ValidateComponent(component, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Valid {
		t.Fatal("a dual inquiry with no DETs at all must fail")
	}
}

func TestValidateComponentSuspiciousCounts(t *testing.T) {
	result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindILF, RET: 2, DET: 1500}, DefaultValidationOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("suspicious counts warn, never block: %v", issueCodes(result.Errors))
	}
	if !hasIssue(result.Warnings, IssueSuspiciousCount) {
		t.Errorf("expected a suspicious count warning, got %v", issueCodes(result.Warnings))
	}
}

func TestValidateComponentIgnoredFields(t *testing.T) {
	t.Run("FTROnDataFunction", func(t *testing.T) {
		result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindILF, RET: 2, DET: 10, FTR: 3}, DefaultValidationOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Valid {
			t.Fatal("an ignored field is advisory, not an error")
		}
		if !hasIssue(result.Warnings, IssueDualPairing) {
			t.Errorf("expected an ignored-field warning, got %v", issueCodes(result.Warnings))
		}
	})

	t.Run("DualOnInput", func(t *testing.T) {
		result, err := ValidateComponent(domain.Component{Name: "x", Kind: domain.KindEI, FTR: 1, DET: 5,
			Dual: &domain.EQSides{InputDET: 3}}, DefaultValidationOptions())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !result.Valid {
			t.Fatal("dual counts on a non-inquiry are advisory")
		}
		if !hasIssue(result.Warnings, IssueDualPairing) {
			t.Errorf("expected a dual pairing warning, got %v", issueCodes(result.Warnings))
		}
	})
}
