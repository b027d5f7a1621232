package analyzer

import (
	"fmt"

	"github.com/scopeworks/fpoint/domain"
)

// Validation issue codes
const (
	IssueDETRange        = "DET_RANGE"
	IssueRETRange        = "RET_RANGE"
	IssueFTRRange        = "FTR_RANGE"
	IssueDualPairing     = "DUAL_PAIRING"
	IssueEQDETCeiling    = "EQ_DET_CEILING"
	IssueSuspiciousCount = "SUSPICIOUS_COUNT"
	IssueBandBoundary    = "BAND_BOUNDARY"
)

// validationStage checks one aspect of a component's counts and
// appends any findings to the result.
type validationStage struct {
	name  string
	check func(c domain.Component, opts domain.ValidationOptions, result *domain.ValidationResult)
}

// validationPipeline is the fixed stage order. The driver runs stages
// front to back and stops after the first stage that records an
// error, so later findings never pile onto an already broken count.
// Warnings accumulate from every stage that ran and never block.
var validationPipeline = []validationStage{
	{name: "det-range", check: checkDETRange},
	{name: "reference-range", check: checkReferenceRange},
	{name: "cross-field", check: checkCrossField},
	{name: "band-boundary", check: checkBandBoundary},
}

// DefaultValidationOptions returns the documented validation limits
func DefaultValidationOptions() domain.ValidationOptions {
	return domain.ValidationOptions{
		EQDETCeiling:     domain.DefaultEQDETCeiling,
		BoundaryWarnings: true,
	}
}

// ValidateComponent runs the validation pipeline on one component.
// The returned result carries all errors of the failing stage plus
// any warnings collected along the way. An unknown component kind is
// a hard error, not a validation finding.
func ValidateComponent(c domain.Component, opts domain.ValidationOptions) (*domain.ValidationResult, error) {
	if !c.Kind.IsValid() {
		return nil, domain.NewUnknownKindError(string(c.Kind))
	}
	if opts.EQDETCeiling <= 0 {
		opts.EQDETCeiling = domain.DefaultEQDETCeiling
	}

	result := &domain.ValidationResult{Valid: true}
	for _, stage := range validationPipeline {
		before := len(result.Errors)
		stage.check(c, opts, result)
		if len(result.Errors) > before {
			result.Valid = false
			break
		}
	}
	return result, nil
}

func addError(result *domain.ValidationResult, code, field, message string) {
	result.Errors = append(result.Errors, domain.ValidationIssue{
		Severity: domain.SeverityError,
		Code:     code,
		Field:    field,
		Message:  message,
	})
}

func addWarning(result *domain.ValidationResult, code, field, message string) {
	result.Warnings = append(result.Warnings, domain.ValidationIssue{
		Severity: domain.SeverityWarning,
		Code:     code,
		Field:    field,
		Message:  message,
	})
}

// checkDETRange validates data element counts. Dual-count inquiries
// allow empty sides but must cross at least one DET overall.
func checkDETRange(c domain.Component, opts domain.ValidationOptions, result *domain.ValidationResult) {
	if c.UsesDualCount() {
		if c.Dual.InputDET < 0 {
			addError(result, IssueDETRange, "input_det", "input DET count cannot be negative")
		}
		if c.Dual.OutputDET < 0 {
			addError(result, IssueDETRange, "output_det", "output DET count cannot be negative")
		}
		if c.Dual.InputDET >= 0 && c.Dual.OutputDET >= 0 && c.Dual.InputDET+c.Dual.OutputDET < 1 {
			addError(result, IssueDETRange, "dual", "dual-count inquiry must cross at least one DET across both sides")
		}
		return
	}

	if c.DET < 1 {
		addError(result, IssueDETRange, "det", "DET count must be at least 1")
		return
	}
	if c.DET > domain.MaxReasonableDET {
		addWarning(result, IssueSuspiciousCount, "det",
			fmt.Sprintf("DET count %d is unusually large, check whether unrelated elements were merged", c.DET))
	}
}

// checkReferenceRange validates RET counts for data functions and FTR
// counts for transactional functions. Dual-count inquiries carry
// per-side FTRs and are handled by the cross-field stage instead.
func checkReferenceRange(c domain.Component, opts domain.ValidationOptions, result *domain.ValidationResult) {
	if c.UsesDualCount() {
		return
	}

	if c.Kind.IsDataFunction() {
		if c.RET < 1 {
			addError(result, IssueRETRange, "ret", "RET count must be at least 1")
			return
		}
		if c.RET > domain.MaxReasonableRET {
			addWarning(result, IssueSuspiciousCount, "ret",
				fmt.Sprintf("RET count %d is unusually large for a single logical file", c.RET))
		}
		return
	}

	if c.FTR < 0 {
		addError(result, IssueFTRRange, "ftr", "FTR count cannot be negative")
		return
	}
	if c.FTR > domain.MaxReasonableFTR {
		addWarning(result, IssueSuspiciousCount, "ftr",
			fmt.Sprintf("FTR count %d is unusually large for a single transaction", c.FTR))
	}
}

// checkCrossField validates consistency between fields: per-side FTR
// ranges and the combined DET ceiling for dual-count inquiries, and
// counts that do not apply to the component's kind.
func checkCrossField(c domain.Component, opts domain.ValidationOptions, result *domain.ValidationResult) {
	if c.UsesDualCount() {
		if c.Dual.InputFTR < 0 {
			addError(result, IssueFTRRange, "input_ftr", "input FTR count cannot be negative")
		}
		if c.Dual.OutputFTR < 0 {
			addError(result, IssueFTRRange, "output_ftr", "output FTR count cannot be negative")
		}
		if combined := c.Dual.InputDET + c.Dual.OutputDET; combined > opts.EQDETCeiling {
			addError(result, IssueEQDETCeiling, "dual",
				fmt.Sprintf("combined DET count %d exceeds the inquiry ceiling of %d", combined, opts.EQDETCeiling))
		}
		return
	}

	if c.Dual != nil && c.Kind != domain.KindEQ {
		addWarning(result, IssueDualPairing, "dual",
			fmt.Sprintf("dual counts are ignored for %s components", c.Kind))
	}
	if c.Kind.IsDataFunction() && c.FTR > 0 {
		addWarning(result, IssueDualPairing, "ftr",
			fmt.Sprintf("FTR count is ignored for %s components", c.Kind))
	}
	if c.Kind.IsTransactional() && c.RET > 0 {
		addWarning(result, IssueDualPairing, "ret",
			fmt.Sprintf("RET count is ignored for %s components", c.Kind))
	}
}

// checkBandBoundary warns when a count sits exactly on a
// classification band edge, where a re-count could change the rating
func checkBandBoundary(c domain.Component, opts domain.ValidationOptions, result *domain.ValidationResult) {
	if !opts.BoundaryWarnings {
		return
	}

	boundary := func(field string, n int, bounds bandBounds) {
		if onBandEdge(n, bounds) {
			addWarning(result, IssueBandBoundary, field,
				fmt.Sprintf("%s count %d sits on a classification band edge, a re-count could change the rating", field, n))
		}
	}

	if c.UsesDualCount() {
		boundary("input_det", c.Dual.InputDET, inputDETBands)
		boundary("input_ftr", c.Dual.InputFTR, inputFTRBands)
		boundary("output_det", c.Dual.OutputDET, outputDETBands)
		boundary("output_ftr", c.Dual.OutputFTR, outputFTRBands)
		return
	}

	switch c.Kind {
	case domain.KindILF, domain.KindEIF:
		boundary("det", c.DET, dataDETBands)
		boundary("ret", c.RET, dataRETBands)
	case domain.KindEI:
		boundary("det", c.DET, inputDETBands)
		boundary("ftr", c.FTR, inputFTRBands)
	case domain.KindEO, domain.KindEQ:
		boundary("det", c.DET, outputDETBands)
		boundary("ftr", c.FTR, outputFTRBands)
	}
}
