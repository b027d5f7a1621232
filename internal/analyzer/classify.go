package analyzer

import (
	"github.com/scopeworks/fpoint/domain"
)

// complexityMatrix maps banded counts to a rating. Rows are reference
// bands (RET or FTR), columns are DET bands.
type complexityMatrix [3][3]domain.Complexity

// bandBounds holds the inclusive upper edge of the first two bands.
// Counts above the second edge fall into the third, open-ended band.
type bandBounds [2]int

// Band edges from the IFPUG complexity tables.
//
// Data functions (ILF, EIF):  RET 1 | 2-5 | ≥6,  DET 1-19 | 20-50 | ≥51
// External inputs (EI):       FTR 0-1 | 2 | ≥3,  DET 1-4  | 5-15  | ≥16
// Outputs and inquiries:      FTR 0-1 | 2-3 | ≥4, DET 1-5 | 6-19  | ≥20
var (
	dataRETBands = bandBounds{1, 5}
	dataDETBands = bandBounds{19, 50}

	inputFTRBands = bandBounds{1, 2}
	inputDETBands = bandBounds{4, 15}

	outputFTRBands = bandBounds{1, 3}
	outputDETBands = bandBounds{5, 19}
)

// The rating tables, transcribed cell by cell so each can be checked
// against its published counterpart.
var (
	// ILF and EIF share one table
	dataMatrix = complexityMatrix{
		{domain.ComplexityLow, domain.ComplexityLow, domain.ComplexityAverage},
		{domain.ComplexityLow, domain.ComplexityAverage, domain.ComplexityHigh},
		{domain.ComplexityAverage, domain.ComplexityHigh, domain.ComplexityHigh},
	}

	// The EI table deviates from CPM 4.3.1 in one cell: FTR 0-1
	// with DET 5-15 rates average, not low.
	inputMatrix = complexityMatrix{
		{domain.ComplexityLow, domain.ComplexityAverage, domain.ComplexityAverage},
		{domain.ComplexityLow, domain.ComplexityAverage, domain.ComplexityHigh},
		{domain.ComplexityAverage, domain.ComplexityHigh, domain.ComplexityHigh},
	}

	// EO and EQ share one table
	outputMatrix = complexityMatrix{
		{domain.ComplexityLow, domain.ComplexityLow, domain.ComplexityAverage},
		{domain.ComplexityLow, domain.ComplexityAverage, domain.ComplexityHigh},
		{domain.ComplexityAverage, domain.ComplexityHigh, domain.ComplexityHigh},
	}
)

// bandIndex returns the band a count falls into
func bandIndex(n int, bounds bandBounds) int {
	switch {
	case n <= bounds[0]:
		return 0
	case n <= bounds[1]:
		return 1
	default:
		return 2
	}
}

// onBandEdge reports whether re-counting a single element either way
// would move the count into a different band
func onBandEdge(n int, bounds bandBounds) bool {
	idx := bandIndex(n, bounds)
	return bandIndex(n+1, bounds) != idx || (n > 0 && bandIndex(n-1, bounds) != idx)
}

// Classify rates a component's counts against the IFPUG table for its
// kind. primary is the RET count for data functions and the FTR count
// for transactional functions.
func Classify(kind domain.ComponentKind, primary, det int) (domain.Complexity, error) {
	switch kind {
	case domain.KindILF, domain.KindEIF:
		return dataMatrix[bandIndex(primary, dataRETBands)][bandIndex(det, dataDETBands)], nil
	case domain.KindEI:
		return inputMatrix[bandIndex(primary, inputFTRBands)][bandIndex(det, inputDETBands)], nil
	case domain.KindEO, domain.KindEQ:
		return outputMatrix[bandIndex(primary, outputFTRBands)][bandIndex(det, outputDETBands)], nil
	default:
		return "", domain.NewUnknownKindError(string(kind))
	}
}

// Rating holds the classification outcome for one component
type Rating struct {
	Complexity domain.Complexity
	Weight     int

	// Per-side ratings, populated for dual-count inquiries
	InputRating  domain.Complexity
	OutputRating domain.Complexity
}

// ClassifyComponent rates a component and resolves its weight.
//
// A dual-count inquiry is rated twice: the input side against the EI
// table and the output side against the EO table. Both ratings are
// priced through the EQ weight row and the more expensive side
// determines the component's contribution.
func ClassifyComponent(c domain.Component) (*Rating, error) {
	if c.UsesDualCount() {
		return classifyDualInquiry(c)
	}

	primary := c.FTR
	if c.Kind.IsDataFunction() {
		primary = c.RET
	}

	complexity, err := Classify(c.Kind, primary, c.DET)
	if err != nil {
		return nil, err
	}
	weight, err := WeightFor(c.Kind, complexity)
	if err != nil {
		return nil, err
	}
	return &Rating{Complexity: complexity, Weight: weight}, nil
}

func classifyDualInquiry(c domain.Component) (*Rating, error) {
	inputRating, err := Classify(domain.KindEI, c.Dual.InputFTR, c.Dual.InputDET)
	if err != nil {
		return nil, err
	}
	outputRating, err := Classify(domain.KindEO, c.Dual.OutputFTR, c.Dual.OutputDET)
	if err != nil {
		return nil, err
	}

	inputWeight, err := WeightFor(domain.KindEQ, inputRating)
	if err != nil {
		return nil, err
	}
	outputWeight, err := WeightFor(domain.KindEQ, outputRating)
	if err != nil {
		return nil, err
	}

	rating := &Rating{
		InputRating:  inputRating,
		OutputRating: outputRating,
	}
	if inputWeight > outputWeight {
		rating.Complexity = inputRating
		rating.Weight = inputWeight
	} else {
		rating.Complexity = outputRating
		rating.Weight = outputWeight
	}
	return rating, nil
}
