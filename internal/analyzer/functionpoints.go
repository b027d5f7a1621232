package analyzer

import (
	"fmt"

	"github.com/scopeworks/fpoint/domain"
)

// Function point weights from the IFPUG counting practices, indexed
// by complexity rank (low, average, high).
//
// Reference: IFPUG (2010). Function Point Counting Practices Manual,
// Release 4.3.1, Part 2.
var weightTable = map[domain.ComponentKind][3]int{
	domain.KindILF: {7, 10, 15},
	domain.KindEIF: {5, 7, 10},
	domain.KindEI:  {3, 4, 6},
	domain.KindEO:  {4, 5, 7},
	domain.KindEQ:  {3, 4, 6},
}

// WeightFor returns the unadjusted function point contribution of a
// component of the given kind and rating
func WeightFor(kind domain.ComponentKind, complexity domain.Complexity) (int, error) {
	weights, ok := weightTable[kind]
	if !ok {
		return 0, domain.NewUnknownKindError(string(kind))
	}
	rank := complexity.Rank()
	if rank < 0 {
		return 0, domain.NewCalculationError(fmt.Sprintf("invalid complexity rating: %s", complexity), nil)
	}
	return weights[rank], nil
}

// ComputeUFP sums the weighted contributions of classified components.
// An empty slice yields zero; there is nothing wrong with a count
// that has no components yet.
func ComputeUFP(ratings []Rating) int {
	total := 0
	for _, r := range ratings {
		total += r.Weight
	}
	return total
}

// ComputeVAF derives the value adjustment factor from the fourteen
// general system characteristics. The result always falls within
// [0.65, 1.35] for a valid vector.
func ComputeVAF(gsc domain.GSCVector) (float64, error) {
	if err := gsc.Validate(); err != nil {
		return 0, err
	}
	return domain.VAFBase + domain.VAFStep*float64(gsc.TotalInfluence()), nil
}

// ComputeAFP applies the value adjustment factor to the unadjusted count
func ComputeAFP(ufp int, vaf float64) float64 {
	return float64(ufp) * vaf
}

// ComputeEffort converts adjusted function points to person-hours.
// The productivity factor is organization specific and must always be
// supplied; there is no defensible universal default.
func ComputeEffort(afp, productivityFactor float64) (float64, error) {
	if productivityFactor <= 0 {
		return 0, domain.NewInvalidInputError("productivity factor must be positive", nil)
	}
	return afp * productivityFactor, nil
}
