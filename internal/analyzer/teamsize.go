package analyzer

import (
	"math"

	"github.com/scopeworks/fpoint/domain"
)

// TeamPlan holds the solved staffing and schedule for an estimate
type TeamPlan struct {
	// Effort after the schedule buffer
	BufferedEffortHours float64

	// Recommended staffing and the 80%-120% range around it
	RecommendedTeamSize int
	MinTeamSize         int
	MaxTeamSize         int

	// Schedule at the recommended size. The bounds re-solve the
	// schedule at the range edges: the larger team produces the
	// shorter duration.
	DurationMonths    float64
	MinDurationMonths float64
	MaxDurationMonths float64
}

// DurationMonthsForMagnitude returns the nominal schedule for a
// project of the given size in adjusted function points. Small
// projects do not parallelize well, so the schedule grows in steps
// rather than linearly.
func DurationMonthsForMagnitude(afp float64) float64 {
	switch {
	case afp < 100:
		return 1.5
	case afp < 300:
		return 3
	case afp < 750:
		return 6
	case afp < 1500:
		return 9
	default:
		return 12 + (afp-1500)/500
	}
}

// IdealTeamSizeRange returns the staffing band that experience
// suggests for a project of the given magnitude, independent of any
// effort arithmetic
func IdealTeamSizeRange(afp float64) (min, max int) {
	switch {
	case afp < 100:
		return 1, 2
	case afp < 300:
		return 2, 4
	case afp < 750:
		return 3, 6
	case afp < 1500:
		return 5, 9
	default:
		return 7, 12
	}
}

// monthlyHoursPerPerson is the capacity one person contributes per
// month at the given daily hours
func monthlyHoursPerPerson(hoursPerDay float64) float64 {
	return domain.WorkingDaysPerMonth * hoursPerDay
}

// teamSizeFor solves the staffing needed to burn the effort within
// the duration. Rounded to the nearest whole person, never below one.
func teamSizeFor(effortHours, durationMonths, hoursPerDay float64) int {
	raw := effortHours / (durationMonths * monthlyHoursPerPerson(hoursPerDay))
	size := int(math.Round(raw))
	if size < 1 {
		size = 1
	}
	return size
}

// durationFor solves the schedule a fixed team needs for the effort
func durationFor(effortHours float64, teamSize int, hoursPerDay float64) float64 {
	return effortHours / (float64(teamSize) * monthlyHoursPerPerson(hoursPerDay))
}

// SolveTeamPlan derives staffing and schedule from effort.
//
// The plan buffers the effort, fixes a duration (from the caller's
// constraint, from a fixed team size, or from the magnitude bands),
// and solves for the team. The returned range brackets the
// recommendation at 80% and 120%, floored at one person.
//
// afp may be zero only when a fixed duration or fixed team size
// pins the schedule; otherwise the magnitude bands need it.
func SolveTeamPlan(afp, effortHours, hoursPerDay, bufferPercent, fixedDurationMonths float64, fixedTeamSize int) (*TeamPlan, error) {
	if effortHours <= 0 {
		return nil, domain.NewInvalidInputError("effort hours must be positive", nil)
	}
	if hoursPerDay <= 0 {
		return nil, domain.NewInvalidInputError("hours per day must be positive", nil)
	}
	if fixedDurationMonths > 0 && fixedTeamSize > 0 {
		return nil, domain.NewInvalidInputError("fixed duration and fixed team size are mutually exclusive", nil)
	}

	buffered := effortHours * (1 + bufferPercent/100)

	plan := &TeamPlan{BufferedEffortHours: buffered}

	switch {
	case fixedTeamSize > 0:
		plan.RecommendedTeamSize = fixedTeamSize
		plan.DurationMonths = durationFor(buffered, fixedTeamSize, hoursPerDay)
	case fixedDurationMonths > 0:
		plan.DurationMonths = fixedDurationMonths
		plan.RecommendedTeamSize = teamSizeFor(buffered, fixedDurationMonths, hoursPerDay)
	default:
		if afp <= 0 {
			return nil, domain.NewInvalidInputError("adjusted function points are required to derive a schedule from project magnitude", nil)
		}
		plan.DurationMonths = DurationMonthsForMagnitude(afp)
		plan.RecommendedTeamSize = teamSizeFor(buffered, plan.DurationMonths, hoursPerDay)
	}

	plan.MinTeamSize = int(math.Floor(float64(plan.RecommendedTeamSize) * 0.8))
	if plan.MinTeamSize < 1 {
		plan.MinTeamSize = 1
	}
	plan.MaxTeamSize = int(math.Ceil(float64(plan.RecommendedTeamSize) * 1.2))

	plan.MinDurationMonths = durationFor(buffered, plan.MaxTeamSize, hoursPerDay)
	plan.MaxDurationMonths = durationFor(buffered, plan.MinTeamSize, hoursPerDay)

	return plan, nil
}
