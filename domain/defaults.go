package domain

// ============================================================================
// Value Adjustment Factor Constants
// ============================================================================

// VAF formula constants from the IFPUG counting practices.
// The adjustment factor scales the unadjusted count by up to ±35%
// based on fourteen general system characteristics.
//
// References:
// - IFPUG (2010). Function Point Counting Practices Manual, Release 4.3.1
// - Albrecht, A.J. (1979). Measuring Application Development Productivity
const (
	// MinGSCDegree is the lowest degree of influence a characteristic can have.
	// 0 means the characteristic is not present or has no influence.
	MinGSCDegree = 0

	// MaxGSCDegree is the highest degree of influence a characteristic can have.
	// 5 means the characteristic has strong influence throughout the system.
	MaxGSCDegree = 5

	// VAFBase is the adjustment factor when all characteristics are absent.
	VAFBase = 0.65

	// VAFStep is the adjustment contributed by each degree of influence.
	VAFStep = 0.01

	// MinVAF is the lower bound of the adjustment factor (total influence 0).
	MinVAF = 0.65

	// MaxVAF is the upper bound of the adjustment factor (total influence 70).
	MaxVAF = 1.35
)

// ============================================================================
// Estimation Defaults
// ============================================================================

const (
	// WorkingDaysPerMonth is the fixed calendar assumption used when
	// converting effort to schedule. Not configurable.
	WorkingDaysPerMonth = 21

	// DefaultBufferPercent is the schedule buffer applied to raw effort.
	// Covers meetings, rework, and coordination overhead.
	DefaultBufferPercent = 20.0

	// DefaultHoursPerDay is the productive hours assumed per person per
	// working day. Six of eight hours reflects common industry planning
	// practice; organizations override it in configuration.
	DefaultHoursPerDay = 6.0
)

// ============================================================================
// Validation Defaults
// ============================================================================

const (
	// DefaultEQDETCeiling is the maximum combined input and output DET
	// count accepted for a dual-count inquiry before validation fails.
	DefaultEQDETCeiling = 100

	// MaxReasonableDET is the data element count above which a component
	// is flagged as suspicious. Counts this large usually mean unrelated
	// elements were merged into one component.
	MaxReasonableDET = 1000

	// MaxReasonableRET is the record element count above which a data
	// function is flagged as suspicious.
	MaxReasonableRET = 200

	// MaxReasonableFTR is the file-type-referenced count above which a
	// transactional function is flagged as suspicious.
	MaxReasonableFTR = 100
)

// ============================================================================
// Trend Analysis Defaults
// ============================================================================

const (
	// DefaultStableThresholdPercent is the band around zero change within
	// which a metric movement is classified as stable.
	DefaultStableThresholdPercent = 1.0
)

// ============================================================================
// Performance Defaults
// ============================================================================

const (
	// DefaultMaxGoroutines is the default number of concurrent goroutines.
	DefaultMaxGoroutines = 4

	// DefaultTimeoutSeconds is the default timeout in seconds for batch runs.
	DefaultTimeoutSeconds = 300
)
