package domain

type MaskToken string
type CharsetClass string
type SortMode string
type HashrateSource string
type JobStatus string
type ViewMode string

const (
	// Mask tokens
	TokenLower   MaskToken = "?l"
	TokenUpper   MaskToken = "?u"
	TokenDigit   MaskToken = "?d"
	TokenSpecial MaskToken = "?s"
	TokenBlank   MaskToken = "?b"

	// Charset buckets
	CharsetNumeric       CharsetClass = "Numeric"
	CharsetLowerAlpha    CharsetClass = "Lower Alpha"
	CharsetMixedAlpha    CharsetClass = "Mixed Alpha"
	CharsetMixedAlphaNum CharsetClass = "Mixed Alpha-Num"
	CharsetFullComplex   CharsetClass = "Full Complex"

	// Mask ordering
	SortByOccurrence SortMode = "occurrence"
	SortByOptIndex   SortMode = "optindex"

	// Hashrate provenance
	SourceManual      HashrateSource = "manual"
	SourceBruteforce  HashrateSource = "bruteforce"
	SourceCompensated HashrateSource = "compensated"

	// Job status
	StatusPending  JobStatus = "PENDING"
	StatusRunning  JobStatus = "RUNNING"
	StatusComplete JobStatus = "COMPLETE"
	StatusFailed   JobStatus = "FAILED"

	// View modes
	ViewLive     ViewMode = "LIVE"
	ViewSnapshot ViewMode = "SNAPSHOT"
)

// AttackModeBruteForce is hashcat's -a 3.
const AttackModeBruteForce = 3

const (
	DefaultThroughputHz   = 1e9
	DefaultHashrateGHs    = 10.0
	CompensationFactor    = 1.4
	MaxMaskStats          = 1000
	MaxPasswords          = 50
	MaxBaseWords          = 50
	MaxAffixes            = 20
	MinBaseWordRootLength = 4
	HashratePerGigahash   = 1e9
	EntropyPoolLower      = 26
	EntropyPoolUpper      = 26
	EntropyPoolDigit      = 10
	EntropyPoolOther      = 32
)

// CharsetClasses lists the charset buckets in display order.
var CharsetClasses = []CharsetClass{
	CharsetNumeric,
	CharsetLowerAlpha,
	CharsetMixedAlpha,
	CharsetMixedAlphaNum,
	CharsetFullComplex,
}

func (s SortMode) Valid() bool {
	return s == SortByOccurrence || s == SortByOptIndex
}

type AnalysisError string

const (
	ErrInvalidThroughput AnalysisError = "INVALID_THROUGHPUT"
	ErrInvalidBudget     AnalysisError = "INVALID_BUDGET"
	ErrInvalidSortMode   AnalysisError = "INVALID_SORT_MODE"
	ErrJobNotFound       AnalysisError = "JOB_NOT_FOUND"
	ErrSnapshotNotFound  AnalysisError = "SNAPSHOT_NOT_FOUND"
	ErrNoResult          AnalysisError = "NO_RESULT"
)

func (e AnalysisError) Error() string {
	return string(e)
}
