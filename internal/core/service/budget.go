package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"crackInsightBackend/internal/core/domain"
)

// ParseTimeBudget accepts a Go duration ("24h", "1h30m") or a plain number
// of seconds and returns seconds. Negative budgets are rejected; zero is a
// valid, empty budget.
func ParseTimeBudget(value string) (float64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, fmt.Errorf("%w: empty budget", domain.ErrInvalidBudget)
	}

	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		d, durErr := time.ParseDuration(value)
		if durErr != nil {
			return 0, fmt.Errorf("%w: %q is neither seconds nor a duration", domain.ErrInvalidBudget, value)
		}
		seconds = d.Seconds()
	}

	if seconds < 0 || math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return 0, fmt.Errorf("%w: %q is out of range", domain.ErrInvalidBudget, value)
	}
	return seconds, nil
}

// GigahashToHz converts a GH/s figure to candidates per second.
func GigahashToHz(ghs float64) float64 {
	return ghs * domain.HashratePerGigahash
}
