package usecase

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"intervals-icu-mcp/internal/adapter/outbound/icu"
	"intervals-icu-mcp/internal/domain"
)

// Overridable for date-window tests.
var timeNow = time.Now

const dateLayout = "2006-01-02"

// put helpers mirror the envelope's optional-field convention: a zero value
// means "not measured" and the key is left out.

func putF(m map[string]any, key string, v float64) {
	if v != 0 {
		m[key] = v
	}
}

func putI(m map[string]any, key string, v int) {
	if v != 0 {
		m[key] = v
	}
}

func putS(m map[string]any, key, v string) {
	if v != "" {
		m[key] = v
	}
}

// putF1 and putF0 round to one and zero decimals before storing.
func putF1(m map[string]any, key string, v float64) {
	if v != 0 {
		m[key] = round1(v)
	}
}

func putF0(m map[string]any, key string, v float64) {
	if v != 0 {
		m[key] = math.Round(v)
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Pointer unwrappers for fields where the API distinguishes absent from zero.

func intv(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func boolv(p *bool) bool {
	return p != nil && *p
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// validDate reports whether s is a YYYY-MM-DD date.
func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}

// resolvePeriod turns the daysBack/timePeriod pair into an oldest date (empty
// for all-time) and a period label. daysBack takes precedence when >= 0; with
// neither set the window defaults to 90 days. ok is false for an unknown
// time_period value.
func resolvePeriod(daysBack int, timePeriod string) (oldest, label string, ok bool) {
	switch {
	case daysBack >= 0:
		return timeNow().AddDate(0, 0, -daysBack).Format(dateLayout), fmt.Sprintf("%d_days", daysBack), true
	case timePeriod != "":
		switch strings.ToLower(timePeriod) {
		case "week":
			return timeNow().AddDate(0, 0, -7).Format(dateLayout), "week", true
		case "month":
			return timeNow().AddDate(0, 0, -30).Format(dateLayout), "month", true
		case "year":
			return timeNow().AddDate(0, 0, -365).Format(dateLayout), "year", true
		case "all":
			return "", "all_time", true
		default:
			return "", "", false
		}
	default:
		return timeNow().AddDate(0, 0, -90).Format(dateLayout), "90_days", true
	}
}

const invalidPeriodMessage = "Invalid time_period. Use 'week', 'month', 'year', or 'all'"

// apiErrorResponse renders an upstream failure: API errors keep the upstream
// message verbatim, anything else becomes an internal_error.
func apiErrorResponse(err error, suggestions ...string) string {
	var apiErr *icu.APIError
	if errors.As(err, &apiErr) {
		return domain.ErrorResponse{
			Message:     apiErr.Message,
			Kind:        domain.ErrAPI,
			Suggestions: suggestions,
		}.Build()
	}
	return domain.ErrorResponse{
		Message: "Unexpected error: " + err.Error(),
		Kind:    domain.ErrInternal,
	}.Build()
}

func validationError(msg string) string {
	return domain.ErrorResponse{Message: msg, Kind: domain.ErrValidation}.Build()
}
