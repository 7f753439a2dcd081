package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/hospinv/hospinv-backend/pkg/errors"
)

// ParseQueryInt64 reads a numeric query or path value and range-checks it.
func ParseQueryInt64(raw, field string) (int64, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "parameter is required").WithDetails(map[string]any{"field": field})
	}
	value, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "parameter must be numeric").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}

// QueryString returns a trimmed query parameter, empty when absent.
func QueryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

// QueryDate returns a query parameter validated as a YYYY-MM-DD date, or
// empty when absent.
func QueryDate(r *http.Request, key string) (string, error) {
	raw := QueryString(r, key)
	if raw == "" {
		return "", nil
	}
	if !isDateOnly(raw) {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "parameter must be a YYYY-MM-DD date").WithDetails(map[string]any{"field": key})
	}
	return raw, nil
}

func isDateOnly(value string) bool {
	if len(value) != 10 || value[4] != '-' || value[7] != '-' {
		return false
	}
	for i, ch := range value {
		if i == 4 || i == 7 {
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}
	return true
}
