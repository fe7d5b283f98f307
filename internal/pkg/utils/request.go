package utils

import (
	"availability-service/internal/pkg/exceptions"
	"fmt"
	"net/http"
	"strconv"
	"strings"
)

// ParseQueryInt returns defaultValue when the param is absent.
func ParseQueryInt(r *http.Request, param string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, exceptions.ErrInvalidQueryParam(err, param)
	}
	return value, nil
}

// ParseQueryIntInRange is ParseQueryInt rejecting values outside [lower, upper].
func ParseQueryIntInRange(r *http.Request, param string, defaultValue, lower, upper int) (int, error) {
	value, err := ParseQueryInt(r, param, defaultValue)
	if err != nil {
		return 0, err
	}
	if value < lower || value > upper {
		return 0, exceptions.ErrInvalidQueryParam(fmt.Errorf("%d outside of %d..%d", value, lower, upper), param)
	}
	return value, nil
}

// ParseQueryIntList parses a comma separated list such as "0,3,4".
func ParseQueryIntList(r *http.Request, param string) ([]int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(param))
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	out := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, err := strconv.Atoi(part)
		if err != nil {
			return nil, exceptions.ErrInvalidQueryParam(err, param)
		}
		out = append(out, value)
	}
	return out, nil
}
