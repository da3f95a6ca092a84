package validation

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"dopc/internal/domain"
)

// MaxCartValue is the largest accepted cart value in minor units.
const MaxCartValue = math.MaxInt32

var (
	errCartValue = errors.New("cart value must be a non-negative number")
	errCartLimit = errors.New("cart value is too large")
	errLatitude  = errors.New("latitude must be between -90 and 90")
	errLongitude = errors.New("longitude must be between -180 and 180")
)

// CartValueMajor parses a cart value typed in major currency units ("20",
// "12.5") and returns it in minor units.
func CartValueMajor(raw string) (int, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, domain.WrapErrorf(errCartValue, domain.ErrInvalidInput, "invalid cart value %q", raw)
	}
	minor := math.Round(v * 100)
	if minor > MaxCartValue {
		return 0, domain.WrapErrorf(errCartLimit, domain.ErrInvalidInput, "cart value %q exceeds %d minor units", raw, MaxCartValue)
	}
	return int(minor), nil
}

// CartValueMinor parses a cart value already in minor units.
func CartValueMinor(raw string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v < 0 {
		return 0, domain.WrapErrorf(errCartValue, domain.ErrInvalidInput, "invalid cart value %q", raw)
	}
	if v > MaxCartValue {
		return 0, domain.WrapErrorf(errCartLimit, domain.ErrInvalidInput, "cart value %q exceeds %d minor units", raw, MaxCartValue)
	}
	return v, nil
}

func Latitude(raw string) (float64, error) {
	return parseDegrees(raw, 90, errLatitude)
}

func Longitude(raw string) (float64, error) {
	return parseDegrees(raw, 180, errLongitude)
}

func parseDegrees(raw string, limit float64, rangeErr error) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || v < -limit || v > limit {
		return 0, domain.WrapErrorf(rangeErr, domain.ErrInvalidInput, "invalid coordinate %q", raw)
	}
	return v, nil
}
