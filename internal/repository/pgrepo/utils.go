package pgrepo

import (
	"fmt"
	"math"
)

// safeConvertUintToInt64 converts val to int64 and fails when it does not fit.
func safeConvertUintToInt64(val uint) (int64, error) {
	if uint64(val) > uint64(math.MaxInt64) {
		return 0, fmt.Errorf("value is out of range: %d", val)
	}
	return int64(val), nil
}
