package util

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
)

var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path identifier. Only positive base-10 integers are ids.
func ParseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)

	if err != nil || id < 1 {
		return 0, ErrInvalidID
	}

	return id, nil
}

// PositiveIntegers keeps the JSON values that are positive integral numbers,
// in input order. Strings, booleans, null, fractions and non-positive
// numbers are dropped; 3.0 counts as the integer 3.
func PositiveIntegers(values []json.RawMessage) []int64 {
	ids := make([]int64, 0, len(values))

	for _, raw := range values {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()

		var v any
		if err := dec.Decode(&v); err != nil {
			continue
		}

		num, ok := v.(json.Number)
		if !ok {
			continue
		}

		if n, err := num.Int64(); err == nil {
			if n > 0 {
				ids = append(ids, n)
			}
			continue
		}

		f, err := num.Float64()
		if err != nil || f != math.Trunc(f) || f < 1 || f >= math.MaxInt64 {
			continue
		}

		ids = append(ids, int64(f))
	}

	return ids
}
