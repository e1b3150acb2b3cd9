// Package seqnum implements the journal number format: an 8-digit YYYYMMDD
// date prefix followed by a 7-digit zero-padded per-date sequence, 15 ASCII
// digits in total.
package seqnum

import (
	"fmt"
	"strconv"
	"time"
)

const (
	// PrefixLen is the length of the YYYYMMDD date prefix.
	PrefixLen = 8
	// SeqLen is the length of the zero-padded sequence part.
	SeqLen = 7
	// NumberLen is the total journal number length.
	NumberLen = PrefixLen + SeqLen
	// MaxSequence is the largest sequence representable in SeqLen digits.
	// Allocation past this fails closed; there is no extended format.
	MaxSequence = int64(9999999)

	prefixLayout = "20060102"
)

// DatePrefix formats a date as its YYYYMMDD journal number prefix.
func DatePrefix(date time.Time) string {
	return date.Format(prefixLayout)
}

// Format builds a journal number from a date and a sequence value.
func Format(date time.Time, seq int64) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("sequence %d out of range 1..%d", seq, MaxSequence)
	}
	return fmt.Sprintf("%s%0*d", DatePrefix(date), SeqLen, seq), nil
}

// Parse splits a journal number into its date and sequence parts.
func Parse(number string) (time.Time, int64, error) {
	if !Valid(number) {
		return time.Time{}, 0, fmt.Errorf("malformed journal number %q", number)
	}
	date, err := time.Parse(prefixLayout, number[:PrefixLen])
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed journal number %q: %w", number, err)
	}
	seq, err := strconv.ParseInt(number[PrefixLen:], 10, 64)
	if err != nil {
		return time.Time{}, 0, fmt.Errorf("malformed journal number %q: %w", number, err)
	}
	return date, seq, nil
}

// Valid reports whether number is exactly 15 ASCII digits with a parseable
// date prefix and a non-zero sequence.
func Valid(number string) bool {
	if len(number) != NumberLen {
		return false
	}
	for _, c := range number {
		if c < '0' || c > '9' {
			return false
		}
	}
	if _, err := time.Parse(prefixLayout, number[:PrefixLen]); err != nil {
		return false
	}
	return number[PrefixLen:] != "0000000"
}
