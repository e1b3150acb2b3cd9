package seqnum_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kicho-app/kicho_backend/internal/utils/seqnum"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDatePrefix(t *testing.T) {
	assert.Equal(t, "20260115", seqnum.DatePrefix(date(2026, time.January, 15)))
	assert.Equal(t, "20261231", seqnum.DatePrefix(date(2026, time.December, 31)))
}

func TestFormat(t *testing.T) {
	number, err := seqnum.Format(date(2026, time.January, 15), 1)
	require.NoError(t, err)
	assert.Equal(t, "202601150000001", number)
	assert.Len(t, number, seqnum.NumberLen)

	number, err = seqnum.Format(date(2026, time.January, 15), 42)
	require.NoError(t, err)
	assert.Equal(t, "202601150000042", number)

	number, err = seqnum.Format(date(2026, time.January, 15), seqnum.MaxSequence)
	require.NoError(t, err)
	assert.Equal(t, "202601159999999", number)
}

func TestFormat_OutOfRange(t *testing.T) {
	_, err := seqnum.Format(date(2026, time.January, 15), 0)
	assert.Error(t, err)

	_, err = seqnum.Format(date(2026, time.January, 15), seqnum.MaxSequence+1)
	assert.Error(t, err)
}

func TestParse(t *testing.T) {
	parsed, seq, err := seqnum.Parse("202601150000042")
	require.NoError(t, err)
	assert.Equal(t, date(2026, time.January, 15), parsed)
	assert.Equal(t, int64(42), seq)
}

func TestParse_Malformed(t *testing.T) {
	cases := []string{
		"",
		"20260115000001",    // too short
		"2026011500000012",  // too long
		"20260115000000x",   // non-digit
		"202613150000001",   // month 13
		"202601150000000",   // sequence zero
	}
	for _, number := range cases {
		_, _, err := seqnum.Parse(number)
		assert.Error(t, err, "expected %q to be rejected", number)
	}
}

func TestValid(t *testing.T) {
	assert.True(t, seqnum.Valid("202601150000001"))
	assert.True(t, seqnum.Valid("202601159999999"))
	assert.False(t, seqnum.Valid("202601150000000"))
	assert.False(t, seqnum.Valid("20260115000001"))
	assert.False(t, seqnum.Valid("abc601150000001"))
}
