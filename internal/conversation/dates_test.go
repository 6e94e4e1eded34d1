package conversation

import (
	"errors"
	"testing"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdinal(t *testing.T) {
	tests := map[int]string{
		0:   "0th",
		1:   "1st",
		2:   "2nd",
		3:   "3rd",
		4:   "4th",
		11:  "11th",
		12:  "12th",
		13:  "13th",
		21:  "21st",
		22:  "22nd",
		23:  "23rd",
		100: "100th",
		101: "101st",
		111: "111th",
		112: "112th",
	}

	for n, want := range tests {
		assert.Equal(t, want, Ordinal(n), "Ordinal(%d)", n)
	}
}

func TestParseBirthDate_FullDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		now     time.Time
		wantDOB string
		wantAge string
	}{
		{
			name:    "birthday not yet reached",
			input:   "12/05/2000",
			now:     time.Date(2026, time.May, 11, 9, 0, 0, 0, time.UTC),
			wantDOB: "May 12, 2000",
			wantAge: "25th",
		},
		{
			name:    "birthday today",
			input:   "12/05/2000",
			now:     time.Date(2026, time.May, 12, 9, 0, 0, 0, time.UTC),
			wantDOB: "May 12, 2000",
			wantAge: "26th",
		},
		{
			name:    "earlier month",
			input:   "12/05/2000",
			now:     time.Date(2026, time.January, 30, 9, 0, 0, 0, time.UTC),
			wantDOB: "May 12, 2000",
			wantAge: "25th",
		},
		{
			name:    "later month",
			input:   "01/03/2005",
			now:     time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC),
			wantDOB: "March 01, 2005",
			wantAge: "21st",
		},
		{
			name:    "single digit day and month",
			input:   " 3/4/1990 ",
			now:     time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC),
			wantDOB: "April 03, 1990",
			wantAge: "36th",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dob, age, err := ParseBirthDate(tt.input, tt.now)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDOB, dob)
			assert.Equal(t, tt.wantAge, age)
		})
	}
}

func TestParseBirthDate_DayMonthHasNoAge(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	for _, input := range []string{"12/05", "1/1", "31/12", "29/02"} {
		dob, age, err := ParseBirthDate(input, now)
		require.NoError(t, err, input)
		assert.NotEmpty(t, dob, input)
		assert.Empty(t, age, input)
	}

	dob, _, err := ParseBirthDate("12/05", now)
	require.NoError(t, err)
	assert.Equal(t, "May 12", dob)
}

func TestParseBirthDate_Invalid(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	for _, input := range []string{"hello", "31/02/2020", "2000-05-12", "12/13/2000", "", "12/05/20", "32/01"} {
		_, _, err := ParseBirthDate(input, now)
		assert.Error(t, err, input)
		assert.True(t, errors.Is(err, domain.ErrInvalidStepInput), input)
	}
}

func TestParseBirthDate_FutureRejected(t *testing.T) {
	now := time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

	_, _, err := ParseBirthDate("20/10/2026", now)
	assert.ErrorIs(t, err, domain.ErrInvalidStepInput)

	_, age, err := ParseBirthDate("19/10/2026", now)
	require.NoError(t, err)
	assert.Equal(t, "0th", age)
}
