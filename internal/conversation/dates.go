package conversation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Rrens/birthday-builder/internal/domain"
)

const (
	fullDateLayout  = "2/1/2006"
	dayMonthLayout  = "2/1"
	fullDateDisplay = "January 02, 2006"
	dayMonthDisplay = "January 02"
)

// ParseBirthDate accepts DD/MM/YYYY or DD/MM.
// A full date yields the display date and the ordinal age at now; a day and month yields no age.
func ParseBirthDate(text string, now time.Time) (dobText string, ageText string, err error) {
	text = strings.TrimSpace(text)

	if born, perr := time.Parse(fullDateLayout, text); perr == nil {
		age := AgeAt(born, now)
		if age < 0 {
			return "", "", fmt.Errorf("%w: birth date %q is in the future", domain.ErrInvalidStepInput, text)
		}
		return born.Format(fullDateDisplay), Ordinal(age), nil
	}

	if born, perr := time.Parse(dayMonthLayout, text); perr == nil {
		return born.Format(dayMonthDisplay), "", nil
	}

	return "", "", fmt.Errorf("%w: unrecognized date %q", domain.ErrInvalidStepInput, text)
}

// AgeAt returns completed years between born and now
func AgeAt(born, now time.Time) int {
	age := now.Year() - born.Year()
	if now.Month() < born.Month() || (now.Month() == born.Month() && now.Day() < born.Day()) {
		age--
	}
	return age
}

// Ordinal formats n with its English suffix (1st, 2nd, 11th, 21st)
func Ordinal(n int) string {
	suffix := "th"
	if mod := n % 100; mod < 11 || mod > 13 {
		switch n % 10 {
		case 1:
			suffix = "st"
		case 2:
			suffix = "nd"
		case 3:
			suffix = "rd"
		}
	}
	return strconv.Itoa(n) + suffix
}
