package engine

import (
	"errors"
	"strconv"
	"strings"
	"unicode"

	"travelorbit/models"
)

// Validators fail closed: anything malformed is rejected so the state
// machine re-prompts instead of guessing intent.

var (
	errEmailShape      = errors.New("email must contain '@'")
	errPhoneTooShort   = errors.New("phone must have at least 10 digits")
	errPhoneNotNumeric = errors.New("phone may contain only digits after a leading '+'")
	errNameTooShort    = errors.New("name must be at least 2 characters")
	errCityTooShort    = errors.New("city must be at least 2 characters")
)

// ValidEmail applies the minimal shape check. Real deliverability is the
// auth collaborator's problem.
func ValidEmail(s string) bool {
	return strings.Contains(s, "@")
}

// NormalizePhone canonicalizes a phone number. Whitespace and dashes are
// stripped; fewer than 10 digits is rejected; exactly 10 bare digits get
// the default country code; anything longer keeps its digits and gains a
// leading '+' if missing.
func NormalizePhone(raw, defaultCountryCode string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' || r == '\t' {
			return -1
		}
		return r
	}, strings.TrimSpace(raw))

	digits := cleaned
	hasPlus := strings.HasPrefix(cleaned, "+")
	if hasPlus {
		digits = cleaned[1:]
	}
	for _, r := range digits {
		if !unicode.IsDigit(r) {
			return "", errPhoneNotNumeric
		}
	}
	if len(digits) < 10 {
		return "", errPhoneTooShort
	}
	if !hasPlus && len(digits) == 10 {
		return defaultCountryCode + digits, nil
	}
	if hasPlus {
		return cleaned, nil
	}
	return "+" + digits, nil
}

// ParseCount parses a whole number with a lower bound.
func ParseCount(s string, min int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, errors.New("not a whole number")
	}
	if n < min {
		return 0, errors.New("number too small")
	}
	return n, nil
}

// ParseCommaList splits a comma-separated answer, dropping empty entries,
// and requires at least minEntries survivors.
func ParseCommaList(s string, minEntries int) ([]string, error) {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) < minEntries {
		return nil, errors.New("not enough entries")
	}
	return out, nil
}

const defaultPassengerAge = 25

// ParsePassengerLine parses one "name, age, phone" line. In strict mode an
// unparsable age or phone rejects the line; in lenient mode the age falls
// back to a default adult age and the phone to empty, matching the behavior
// long-time users expect.
func ParsePassengerLine(line, defaultCountryCode string, strict bool) (models.Passenger, error) {
	parts := strings.Split(line, ",")
	name := strings.TrimSpace(parts[0])
	if len(name) < 2 {
		return models.Passenger{}, errNameTooShort
	}

	age := defaultPassengerAge
	if len(parts) > 1 {
		parsed, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		switch {
		case err == nil && parsed >= 1 && parsed <= 120:
			age = parsed
		case strict:
			return models.Passenger{}, errors.New("age must be a number between 1 and 120")
		}
	} else if strict {
		return models.Passenger{}, errors.New("age is required")
	}

	phone := ""
	if len(parts) > 2 {
		normalized, err := NormalizePhone(strings.TrimSpace(parts[2]), defaultCountryCode)
		switch {
		case err == nil:
			phone = normalized
		case strict:
			return models.Passenger{}, err
		}
	}

	role := "adult"
	if age < 18 {
		role = "child"
	}
	return models.Passenger{Name: name, Age: age, Phone: phone, Role: role}, nil
}

// ValidName requires a minimally plausible display name.
func ValidName(s string) error {
	if len(strings.TrimSpace(s)) < 2 {
		return errNameTooShort
	}
	return nil
}

// ValidCity requires a minimally plausible city answer.
func ValidCity(s string) error {
	if len(strings.TrimSpace(s)) < 2 {
		return errCityTooShort
	}
	return nil
}
