// Package validate holds the name/ASCII/length validation rules
// shared by every constructor in pkg/model. The helpers take no
// strictness argument; callers decide which of them apply under each
// model.Strictness.
package validate

import (
	"fmt"
	"regexp"
)

// NamePattern is the SAS identifier pattern shared by dataset and
// variable names: a letter or underscore, followed by up to seven
// letters, digits, or underscores.
var NamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]{0,7}$`)

// Name validates a dataset or variable name against NamePattern,
// returning the documented message on failure. kind is either
// "dataset" or "variable", matching the message text in spec.md §4.5.
func Name(kind, name string) error {
	if !NamePattern.MatchString(name) {
		return fmt.Errorf("%s name is illegal for SAS", kind)
	}
	return nil
}

// ASCII reports whether s contains only 7-bit ASCII bytes.
func ASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 0x7F {
			return false
		}
	}
	return true
}

// MaxLen validates that s is no longer than max bytes, returning an
// error naming field on failure.
func MaxLen(field, s string, max int) error {
	if len(s) > max {
		return fmt.Errorf("%s must not exceed %d characters", field, max)
	}
	return nil
}

// RequireASCII validates that s is ASCII, returning an error naming
// field on failure. Intended for use only under FDA strictness.
func RequireASCII(field, s string) error {
	if !ASCII(s) {
		return fmt.Errorf("%s must be ASCII", field)
	}
	return nil
}
