package facet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Vocabulary lists the accepted values per facet for strict validation.
// A facet with no entry accepts any value.
type Vocabulary map[Name][]string

func (v Vocabulary) accepts(name Name, value string) bool {
	allowed, ok := v[name]
	if !ok || len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, value) {
			return true
		}
	}
	return false
}

// Validate checks sel against vocab and reports every problem found.
// Compile does not call it: unchecked selections compile permissively.
func Validate(sel Selection, vocab Vocabulary) error {
	var errs []error

	if sel.gender != "" && !vocab.accepts(Gender, sel.gender) {
		errs = append(errs, fmt.Errorf("%s: unknown value %q", Gender, sel.gender))
	}
	if sel.hasBirthDecade && sel.birthDecade%decadeSpan != 0 {
		errs = append(errs, fmt.Errorf("%s: %d is not a decade boundary", BirthDecade, sel.birthDecade))
	}
	for _, v := range sel.makerCategories {
		if !vocab.accepts(MakerCategories, v) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q", MakerCategories, v))
		}
	}
	for _, v := range sel.jobTypes {
		if !vocab.accepts(JobTypes, v) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q", JobTypes, v))
		}
	}
	if sel.lastInitial != "" && !isSingleLetter(sel.lastInitial) {
		errs = append(errs, fmt.Errorf("%s: %q is not a single letter", LastInitial, sel.lastInitial))
	}
	for _, v := range sel.tags {
		if !vocab.accepts(Tags, v) {
			errs = append(errs, fmt.Errorf("%s: unknown value %q", Tags, v))
		}
	}

	return errors.Join(errs...)
}

func isSingleLetter(s string) bool {
	if utf8.RuneCountInString(s) != 1 {
		return false
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsLetter(r)
}
