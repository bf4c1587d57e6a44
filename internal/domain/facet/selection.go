package facet

import "strings"

// Name identifies a facet dimension. Names double as keys of forced facet configuration.
type Name string

// Facet names.
const (
	Gender          Name = "gender"
	BirthDecade     Name = "birth_decade"
	MakerCategories Name = "maker_categories"
	JobTypes        Name = "job_types"
	LastInitial     Name = "last_initial"
	ParentBiography Name = "parent_biography"
	Tags            Name = "tags"
)

// Order is the fixed evaluation order of facets in a compiled filter.
var Order = []Name{Gender, BirthDecade, MakerCategories, JobTypes, LastInitial, ParentBiography, Tags}

// IsValid reports whether n is a known facet.
func (n Name) IsValid() bool {
	for _, o := range Order {
		if o == n {
			return true
		}
	}
	return false
}

// Selection is an immutable set of independent, optional facet criteria.
// Every field is either unset or non-empty after trimming.
type Selection struct {
	gender          string
	birthDecade     int
	hasBirthDecade  bool
	makerCategories []string
	jobTypes        []string
	lastInitial     string
	parentBiography string
	tags            []string
}

// WithGender returns a copy with the gender set. Blank clears it.
func (s Selection) WithGender(v string) Selection {
	s.gender = strings.TrimSpace(v)
	return s
}

// WithBirthDecade returns a copy with the birth decade start year set.
// The year is not checked to be a decade boundary.
func (s Selection) WithBirthDecade(year int) Selection {
	s.birthDecade = year
	s.hasBirthDecade = true
	return s
}

// WithoutBirthDecade returns a copy with the birth decade cleared.
func (s Selection) WithoutBirthDecade() Selection {
	s.birthDecade = 0
	s.hasBirthDecade = false
	return s
}

// WithMakerCategories returns a copy with the maker categories set. Blank values are dropped.
func (s Selection) WithMakerCategories(values ...string) Selection {
	s.makerCategories = cleanList(values)
	return s
}

// WithJobTypes returns a copy with the job types set. Blank values are dropped.
func (s Selection) WithJobTypes(values ...string) Selection {
	s.jobTypes = cleanList(values)
	return s
}

// WithLastInitial returns a copy with the last-name initial set. Blank clears it.
func (s Selection) WithLastInitial(v string) Selection {
	s.lastInitial = strings.TrimSpace(v)
	return s
}

// WithParentBiography returns a copy scoped to one parent biography. Blank clears it.
func (s Selection) WithParentBiography(id string) Selection {
	s.parentBiography = strings.TrimSpace(id)
	return s
}

// WithTags returns a copy with the tags set. Blank values are dropped.
func (s Selection) WithTags(values ...string) Selection {
	s.tags = cleanList(values)
	return s
}

// Gender returns the gender, or "".
func (s Selection) Gender() string { return s.gender }

// BirthDecade returns the decade start year and whether it is set.
func (s Selection) BirthDecade() (int, bool) { return s.birthDecade, s.hasBirthDecade }

// MakerCategories returns the selected maker categories.
func (s Selection) MakerCategories() []string { return s.makerCategories }

// JobTypes returns the selected job types.
func (s Selection) JobTypes() []string { return s.jobTypes }

// LastInitial returns the last-name initial, or "".
func (s Selection) LastInitial() string { return s.lastInitial }

// ParentBiography returns the parent biography ID, or "".
func (s Selection) ParentBiography() string { return s.parentBiography }

// Tags returns the selected tags.
func (s Selection) Tags() []string { return s.tags }

// IsEmpty reports whether no facet is set.
func (s Selection) IsEmpty() bool {
	return s.gender == "" && !s.hasBirthDecade &&
		len(s.makerCategories) == 0 && len(s.jobTypes) == 0 &&
		s.lastInitial == "" && s.parentBiography == "" && len(s.tags) == 0
}

// SplitList splits a comma-separated parameter into trimmed, non-empty values.
func SplitList(csv string) []string {
	if strings.TrimSpace(csv) == "" {
		return nil
	}
	return cleanList(strings.Split(csv, ","))
}

func cleanList(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
