// Package facet compiles facet selections into the remote index's boolean filter grammar.
package facet

import (
	"fmt"
	"strconv"

	"github.com/kailas-cloud/biosearch/internal/domain/search/odata"
)

// Index field names the facets compile against.
const (
	FieldGender          = "gender"
	FieldBirthYear       = "birthYear"
	FieldMakerCategories = "makerCategories"
	FieldJobTypes        = "jobTypes"
	FieldLastInitial     = "lastInitial"
	FieldBiographyID     = "biographyId"
	FieldTags            = "tags"
)

// decadeSpan is the width of a birth-decade bucket.
const decadeSpan = 10

// Compiler turns facet selections into filter expressions.
// Forced constraints are applied to every filter ahead of the caller's selection.
type Compiler struct {
	forced Selection
}

// NewCompiler creates a compiler. forced maps facet names to fixed values;
// list facets accept comma-separated values.
func NewCompiler(forced map[Name]string) (*Compiler, error) {
	var sel Selection
	for name, value := range forced {
		switch name {
		case Gender:
			sel = sel.WithGender(value)
		case BirthDecade:
			year, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("forced facet %s: %q is not a year", name, value)
			}
			sel = sel.WithBirthDecade(year)
		case MakerCategories:
			sel = sel.WithMakerCategories(SplitList(value)...)
		case JobTypes:
			sel = sel.WithJobTypes(SplitList(value)...)
		case LastInitial:
			sel = sel.WithLastInitial(value)
		case ParentBiography:
			sel = sel.WithParentBiography(value)
		case Tags:
			sel = sel.WithTags(SplitList(value)...)
		default:
			return nil, fmt.Errorf("unknown forced facet %q", name)
		}
	}
	return &Compiler{forced: sel}, nil
}

// Forced returns the forced constraints.
func (c *Compiler) Forced() Selection { return c.forced }

// Compile returns the conjunction of the forced constraints and every facet set in sel,
// or "" when nothing is set. It never fails: blank values contribute nothing.
func (c *Compiler) Compile(sel Selection) string {
	return odata.And(Compile(c.forced), Compile(sel))
}

// Compile renders sel alone in the fixed facet order. Returns "" for an empty selection.
func Compile(sel Selection) string {
	parts := make([]string, 0, len(Order))
	for _, name := range Order {
		parts = append(parts, compileFacet(sel, name))
	}
	return odata.And(parts...)
}

func compileFacet(sel Selection, name Name) string {
	switch name {
	case Gender:
		if sel.gender == "" {
			return ""
		}
		return odata.Eq(FieldGender, sel.gender)
	case BirthDecade:
		if !sel.hasBirthDecade {
			return ""
		}
		return odata.And(
			odata.CompareInt(FieldBirthYear, odata.OpGe, sel.birthDecade),
			odata.CompareInt(FieldBirthYear, odata.OpLt, sel.birthDecade+decadeSpan),
		)
	case MakerCategories:
		return allOf(FieldMakerCategories, sel.makerCategories)
	case JobTypes:
		return allOf(FieldJobTypes, sel.jobTypes)
	case LastInitial:
		if sel.lastInitial == "" {
			return ""
		}
		return odata.Eq(FieldLastInitial, sel.lastInitial)
	case ParentBiography:
		if sel.parentBiography == "" {
			return ""
		}
		return odata.Eq(FieldBiographyID, sel.parentBiography)
	case Tags:
		return allOf(FieldTags, sel.tags)
	}
	return ""
}

// allOf requires the collection to contain every value, not any one of them.
func allOf(field string, values []string) string {
	parts := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		parts = append(parts, odata.Any(field, v))
	}
	return odata.And(parts...)
}
