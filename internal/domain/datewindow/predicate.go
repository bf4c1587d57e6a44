package datewindow

import "github.com/kailas-cloud/biosearch/internal/domain/search/odata"

// Index fields holding the birth month and day of month.
const (
	FieldBirthMonth = "birthMonth"
	FieldBirthDay   = "birthDay"
)

// Predicate renders ranges as a parenthesized disjunction that is safe to join
// into an `and` chain. Returns "" for no ranges.
func Predicate(ranges []Range) string {
	branches := make([]string, 0, len(ranges))
	for _, r := range ranges {
		branches = append(branches, rangeExpr(r))
	}
	return odata.Or(branches...)
}

func rangeExpr(r Range) string {
	month := odata.EqInt(FieldBirthMonth, int(r.Month))
	if r.DayLow == r.DayHigh {
		return odata.And(month, odata.EqInt(FieldBirthDay, r.DayLow))
	}
	return odata.And(
		month,
		odata.CompareInt(FieldBirthDay, odata.OpGe, r.DayLow),
		odata.CompareInt(FieldBirthDay, odata.OpLe, r.DayHigh),
	)
}
