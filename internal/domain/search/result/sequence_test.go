package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docs(ids ...string) []Document {
	out := make([]Document, len(ids))
	for i, id := range ids {
		out[i] = Document{ID: id, Fields: map[string]any{"title": "story " + id}}
	}
	return out
}

func ids(ds []Document) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.ID
	}
	return out
}

func TestReorder_FollowsCallerOrder(t *testing.T) {
	got := Reorder([]string{"s3", "s1", "s2"}, docs("s1", "s2", "s3"))
	assert.Equal(t, []string{"s3", "s1", "s2"}, ids(got))
}

func TestReorder_DropsUnmatched(t *testing.T) {
	got := Reorder([]string{"s3", "missing", "s1"}, docs("s1", "s3"))
	assert.Equal(t, []string{"s3", "s1"}, ids(got))
}

func TestReorder_IgnoresExtraDocuments(t *testing.T) {
	got := Reorder([]string{"s2"}, docs("s1", "s2", "s3"))
	assert.Equal(t, []string{"s2"}, ids(got))
}

func TestReorder_RepeatedIDRepeatsDocument(t *testing.T) {
	got := Reorder([]string{"s1", "s2", "s1"}, docs("s2", "s1"))
	require.Len(t, got, 3)
	assert.Equal(t, []string{"s1", "s2", "s1"}, ids(got))
	assert.Equal(t, got[0].Fields, got[2].Fields)
}

func TestReorder_Empty(t *testing.T) {
	assert.Empty(t, Reorder(nil, docs("s1")))
	assert.Empty(t, Reorder([]string{"s1"}, nil))
}

func TestReorder_LengthBounds(t *testing.T) {
	in := []string{"a", "b", "c", "d"}
	found := docs("b", "d")
	got := Reorder(in, found)
	assert.LessOrEqual(t, len(got), len(in))
	assert.LessOrEqual(t, len(got), len(found))
}

func TestReorderBy_CustomKey(t *testing.T) {
	type row struct{ key, val string }
	rows := []row{{"x", "1"}, {"y", "2"}, {"x", "dup"}}
	got := ReorderBy([]string{"y", "x"}, rows, func(r row) string { return r.key })
	assert.Equal(t, []row{{"y", "2"}, {"x", "1"}}, got)
}

func TestPage_FacetBuckets(t *testing.T) {
	p := &Page{Facets: map[string][]Bucket{"tags": {{Value: "Music", Count: 3}}}}
	assert.Len(t, p.FacetBuckets("tags"), 1)
	assert.Nil(t, p.FacetBuckets("gender"))

	var nilPage *Page
	assert.Nil(t, nilPage.FacetBuckets("tags"))
}
