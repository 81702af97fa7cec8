package filter

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	id     string
	name   string
	code   string
	status string
	block  string
}

var rowSpec = Spec[row]{
	Search: []Field[row]{
		{Name: "name", Value: func(r row) string { return r.name }},
		{Name: "code", Value: func(r row) string { return r.code }},
	},
	Categories: []Field[row]{
		{Name: "status", Value: func(r row) string { return r.status }},
		{Name: "block", Value: func(r row) string { return r.block }},
	},
}

func TestMatchesEmptyStateMatchesEverything(t *testing.T) {
	assert.True(t, rowSpec.Matches(row{}, State{}))
	assert.True(t, rowSpec.Matches(row{name: "x"}, State{Search: "   "}))
}

func TestMatchesSearchIsCaseInsensitiveSubstring(t *testing.T) {
	r := row{name: "John Doe", code: "INM001"}
	assert.True(t, rowSpec.Matches(r, State{Search: "john"}))
	assert.True(t, rowSpec.Matches(r, State{Search: "inm0"}))
	assert.True(t, rowSpec.Matches(r, State{Search: "DOE"}))
	assert.False(t, rowSpec.Matches(r, State{Search: "smith"}))
}

func TestMatchesCategoriesAreANDed(t *testing.T) {
	r := row{name: "a", status: "Active", block: "A"}
	st := State{}.With("status", "Active")
	assert.True(t, rowSpec.Matches(r, st))

	st = st.With("block", "B")
	assert.False(t, rowSpec.Matches(r, st))

	st = st.With("block", All)
	assert.True(t, rowSpec.Matches(r, st))
}

func TestMatchesCategoryAndSearchCombined(t *testing.T) {
	r := row{name: "Cell A-101", status: "Available", block: "A"}
	st := State{Search: "a-1"}.With("status", "Available")
	assert.True(t, rowSpec.Matches(r, st))
	st.Search = "b-2"
	assert.False(t, rowSpec.Matches(r, st))
}

func TestMatchesUnknownCategoryNeverMatches(t *testing.T) {
	st := State{}.With("shift", "Day")
	assert.False(t, rowSpec.Matches(row{}, st))
	require.Error(t, rowSpec.Validate(st))
	require.NoError(t, rowSpec.Validate(State{}.With("status", "Active")))
}

func TestApplyActiveStatusScenario(t *testing.T) {
	items := []row{{id: "1", status: "Active"}, {id: "2", status: "Released"}}
	got := rowSpec.Apply(items, State{}.With("status", "Active"))
	want := []row{{id: "1", status: "Active"}}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(row{})); diff != "" {
		t.Fatalf("filtered rows mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, items, 2, "input must not be modified")
}

func TestStateWithDoesNotMutateReceiver(t *testing.T) {
	base := State{}.With("status", "Active")
	next := base.With("status", "Released")
	assert.Equal(t, "Active", base.Value("status"))
	assert.Equal(t, "Released", next.Value("status"))
	assert.Equal(t, All, next.Value("block"))
}

func TestStateActiveAndEmpty(t *testing.T) {
	st := State{}
	assert.True(t, st.Empty())
	st = st.With("block", "A").With("status", "Closed")
	assert.Equal(t, []string{"block", "status"}, st.Active())
	assert.False(t, st.Empty())
	st = st.WithSearch("x").With("block", "").With("status", All)
	assert.Empty(t, st.Active())
	assert.Equal(t, "x", st.Search)
}

func TestDistinct(t *testing.T) {
	items := []row{{block: "B"}, {block: "A"}, {block: "B"}, {block: ""}}
	assert.Equal(t, []string{"A", "B"}, rowSpec.Distinct(items, "block"))
	assert.Nil(t, rowSpec.Distinct(items, "nope"))
	assert.Equal(t, []string{"status", "block"}, rowSpec.CategoryNames())
}
