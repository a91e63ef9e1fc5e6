package agendas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

func testForm() *Form {
	n := 0
	return newForm("2023-07-01", func() string {
		n++
		return string(rune('a' + n - 1))
	})
}

func titles(f *Form) []string {
	out := make([]string, len(f.Items))
	for i, it := range f.Items {
		out[i] = it.Title
	}
	return out
}

func TestAddItemDefaults(t *testing.T) {
	f := testForm()

	it, err := f.AddItem(ItemInput{Title: "  Budget  "})
	require.NoError(t, err)

	assert.Equal(t, "item-a", it.ID)
	assert.Equal(t, "Budget", it.Title)
	assert.Equal(t, DefaultDuration, it.Duration)
	assert.Equal(t, DefaultCategory, it.Category)
	assert.False(t, it.Required)
	assert.Equal(t, models.Votes{}, it.Votes)

	_, err = f.AddItem(ItemInput{})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	_, err = f.AddItem(ItemInput{Title: "x", Category: "gossip"})
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Len(t, f.Items, 1)
}

func TestVoteCountsEveryCall(t *testing.T) {
	f := testForm()
	it, err := f.AddItem(ItemInput{Title: "Budget"})
	require.NoError(t, err)

	_, err = f.Vote(it.ID, true)
	require.NoError(t, err)
	votes, err := f.Vote(it.ID, true)
	require.NoError(t, err)
	assert.Equal(t, models.Votes{Up: 2}, votes)

	votes, err = f.Vote(it.ID, false)
	require.NoError(t, err)
	assert.Equal(t, models.Votes{Up: 2, Down: 1}, votes)

	_, err = f.Vote("nope", true)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUpdateItemKeepsVotes(t *testing.T) {
	f := testForm()
	it, err := f.AddItem(ItemInput{Title: "Budget"})
	require.NoError(t, err)
	_, err = f.Vote(it.ID, true)
	require.NoError(t, err)
	_, err = f.EditItem(it.ID)
	require.NoError(t, err)
	assert.Equal(t, it.ID, f.EditingID)

	updated, err := f.UpdateItem(it.ID, ItemInput{Title: "Budget 2024", Duration: 45, Category: models.CategoryFinancial, Required: true})
	require.NoError(t, err)

	assert.Equal(t, it.ID, updated.ID)
	assert.Equal(t, 1, updated.Votes.Up)
	assert.Equal(t, 45, updated.Duration)
	assert.True(t, updated.Required)
	assert.Empty(t, f.EditingID)
	assert.Equal(t, updated, f.Items[0])
}

func TestMoveItem(t *testing.T) {
	tests := []struct {
		name  string
		index int
		up    bool
		want  []string
	}{
		{"first up", 0, true, []string{"A", "B", "C"}},
		{"last down", 2, false, []string{"A", "B", "C"}},
		{"middle up", 1, true, []string{"B", "A", "C"}},
		{"middle down", 1, false, []string{"A", "C", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := testForm()
			for _, title := range []string{"A", "B", "C"} {
				_, err := f.AddItem(ItemInput{Title: title})
				require.NoError(t, err)
			}
			require.NoError(t, f.MoveItem(tt.index, tt.up))
			assert.Equal(t, tt.want, titles(f))
		})
	}

	f := testForm()
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(f.MoveItem(0, true)))
}

func TestApplyTemplateReplacesItems(t *testing.T) {
	f := testForm()
	it, err := f.AddItem(ItemInput{Title: "Keep me?"})
	require.NoError(t, err)
	_, err = f.Vote(it.ID, true)
	require.NoError(t, err)

	require.NoError(t, f.ApplyTemplate("template-3"))

	require.Len(t, f.Items, 7)
	assert.NotContains(t, titles(f), "Keep me?")
	first := f.Items[0]
	assert.Equal(t, "Call to Order", first.Title)
	assert.Equal(t, 5, first.Duration)
	assert.Equal(t, models.CategoryProcedural, first.Category)
	assert.True(t, first.Required)
	assert.NotEqual(t, it.ID, first.ID)
	assert.Equal(t, 100, f.TotalDuration())

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(f.ApplyTemplate("template-9")))
	assert.Len(t, f.Items, 7)
}

func TestDeleteItem(t *testing.T) {
	f := testForm()
	a, _ := f.AddItem(ItemInput{Title: "A"})
	_, _ = f.AddItem(ItemInput{Title: "B"})

	f.DeleteItem(a.ID)
	f.DeleteItem("unknown")

	assert.Equal(t, []string{"B"}, titles(f))
}
