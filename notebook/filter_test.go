package notebook

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/notekeeper/store"
)

func scenarioNotes() []*store.Note {
	return []*store.Note{
		{ID: 1, Title: "A", Content: "x", Tags: []string{"foo"}},
		{ID: 2, Title: "B", Content: "y", Tags: []string{"bar"}},
	}
}

func ids(notes []*store.Note) []int32 {
	out := []int32{}
	for _, n := range notes {
		out = append(out, n.ID)
	}
	return out
}

func TestFilter_Scenarios(t *testing.T) {
	tests := []struct {
		name        string
		selectedTag string
		searchTerm  string
		want        []int32
	}{
		{"no filters returns everything", "", "", []int32{1, 2}},
		{"tag selects first note", "foo", "", []int32{1}},
		{"title match", "", "B", []int32{2}},
		{"case-insensitive title match", "", "b", []int32{2}},
		{"content match", "", "X", []int32{1}},
		{"tag substring match", "", "ba", []int32{2}},
		{"tag and term both required", "foo", "B", []int32{}},
		{"unknown tag", "baz", "", []int32{}},
		{"tag filter is exact", "FOO", "", []int32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(Filter(scenarioNotes(), tt.selectedTag, tt.searchTerm)))
		})
	}
}

// TestFilter_Properties checks subset, order preservation and idempotence over random inputs.
func TestFilter_Properties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	words := []string{"alpha", "Beta", "gamma", "DELTA", "<b>bold</b>", ""}
	tags := []string{"foo", "bar", "baz", "Foo"}

	for i := 0; i < 200; i++ {
		notes := make([]*store.Note, rng.Intn(8))
		for j := range notes {
			noteTags := []string{}
			for _, tag := range tags {
				if rng.Intn(3) == 0 {
					noteTags = append(noteTags, tag)
				}
			}
			notes[j] = &store.Note{
				ID:      int32(j + 1),
				Title:   words[rng.Intn(len(words))],
				Content: words[rng.Intn(len(words))],
				Tags:    noteTags,
			}
		}
		selected := []string{"", "foo", "Foo", "bar"}[rng.Intn(4)]
		term := []string{"", "a", "ELT", "bold", "fo", "zzz"}[rng.Intn(6)]

		t.Run(fmt.Sprintf("case-%d", i), func(t *testing.T) {
			got := Filter(notes, selected, term)

			// Subset in relative order: walk the input once.
			k := 0
			for _, n := range notes {
				if k < len(got) && got[k] == n {
					k++
				}
			}
			require.Equal(t, len(got), k, "result is not an ordered subsequence")

			assert.Equal(t, got, Filter(got, selected, term), "filter is not idempotent")

			for _, n := range notes {
				want := (selected == "" || n.HasTag(selected)) && (term == "" || matchesTerm(n, strings.ToLower(term)))
				assert.Equal(t, want, contains(got, n))
			}
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	notes := scenarioNotes()
	_ = Filter(notes, "foo", "a")
	assert.Equal(t, scenarioNotes(), notes)
}

func contains(list []*store.Note, n *store.Note) bool {
	for _, m := range list {
		if m == n {
			return true
		}
	}
	return false
}

func TestCompileExpression(t *testing.T) {
	notes := []*store.Note{
		{ID: 1, Title: "Welcome Note", Content: "hi", Tags: []string{"welcome"}},
		{ID: 2, Title: "Ideas", Content: "List of project ideas...", Tags: []string{"projects", "ideas"}},
		{ID: 3, Title: "Untagged", Content: "", Tags: nil},
	}

	tests := []struct {
		name    string
		expr    string
		want    []int32
		wantErr bool
	}{
		{name: "tag membership", expr: `"ideas" in tags`, want: []int32{2}},
		{name: "title contains", expr: `title.contains("Note")`, want: []int32{1}},
		{name: "combined", expr: `size(tags) == 0 || id == 1`, want: []int32{1, 3}},
		{name: "content startsWith", expr: `content.startsWith("List")`, want: []int32{2}},
		{name: "syntax error", expr: `title ==`, wantErr: true},
		{name: "unknown variable", expr: `author == "me"`, wantErr: true},
		{name: "non boolean", expr: `title`, wantErr: true},
		{name: "empty", expr: `  `, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr, err := CompileExpression(tt.expr)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(FilterExpression(notes, expr)))
		})
	}
}
