package notebook

import (
	"strings"

	"github.com/hrygo/notekeeper/store"
)

// Filter returns, in their original order, the notes that carry selectedTag
// (any note when it is empty) and contain searchTerm case-insensitively in
// the title, the content or one of the tags (any note when it is empty).
func Filter(notes []*store.Note, selectedTag, searchTerm string) []*store.Note {
	term := strings.ToLower(searchTerm)
	filtered := make([]*store.Note, 0, len(notes))
	for _, note := range notes {
		if selectedTag != "" && !note.HasTag(selectedTag) {
			continue
		}
		if term != "" && !matchesTerm(note, term) {
			continue
		}
		filtered = append(filtered, note)
	}
	return filtered
}

// matchesTerm expects term already lowercased.
func matchesTerm(note *store.Note, term string) bool {
	if strings.Contains(strings.ToLower(note.Title), term) ||
		strings.Contains(strings.ToLower(note.Content), term) {
		return true
	}
	for _, tag := range note.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}
