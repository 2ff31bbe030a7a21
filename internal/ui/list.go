package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
)

var (
	_ list.Item = candidateItem{}
	_ list.Item = collectionItem{}
	_ list.Item = recommendationItem{}
)

// candidateItem wraps [models.Candidate] to implement [list.Item].
type candidateItem struct {
	candidate models.Candidate
}

func (i candidateItem) FilterValue() string { return i.candidate.Title }
func (i candidateItem) Title() string {
	if i.candidate.Year > 0 {
		return fmt.Sprintf("%s (%d)", i.candidate.Title, i.candidate.Year)
	}
	return i.candidate.Title
}
func (i candidateItem) Description() string {
	if i.candidate.Overview == "" {
		return "No synopsis available"
	}
	return truncate(i.candidate.Overview, 80)
}

// collectionItem wraps [models.CollectionEntry] to implement [list.Item].
type collectionItem struct {
	entry models.CollectionEntry
}

func (i collectionItem) FilterValue() string { return i.entry.Title }
func (i collectionItem) Title() string {
	if i.entry.Year > 0 {
		return fmt.Sprintf("%s (%d)", i.entry.Title, i.entry.Year)
	}
	return i.entry.Title
}
func (i collectionItem) Description() string {
	desc := "Unrated"
	if i.entry.Rating != nil {
		desc = fmt.Sprintf("Rated %.1f/10", *i.entry.Rating)
	}
	if len(i.entry.Genres) > 0 {
		desc = fmt.Sprintf("%s • %s", desc, joinGenres(i.entry.Genres, 3))
	}
	return desc
}

// recommendationItem wraps [models.Recommendation] to implement [list.Item].
type recommendationItem struct {
	rec models.Recommendation
}

func (i recommendationItem) FilterValue() string { return i.rec.Title }
func (i recommendationItem) Title() string {
	title := i.rec.Title
	if i.rec.Year > 0 {
		title = fmt.Sprintf("%s (%d)", title, i.rec.Year)
	}
	return fmt.Sprintf("%s - %.0f%% match", title, i.rec.MatchScore)
}
func (i recommendationItem) Description() string {
	if i.rec.Reasoning == "" {
		return joinGenres(i.rec.Genres, 3)
	}
	return truncate(i.rec.Reasoning, 80)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func joinGenres(genres []string, max int) string {
	if len(genres) > max {
		genres = genres[:max]
	}
	out := ""
	for i, g := range genres {
		if i > 0 {
			out += ", "
		}
		out += g
	}
	return out
}
