package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// handleAddKeys routes keys for the add flow according to its phase.
func (m *Model) handleAddKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.phase {
	case phaseIdle:
		return m.handleSearchFormKeys(msg)
	case phaseSearching, phaseSubmitting:
		// A request is in flight; only quit is honored.
		return m, nil
	case phaseResults:
		return m.handleResultsKeys(msg)
	case phaseRating:
		return m.handleRatingKeys(msg)
	}
	return m, nil
}

func (m *Model) handleSearchFormKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		return m, m.submitSearch()
	case "up", "down":
		m.addFocus = 1 - m.addFocus
		if m.addFocus == 0 {
			m.titleInput.Focus()
			m.yearInput.Blur()
		} else {
			m.titleInput.Blur()
			m.yearInput.Focus()
		}
		return m, nil
	}

	var cmd tea.Cmd
	if m.addFocus == 0 {
		m.titleInput, cmd = m.titleInput.Update(msg)
	} else {
		m.yearInput, cmd = m.yearInput.Update(msg)
	}
	return m, cmd
}

// submitSearch validates the form and issues exactly one search request. An
// empty or whitespace-only title is a silent no-op with zero requests.
func (m *Model) submitSearch() tea.Cmd {
	title := strings.TrimSpace(m.titleInput.Value())
	if title == "" {
		return nil
	}

	year := 0
	if yearText := strings.TrimSpace(m.yearInput.Value()); yearText != "" {
		parsed, err := strconv.Atoi(yearText)
		if err != nil {
			return m.showStatus(regionAdd, "Year must be a number", statusError)
		}
		year = parsed
	}

	m.phase = phaseSearching
	m.haveResults = false
	m.resultsList.SetItems([]list.Item{})
	m.searchGen++
	gen := m.searchGen

	return tea.Batch(m.startLoading(), func() tea.Msg {
		candidates, err := m.library.SearchMovies(m.ctx, title, year)
		return searchDoneMsg{gen: gen, candidates: candidates, err: err}
	})
}

func (m *Model) handleSearchDone(msg searchDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.searchGen {
		return m, nil
	}

	if msg.err != nil {
		// Previous results were already cleared when the search started.
		m.phase = phaseIdle
		return m, m.showStatus(regionAdd, connectivityMessage(msg.err), statusError)
	}

	items := make([]list.Item, len(msg.candidates))
	for i, candidate := range msg.candidates {
		items[i] = candidateItem{candidate: candidate}
	}
	m.resultsList.SetItems(items)
	m.haveResults = true
	m.phase = phaseResults
	return m, nil
}

func (m *Model) handleResultsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Back to a blank search; candidates are discarded.
		m.phase = phaseIdle
		m.haveResults = false
		m.resultsList.SetItems([]list.Item{})
		return m, nil
	case "enter":
		selected, ok := m.resultsList.SelectedItem().(candidateItem)
		if !ok {
			return m, nil
		}
		// Selecting replaces the results list with the rating form; only the
		// chosen candidate survives, as an explicit typed value.
		candidate := selected.candidate
		m.selected = &candidate
		m.haveResults = false
		m.resultsList.SetItems([]list.Item{})
		m.ratingInput.SetValue("")
		m.dateInput.SetValue("")
		m.rateFocus = 0
		m.ratingInput.Focus()
		m.dateInput.Blur()
		m.phase = phaseRating
		return m, nil
	}

	var cmd tea.Cmd
	m.resultsList, cmd = m.resultsList.Update(msg)
	return m, cmd
}

func (m *Model) handleRatingKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Abandon the candidate entirely; the results list is already gone.
		m.selected = nil
		m.phase = phaseIdle
		return m, nil
	case "up", "down":
		m.rateFocus = 1 - m.rateFocus
		if m.rateFocus == 0 {
			m.ratingInput.Focus()
			m.dateInput.Blur()
		} else {
			m.ratingInput.Blur()
			m.dateInput.Focus()
		}
		return m, nil
	case "enter":
		return m, m.submitRating()
	}

	var cmd tea.Cmd
	if m.rateFocus == 0 {
		m.ratingInput, cmd = m.ratingInput.Update(msg)
	} else {
		m.dateInput, cmd = m.dateInput.Update(msg)
	}
	return m, cmd
}

// submitRating validates the rating and optional watch date locally, then
// commits the selected candidate. Invalid input never reaches the backend.
func (m *Model) submitRating() tea.Cmd {
	if m.selected == nil {
		return nil
	}

	rating, err := strconv.ParseFloat(strings.TrimSpace(m.ratingInput.Value()), 64)
	if err != nil {
		return m.showStatus(regionAdd, "Rating must be a number between 0 and 10", statusError)
	}
	if !shared.ValidRating(rating) {
		return m.showStatus(regionAdd, "Rating must be between 0 and 10 in half-point steps", statusError)
	}

	watchDate := strings.TrimSpace(m.dateInput.Value())
	if watchDate != "" {
		if _, err := time.Parse("2006-01-02", watchDate); err != nil {
			return m.showStatus(regionAdd, "Watch date must be YYYY-MM-DD", statusError)
		}
	}

	m.phase = phaseSubmitting
	m.searchGen++
	gen := m.searchGen
	selected := *m.selected

	return tea.Batch(m.startLoading(), func() tea.Msg {
		result, err := m.library.AddMovie(m.ctx, selected.TMDbID, rating, watchDate)
		if err == nil && result.Success && m.recorder != nil {
			m.recorder.RecordCommit(selected.TMDbID, selected.Title, selected.Year, &rating, watchDate, "manual")
		}
		return commitDoneMsg{gen: gen, result: result, err: err}
	})
}

func (m *Model) handleCommitDone(msg commitDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.searchGen {
		return m, nil
	}

	if msg.err != nil || msg.result == nil || !msg.result.Success {
		// Leave the rating form in place so the user can retry.
		m.phase = phaseRating
		message := "Failed to add movie"
		if msg.err != nil {
			message = connectivityMessage(msg.err)
		} else if msg.result != nil && msg.result.Message != "" {
			message = msg.result.Message
		}
		return m, m.showStatus(regionAdd, message, statusError)
	}

	// Commit succeeded: the candidate is consumed and the whole form resets.
	m.selected = nil
	m.titleInput.SetValue("")
	m.yearInput.SetValue("")
	m.ratingInput.SetValue("")
	m.dateInput.SetValue("")
	m.addFocus = 0
	m.titleInput.Focus()
	m.yearInput.Blur()
	m.phase = phaseIdle

	message := msg.result.Message
	if message == "" {
		message = "Movie added to your collection"
	}
	return m, m.showStatus(regionAdd, message, statusSuccess)
}

// searchHelp summarizes the add flow's controls for the current phase.
func (m *Model) searchHelp() string {
	switch m.phase {
	case phaseIdle:
		return "enter search • ↑/↓ switch field • tab next tab"
	case phaseResults:
		return "enter select • ↑/↓ move • esc new search"
	case phaseRating:
		return fmt.Sprintf("rating '%s' • enter add to collection • esc cancel", m.selected.Title)
	default:
		return ""
	}
}
