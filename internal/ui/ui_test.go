package ui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
	internaltest "github.com/cr1stiaaana/movie-ai-suggestor/internal/testing"
)

type fakeRecorder struct {
	commits int
	imports int
}

func (r *fakeRecorder) RecordCommit(tmdbID int, title string, year int, rating *float64, watchDate, source string) error {
	r.commits++
	return nil
}

func (r *fakeRecorder) RecordImport(filename string, imported, failed int, message string) error {
	r.imports++
	return nil
}

func newTestModel(svc *internaltest.MockService) *Model {
	return NewModel(context.Background(), ModelOpts{Library: svc})
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestLoadingRefCount(t *testing.T) {
	m := newTestModel(&internaltest.MockService{})

	if m.loading() {
		t.Fatal("expected no loading initially")
	}

	first := m.startLoading()
	if first == nil {
		t.Error("expected spinner tick on first start")
	}
	second := m.startLoading()
	if second != nil {
		t.Error("expected no extra spinner tick while already loading")
	}

	m.stopLoading()
	if !m.loading() {
		t.Error("expected loading while one request is still in flight")
	}

	m.stopLoading()
	if m.loading() {
		t.Error("expected loading cleared after final stop")
	}

	m.stopLoading()
	if m.loadingCount < 0 {
		t.Error("expected loading count to never go negative")
	}
}

func TestStatusExpiry(t *testing.T) {
	m := newTestModel(&internaltest.MockService{})

	t.Run("expiry hides the current message", func(t *testing.T) {
		m.showStatus(regionUpload, "first", statusInfo)
		seq := m.status(regionUpload).seq

		m.expireStatus(statusExpiredMsg{region: regionUpload, seq: seq})
		if m.status(regionUpload).visible {
			t.Error("expected status hidden after its own expiry")
		}
	})

	t.Run("stale expiry is ignored", func(t *testing.T) {
		m.showStatus(regionUpload, "first", statusInfo)
		oldSeq := m.status(regionUpload).seq

		m.showStatus(regionUpload, "second", statusSuccess)

		m.expireStatus(statusExpiredMsg{region: regionUpload, seq: oldSeq})
		if !m.status(regionUpload).visible {
			t.Error("expected replacement message to survive the stale expiry")
		}
		if m.status(regionUpload).message != "second" {
			t.Errorf("expected message 'second', got %q", m.status(regionUpload).message)
		}
	})

	t.Run("regions are independent", func(t *testing.T) {
		m.showStatus(regionAdd, "add message", statusError)
		m.showStatus(regionCollection, "collection message", statusInfo)

		if m.status(regionAdd).message == m.status(regionCollection).message {
			t.Error("expected separate messages per region")
		}
	})
}

func TestSearchFlow(t *testing.T) {
	candidates := []models.Candidate{
		{TMDbID: 27205, Title: "Inception", Year: 2010},
		{TMDbID: 64956, Title: "Inception: The Cobol Job", Year: 2010},
	}

	t.Run("empty title is a silent no-op", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.titleInput.SetValue("   ")

		if cmd := m.submitSearch(); cmd != nil {
			t.Error("expected no command for blank title")
		}
		if m.phase != phaseIdle {
			t.Error("expected phase to stay idle")
		}
	})

	t.Run("search populates results", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")

		if cmd := m.submitSearch(); cmd == nil {
			t.Fatal("expected a search command")
		}
		if m.phase != phaseSearching {
			t.Errorf("expected phaseSearching, got %d", m.phase)
		}

		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		if m.phase != phaseResults {
			t.Errorf("expected phaseResults, got %d", m.phase)
		}
		if len(m.resultsList.Items()) != 2 {
			t.Errorf("expected 2 result items, got %d", len(m.resultsList.Items()))
		}
	})

	t.Run("empty results still enter the results phase", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.activeTab = TabAdd
		m.titleInput.SetValue("Nothing")
		m.submitSearch()

		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: []models.Candidate{}})
		if m.phase != phaseResults {
			t.Errorf("expected phaseResults for empty results, got %d", m.phase)
		}
		if !strings.Contains(m.View(), "No results found") {
			t.Error("expected empty-results message in view")
		}
	})

	t.Run("stale search response is discarded", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		staleGen := m.searchGen

		// A newer submit supersedes the one in flight.
		m.submitSearch()

		m.handleSearchDone(searchDoneMsg{gen: staleGen, candidates: candidates})
		if m.phase != phaseSearching {
			t.Errorf("expected stale response to leave phase alone, got %d", m.phase)
		}
		if len(m.resultsList.Items()) != 0 {
			t.Error("expected stale candidates to be discarded")
		}
	})

	t.Run("search failure returns to idle with error status", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.titleInput.SetValue("Inception")
		m.submitSearch()

		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, err: shared.ErrNetwork})
		if m.phase != phaseIdle {
			t.Errorf("expected phaseIdle after failure, got %d", m.phase)
		}
		if !m.status(regionAdd).visible || m.status(regionAdd).kind != statusError {
			t.Error("expected visible error status")
		}
	})

	t.Run("selecting a candidate moves to rating with explicit selection", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})

		m.handleResultsKeys(keyMsg("enter"))
		if m.phase != phaseRating {
			t.Fatalf("expected phaseRating, got %d", m.phase)
		}
		if m.selected == nil || m.selected.TMDbID != 27205 {
			t.Errorf("expected first candidate selected, got %+v", m.selected)
		}
		if len(m.resultsList.Items()) != 0 {
			t.Error("expected results list cleared once a candidate is chosen")
		}
	})

	t.Run("esc from rating abandons the candidate", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		m.handleResultsKeys(keyMsg("enter"))

		m.handleRatingKeys(keyMsg("esc"))
		if m.phase != phaseIdle {
			t.Errorf("expected phaseIdle, got %d", m.phase)
		}
		if m.selected != nil {
			t.Error("expected selection cleared on abandon")
		}
	})

	t.Run("invalid rating never reaches the backend", func(t *testing.T) {
		svc := &internaltest.MockService{SearchResults: candidates}
		m := newTestModel(svc)
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		m.handleResultsKeys(keyMsg("enter"))

		for _, bad := range []string{"", "eleven", "10.3", "-1"} {
			m.ratingInput.SetValue(bad)
			m.submitRating()
			if m.phase != phaseRating {
				t.Errorf("rating %q: expected to stay in rating phase, got %d", bad, m.phase)
			}
		}
		if svc.AddCalls != 0 {
			t.Errorf("expected no commits for invalid ratings, got %d", svc.AddCalls)
		}

		m.ratingInput.SetValue("8.5")
		m.dateInput.SetValue("January 15")
		m.submitRating()
		if svc.AddCalls != 0 {
			t.Error("expected no commit for malformed watch date")
		}
	})

	t.Run("commit failure keeps the rating form for retry", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		m.handleResultsKeys(keyMsg("enter"))

		m.ratingInput.SetValue("8.5")
		m.submitRating()
		if m.phase != phaseSubmitting {
			t.Fatalf("expected phaseSubmitting, got %d", m.phase)
		}

		m.handleCommitDone(commitDoneMsg{gen: m.searchGen, err: errors.New("boom")})
		if m.phase != phaseRating {
			t.Errorf("expected retry in rating phase, got %d", m.phase)
		}
		if m.selected == nil {
			t.Error("expected candidate kept for retry")
		}
	})

	t.Run("commit success resets the whole form", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		m.handleResultsKeys(keyMsg("enter"))
		m.ratingInput.SetValue("8.5")
		m.dateInput.SetValue("2026-01-15")
		m.submitRating()

		m.handleCommitDone(commitDoneMsg{gen: m.searchGen, result: &models.AddResult{Success: true, Message: "Added"}})
		if m.phase != phaseIdle {
			t.Errorf("expected phaseIdle after success, got %d", m.phase)
		}
		if m.selected != nil {
			t.Error("expected selection consumed")
		}
		if m.titleInput.Value() != "" || m.ratingInput.Value() != "" || m.dateInput.Value() != "" {
			t.Error("expected form fields cleared")
		}
		if m.status(regionAdd).kind != statusSuccess {
			t.Error("expected success status")
		}
	})
}

func TestTabSwitching(t *testing.T) {
	t.Run("deactivation invalidates in-flight requests", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.activeTab = TabAdd
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		inFlight := m.searchGen

		m.switchTab(TabRecommend)
		if m.searchGen == inFlight {
			t.Error("expected leaving the tab to bump its generation")
		}

		m.handleSearchDone(searchDoneMsg{gen: inFlight, candidates: []models.Candidate{{TMDbID: 1, Title: "X"}}})
		if len(m.resultsList.Items()) != 0 {
			t.Error("expected response for the deactivated tab to be discarded")
		}
	})

	t.Run("leaving mid-search returns the flow to idle", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{SearchResults: []models.Candidate{{TMDbID: 1, Title: "X"}}})
		m.activeTab = TabAdd
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		inFlight := m.searchGen

		m.switchTab(TabRecommend)
		m.handleSearchDone(searchDoneMsg{gen: inFlight, candidates: []models.Candidate{{TMDbID: 1, Title: "X"}}})
		m.switchTab(TabAdd)

		if m.phase != phaseIdle {
			t.Fatalf("expected phaseIdle after returning to the tab, got %d", m.phase)
		}
		if cmd := m.submitSearch(); cmd == nil {
			t.Error("expected a fresh search to be possible again")
		}
	})

	t.Run("leaving mid-commit keeps the rating form for retry", func(t *testing.T) {
		candidates := []models.Candidate{{TMDbID: 27205, Title: "Inception", Year: 2010}}
		m := newTestModel(&internaltest.MockService{SearchResults: candidates})
		m.activeTab = TabAdd
		m.titleInput.SetValue("Inception")
		m.submitSearch()
		m.handleSearchDone(searchDoneMsg{gen: m.searchGen, candidates: candidates})
		m.handleResultsKeys(keyMsg("enter"))
		m.ratingInput.SetValue("8.5")
		m.submitRating()
		inFlight := m.searchGen

		m.switchTab(TabCollection)
		m.handleCommitDone(commitDoneMsg{gen: inFlight, result: &models.AddResult{Success: true}})
		m.switchTab(TabAdd)

		if m.phase != phaseRating {
			t.Fatalf("expected phaseRating after returning to the tab, got %d", m.phase)
		}
		if m.selected == nil || m.selected.TMDbID != 27205 {
			t.Error("expected candidate kept so the commit can be retried")
		}
	})

	t.Run("activating collection refreshes it", func(t *testing.T) {
		svc := &internaltest.MockService{}
		m := newTestModel(svc)

		if cmd := m.switchTab(TabCollection); cmd == nil {
			t.Error("expected a refresh command when entering Collection")
		}
	})

	t.Run("switching closes the modal", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.modalOpen = true
		m.detail = &models.MovieDetail{TMDbID: 1}

		m.switchTab(TabAdd)
		if m.modalOpen {
			t.Error("expected modal closed by tab switch")
		}
		if m.detail != nil {
			t.Error("expected detail cleared by tab switch")
		}
	})

	t.Run("wraps around with tab key", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.activeTab = TabCollection

		m.handleKeys(keyMsg("tab"))
		if m.activeTab != TabImport {
			t.Errorf("expected wrap to Import, got %s", m.activeTab)
		}

		m.handleKeys(keyMsg("shift+tab"))
		if m.activeTab != TabCollection {
			t.Errorf("expected wrap back to Collection, got %s", m.activeTab)
		}
	})
}

func TestDetailModal(t *testing.T) {
	t.Run("open clears any previous detail immediately", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.detail = &models.MovieDetail{TMDbID: 1, Title: "Old"}

		m.openDetail(2)
		if m.detail != nil {
			t.Error("expected stale detail cleared on open")
		}
		if !m.modalOpen {
			t.Error("expected modal open")
		}
	})

	t.Run("stale detail response is discarded", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.openDetail(1)
		staleGen := m.detailGen

		// Opening a different movie supersedes the first fetch.
		m.openDetail(2)

		m.handleDetailDone(detailDoneMsg{gen: staleGen, detail: &models.MovieDetail{TMDbID: 1, Title: "Stale"}})
		if m.detail != nil {
			t.Error("expected stale detail discarded")
		}

		m.handleDetailDone(detailDoneMsg{gen: m.detailGen, detail: &models.MovieDetail{TMDbID: 2, Title: "Fresh"}})
		if m.detail == nil || m.detail.TMDbID != 2 {
			t.Errorf("expected fresh detail applied, got %+v", m.detail)
		}
	})

	t.Run("only esc and q close the modal", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.openDetail(1)
		m.handleDetailDone(detailDoneMsg{gen: m.detailGen, detail: &models.MovieDetail{TMDbID: 1, Title: "Inception"}})

		m.handleKeys(keyMsg("x"))
		m.handleKeys(keyMsg("enter"))
		if !m.modalOpen {
			t.Fatal("expected modal to stay open on unrelated keys")
		}

		m.handleKeys(keyMsg("esc"))
		if m.modalOpen {
			t.Error("expected esc to close the modal")
		}
	})

	t.Run("close after error resets the error", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.openDetail(1)
		m.handleDetailDone(detailDoneMsg{gen: m.detailGen, err: shared.ErrMovieNotFound})

		if m.detailErr == nil {
			t.Fatal("expected detail error recorded")
		}

		m.closeModal()
		if m.detailErr != nil {
			t.Error("expected error cleared on close")
		}
	})

	t.Run("view renders optional sections only when present", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.openDetail(1)
		m.handleDetailDone(detailDoneMsg{gen: m.detailGen, detail: &models.MovieDetail{
			TMDbID: 27205, Title: "Inception", Year: 2010, Runtime: 148,
		}})

		view := m.View()
		if strings.Contains(view, "Director:") {
			t.Error("expected no director section without director data")
		}
		if strings.Contains(view, "Cast:") {
			t.Error("expected no cast section without cast data")
		}
		if !strings.Contains(view, "2h 28m") {
			t.Error("expected formatted runtime")
		}
		if !strings.Contains(view, "N/A") {
			t.Error("expected N/A for missing rating")
		}
	})
}

func TestUploadFlow(t *testing.T) {
	t.Run("rejects non-csv paths without a request", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.pathInput.SetValue("export.txt")

		m.submitUpload()
		if !m.status(regionUpload).visible || m.status(regionUpload).kind != statusError {
			t.Error("expected an error status for non-csv path")
		}
		if m.loading() {
			t.Error("expected no request in flight")
		}
	})

	t.Run("empty path is a no-op", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		if cmd := m.submitUpload(); cmd != nil {
			t.Error("expected no command for empty path")
		}
	})

	t.Run("success records the import and clears the path", func(t *testing.T) {
		recorder := &fakeRecorder{}
		m := NewModel(context.Background(), ModelOpts{Library: &internaltest.MockService{}, Recorder: recorder})
		m.pathInput.SetValue("export.csv")
		m.uploadGen++

		m.handleUploadDone(uploadDoneMsg{
			gen:      m.uploadGen,
			filename: "export.csv",
			result:   &models.ImportResult{Success: true, Count: 12, Message: "Successfully imported 12 movies"},
		})

		if recorder.imports != 1 {
			t.Errorf("expected 1 recorded import, got %d", recorder.imports)
		}
		if m.pathInput.Value() != "" {
			t.Error("expected path input cleared on success")
		}
		if m.status(regionUpload).kind != statusSuccess {
			t.Error("expected success status")
		}
	})

	t.Run("row errors appear as supplementary detail", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.uploadGen++

		m.handleUploadDone(uploadDoneMsg{
			gen:      m.uploadGen,
			filename: "export.csv",
			result: &models.ImportResult{
				Success: true,
				Count:   10,
				Errors:  []string{"Row 3: unknown title", "Row 7: bad year"},
			},
		})

		st := m.status(regionUpload)
		if st.kind != statusSuccess {
			t.Error("expected partial import to still be a success")
		}
		if !strings.Contains(st.detail, "Row 3") {
			t.Errorf("expected row errors in detail, got %q", st.detail)
		}
	})

	t.Run("backend failure surfaces its message", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.uploadGen++

		m.handleUploadDone(uploadDoneMsg{
			gen:      m.uploadGen,
			filename: "export.csv",
			result:   &models.ImportResult{Success: false, Message: "Could not parse CSV"},
		})

		st := m.status(regionUpload)
		if st.kind != statusError || !strings.Contains(st.message, "Could not parse CSV") {
			t.Errorf("expected backend failure message, got %q", st.message)
		}
	})
}

func TestRecommendations(t *testing.T) {
	t.Run("success announces the count", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.generateRecommendations()

		m.handleRecsDone(recsDoneMsg{gen: m.recGen, set: &models.RecommendationSet{
			Count: 3,
			Recommendations: []models.Recommendation{
				{TMDbID: 1, Title: "A"}, {TMDbID: 2, Title: "B"}, {TMDbID: 3, Title: "C"},
			},
		}})

		st := m.status(regionRecommend)
		if st.message != "Found 3 personalized recommendations for you!" {
			t.Errorf("unexpected status message %q", st.message)
		}
		if len(m.recList.Items()) != 3 {
			t.Errorf("expected 3 recommendation items, got %d", len(m.recList.Items()))
		}
	})

	t.Run("generation clears the previous list before the request", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.generateRecommendations()
		m.handleRecsDone(recsDoneMsg{gen: m.recGen, set: &models.RecommendationSet{
			Count:           1,
			Recommendations: []models.Recommendation{{TMDbID: 1, Title: "A"}},
		}})

		m.generateRecommendations()
		if len(m.recList.Items()) != 0 {
			t.Error("expected old recommendations gone while a new request is in flight")
		}

		m.handleRecsDone(recsDoneMsg{gen: m.recGen, err: shared.ErrInsufficientData})
		if len(m.recList.Items()) != 0 {
			t.Error("expected failed regeneration to leave the region empty")
		}
	})
}

func TestCollectionView(t *testing.T) {
	t.Run("singular and plural counts", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.activeTab = TabCollection

		m.collGen++
		m.handleCollectionDone(collectionDoneMsg{gen: m.collGen, collection: &models.Collection{
			Count:  1,
			Movies: []models.CollectionEntry{{TMDbID: 1, Title: "Inception"}},
		}})
		if !strings.Contains(m.View(), "You have 1 movie in your collection") {
			t.Error("expected singular phrasing for one movie")
		}

		m.collGen++
		m.handleCollectionDone(collectionDoneMsg{gen: m.collGen, collection: &models.Collection{
			Count: 2,
			Movies: []models.CollectionEntry{
				{TMDbID: 1, Title: "Inception"}, {TMDbID: 2, Title: "Interstellar"},
			},
		}})
		if !strings.Contains(m.View(), "You have 2 movies in your collection") {
			t.Error("expected plural phrasing for two movies")
		}
	})

	t.Run("empty collection shows guidance", func(t *testing.T) {
		m := newTestModel(&internaltest.MockService{})
		m.activeTab = TabCollection

		m.collGen++
		m.handleCollectionDone(collectionDoneMsg{gen: m.collGen, collection: &models.Collection{
			Count:  0,
			Movies: []models.CollectionEntry{},
		}})

		view := m.View()
		if !strings.Contains(view, "collection is empty") {
			t.Error("expected empty-state message")
		}
		if !strings.Contains(view, "add movies manually") {
			t.Error("expected guidance toward import and manual add")
		}
	})
}
