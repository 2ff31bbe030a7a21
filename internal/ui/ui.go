package ui

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/services"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// Tab identifies one of the fixed panels. Exactly one is active at a time.
type Tab int

const (
	TabImport Tab = iota
	TabAdd
	TabRecommend
	TabCollection
	tabCount
)

func (t Tab) String() string {
	switch t {
	case TabImport:
		return "Import"
	case TabAdd:
		return "Add Movie"
	case TabRecommend:
		return "Recommendations"
	case TabCollection:
		return "Collection"
	default:
		return "Unknown"
	}
}

// Recorder journals the client's own successful actions locally.
// A nil Recorder disables journaling.
type Recorder interface {
	RecordCommit(tmdbID int, title string, year int, rating *float64, watchDate, source string) error
	RecordImport(filename string, imported, failed int, message string) error
}

// searchPhase tracks the add flow's state machine:
// idle -> searching -> results -> rating -> submitting -> idle
type searchPhase int

const (
	phaseIdle searchPhase = iota
	phaseSearching
	phaseResults
	phaseRating
	phaseSubmitting
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	library  services.Service
	recorder Recorder

	width  int
	height int

	activeTab Tab
	keys      keyMap
	help      help.Model
	spinner   spinner.Model

	statuses     [4]statusState
	loadingCount int

	// Generation counters, one per flow. Bumped on each new request and on tab
	// deactivation so late-arriving responses are discarded, never applied to a
	// now-hidden region.
	uploadGen int
	searchGen int
	recGen    int
	collGen   int
	detailGen int

	// Import tab
	pathInput   textinput.Model
	maxFileSize int64

	// Add tab
	phase       searchPhase
	titleInput  textinput.Model
	yearInput   textinput.Model
	addFocus    int
	resultsList list.Model
	haveResults bool
	selected    *models.Candidate // The one identifier in flight; consumed exactly once on commit
	ratingInput textinput.Model
	dateInput   textinput.Model
	rateFocus   int

	// Recommendations tab
	recList  list.Model
	haveRecs bool

	// Collection tab
	collList   list.Model
	collection *models.Collection

	// Detail modal
	modalOpen bool
	detail    *models.MovieDetail
	detailErr error
}

// ModelOpts contains dependencies for creating a Model.
type ModelOpts struct {
	Library     services.Service
	Recorder    Recorder
	MaxFileSize int64
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pathInput := textinput.New()
	pathInput.Placeholder = "path/to/export.csv"
	pathInput.Focus()

	titleInput := textinput.New()
	titleInput.Placeholder = "Movie title"
	titleInput.CharLimit = 200

	yearInput := textinput.New()
	yearInput.Placeholder = "Year (optional)"
	yearInput.CharLimit = 4

	ratingInput := textinput.New()
	ratingInput.Placeholder = "Rating 0-10, half points"
	ratingInput.CharLimit = 4

	dateInput := textinput.New()
	dateInput.Placeholder = "Watch date YYYY-MM-DD (optional)"
	dateInput.CharLimit = 10

	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = 10 * 1024 * 1024
	}

	return &Model{
		ctx:         ctx,
		library:     opts.Library,
		recorder:    opts.Recorder,
		activeTab:   TabImport,
		keys:        newKeyMap(),
		help:        help.New(),
		spinner:     sp,
		pathInput:   pathInput,
		maxFileSize: maxFileSize,
		titleInput:  titleInput,
		yearInput:   yearInput,
		ratingInput: ratingInput,
		dateInput:   dateInput,
		resultsList: newResultsList(),
		recList:     newRecList(),
		collList:    newCollList(),
	}
}

func newResultsList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Select a match"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func newRecList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Recommended for you"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func newCollList() list.Model {
	l := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	l.Title = "Your collection"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

// Messages carrying each flow's completion, tagged with the generation the
// request was issued under.

type uploadDoneMsg struct {
	gen      int
	filename string
	result   *models.ImportResult
	err      error
}

type searchDoneMsg struct {
	gen        int
	candidates []models.Candidate
	err        error
}

type commitDoneMsg struct {
	gen    int
	result *models.AddResult
	err    error
}

type recsDoneMsg struct {
	gen int
	set *models.RecommendationSet
	err error
}

type collectionDoneMsg struct {
	gen        int
	collection *models.Collection
	err        error
}

type detailDoneMsg struct {
	gen    int
	detail *models.MovieDetail
	err    error
}

// Init fetches the collection so the Collection tab is populated on first view.
func (m *Model) Init() tea.Cmd {
	return m.refreshCollection()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		listHeight := msg.Height - 12
		if listHeight < 4 {
			listHeight = 4
		}
		m.resultsList.SetSize(msg.Width-4, listHeight)
		m.recList.SetSize(msg.Width-4, listHeight)
		m.collList.SetSize(msg.Width-4, listHeight)
		return m, nil

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case statusExpiredMsg:
		m.expireStatus(msg)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case uploadDoneMsg:
		return m.handleUploadDone(msg)

	case searchDoneMsg:
		return m.handleSearchDone(msg)

	case commitDoneMsg:
		return m.handleCommitDone(msg)

	case recsDoneMsg:
		return m.handleRecsDone(msg)

	case collectionDoneMsg:
		return m.handleCollectionDone(msg)

	case detailDoneMsg:
		return m.handleDetailDone(msg)
	}

	return m, nil
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	}

	if m.modalOpen {
		switch msg.String() {
		case "esc", "q":
			m.closeModal()
		}
		// Any other interaction stays inside the modal and never closes it.
		return m, nil
	}

	switch msg.String() {
	case "tab":
		return m, m.switchTab((m.activeTab + 1) % tabCount)
	case "shift+tab":
		return m, m.switchTab((m.activeTab + tabCount - 1) % tabCount)
	}

	switch m.activeTab {
	case TabImport:
		return m.handleImportKeys(msg)
	case TabAdd:
		return m.handleAddKeys(msg)
	case TabRecommend:
		return m.handleRecommendKeys(msg)
	case TabCollection:
		return m.handleCollectionKeys(msg)
	}

	return m, nil
}

// switchTab deactivates the current tab (invalidating its in-flight requests)
// and activates the target. Activating Collection triggers a refresh.
func (m *Model) switchTab(target Tab) tea.Cmd {
	if target == m.activeTab {
		return nil
	}

	switch m.activeTab {
	case TabImport:
		m.uploadGen++
	case TabAdd:
		m.searchGen++
		// The discarded response will never move the phase forward, so the
		// flow must not be left waiting on it.
		switch m.phase {
		case phaseSearching:
			m.phase = phaseIdle
		case phaseSubmitting:
			m.phase = phaseRating
		}
	case TabRecommend:
		m.recGen++
	case TabCollection:
		m.collGen++
	}
	m.closeModal()

	m.activeTab = target
	if target == TabCollection {
		return m.refreshCollection()
	}
	return nil
}

func (m *Model) closeModal() {
	if !m.modalOpen {
		return
	}
	m.modalOpen = false
	m.detail = nil
	m.detailErr = nil
	m.detailGen++
}

// openDetail starts a detail fetch for tmdbID. Any previously displayed detail
// is cleared immediately so a stale record can never bleed into the new one.
func (m *Model) openDetail(tmdbID int) tea.Cmd {
	m.detailGen++
	gen := m.detailGen
	m.modalOpen = true
	m.detail = nil
	m.detailErr = nil

	return tea.Batch(m.startLoading(), func() tea.Msg {
		detail, err := m.library.MovieDetail(m.ctx, tmdbID)
		return detailDoneMsg{gen: gen, detail: detail, err: err}
	})
}

func (m *Model) handleDetailDone(msg detailDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.detailGen {
		return m, nil
	}

	if msg.err != nil {
		m.detailErr = msg.err
		return m, nil
	}

	m.detail = msg.detail
	return m, nil
}

// refreshCollection fetches the collection snapshot, replacing the previous one
// wholesale. Idempotent for unchanged backend state.
func (m *Model) refreshCollection() tea.Cmd {
	m.collGen++
	gen := m.collGen

	return tea.Batch(m.startLoading(), func() tea.Msg {
		collection, err := m.library.Movies(m.ctx)
		return collectionDoneMsg{gen: gen, collection: collection, err: err}
	})
}

func (m *Model) handleCollectionDone(msg collectionDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.collGen {
		return m, nil
	}

	if msg.err != nil {
		return m, m.showStatus(regionCollection, connectivityMessage(msg.err), statusError)
	}

	m.collection = msg.collection
	items := make([]list.Item, len(msg.collection.Movies))
	for i, entry := range msg.collection.Movies {
		items[i] = collectionItem{entry: entry}
	}
	m.collList.SetItems(items)
	return m, nil
}

func (m *Model) handleCollectionKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "r":
		return m, m.refreshCollection()
	case "enter":
		if selected, ok := m.collList.SelectedItem().(collectionItem); ok {
			return m, m.openDetail(selected.entry.TMDbID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.collList, cmd = m.collList.Update(msg)
	return m, cmd
}

// generateRecommendations clears the region, then requests a fresh scored set.
// The previous list is gone whether or not the request succeeds.
func (m *Model) generateRecommendations() tea.Cmd {
	m.recGen++
	gen := m.recGen
	m.haveRecs = false
	m.recList.SetItems([]list.Item{})

	return tea.Batch(m.startLoading(), func() tea.Msg {
		set, err := m.library.Recommendations(m.ctx)
		return recsDoneMsg{gen: gen, set: set, err: err}
	})
}

func (m *Model) handleRecsDone(msg recsDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.recGen {
		return m, nil
	}

	if msg.err != nil {
		return m, m.showStatus(regionRecommend, connectivityMessage(msg.err), statusError)
	}

	items := make([]list.Item, len(msg.set.Recommendations))
	for i, rec := range msg.set.Recommendations {
		items[i] = recommendationItem{rec: rec}
	}
	m.recList.SetItems(items)
	m.haveRecs = true

	message := fmt.Sprintf("Found %d personalized recommendations for you!", msg.set.Count)
	return m, m.showStatus(regionRecommend, message, statusSuccess)
}

func (m *Model) handleRecommendKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "g", "r":
		return m, m.generateRecommendations()
	case "enter":
		if selected, ok := m.recList.SelectedItem().(recommendationItem); ok {
			return m, m.openDetail(selected.rec.TMDbID)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.recList, cmd = m.recList.Update(msg)
	return m, cmd
}

func (m *Model) handleImportKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		return m, m.submitUpload()
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// submitUpload validates the path locally, then uploads. Validation failures
// produce an error status and no network call.
func (m *Model) submitUpload() tea.Cmd {
	path := m.pathInput.Value()
	if path == "" {
		return nil
	}

	if !shared.IsCSVPath(path) {
		return m.showStatus(regionUpload, "File must be a CSV export (.csv)", statusError)
	}

	info, err := os.Stat(path)
	if err != nil {
		return m.showStatus(regionUpload, fmt.Sprintf("Cannot read file: %v", err), statusError)
	}
	if info.Size() > m.maxFileSize {
		return m.showStatus(regionUpload, "File exceeds the 10MB upload limit", statusError)
	}

	m.uploadGen++
	gen := m.uploadGen
	filename := path

	return tea.Batch(m.startLoading(), func() tea.Msg {
		f, err := os.Open(filename)
		if err != nil {
			return uploadDoneMsg{gen: gen, filename: filename, err: err}
		}
		defer f.Close()

		result, err := m.library.UploadCSV(m.ctx, filename, f)
		return uploadDoneMsg{gen: gen, filename: filename, result: result, err: err}
	})
}

func (m *Model) handleUploadDone(msg uploadDoneMsg) (tea.Model, tea.Cmd) {
	m.stopLoading()
	if msg.gen != m.uploadGen {
		return m, nil
	}

	if msg.err != nil {
		return m, m.showStatus(regionUpload, connectivityMessage(msg.err), statusError)
	}

	result := msg.result
	if result == nil || !result.Success {
		message := "Import failed"
		if result != nil && result.Message != "" {
			message = result.Message
		}
		return m, m.showStatus(regionUpload, message, statusError)
	}

	if m.recorder != nil {
		m.recorder.RecordImport(msg.filename, result.Count, len(result.Errors), result.Message)
	}

	message := result.Message
	if message == "" {
		message = fmt.Sprintf("Imported %s", shared.MovieCount(result.Count))
	}

	// Per-row problems are supplementary information, shown alongside the
	// success message rather than replacing it.
	detail := importErrorSummary(result.Errors)
	m.pathInput.SetValue("")
	return m, m.showStatusDetail(regionUpload, message, detail, statusSuccess)
}

// importErrorSummary renders up to the first 5 row errors as one line.
func importErrorSummary(errs []string) string {
	if len(errs) == 0 {
		return ""
	}

	shown := errs
	if len(shown) > 5 {
		shown = shown[:5]
	}

	out := "Some rows were skipped: "
	for i, e := range shown {
		if i > 0 {
			out += "; "
		}
		out += e
	}
	if len(errs) > 5 {
		out += fmt.Sprintf(" (and %d more)", len(errs)-5)
	}
	return out
}

// connectivityMessage maps an error to user-facing status text. Transport
// failures get a generic connectivity message; backend-reported failures
// surface the backend's own text.
func connectivityMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, shared.ErrNetwork) {
		return "Could not reach the movie tracker. Is the backend running?"
	}
	return err.Error()
}
