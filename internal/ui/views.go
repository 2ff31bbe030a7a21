package ui

import (
	"fmt"
	"strings"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// View renders the UI based on the active tab, with the detail modal replacing
// the tab content while open.
func (m *Model) View() string {
	if m.modalOpen {
		return m.renderModal()
	}

	var b strings.Builder
	b.WriteString(m.renderTabBar())
	b.WriteString("\n\n")

	switch m.activeTab {
	case TabImport:
		b.WriteString(m.renderImport())
	case TabAdd:
		b.WriteString(m.renderAdd())
	case TabRecommend:
		b.WriteString(m.renderRecommend())
	case TabCollection:
		b.WriteString(m.renderCollection())
	}

	if status := m.status(m.regionForTab()).render(styles); status != "" {
		b.WriteString("\n\n")
		b.WriteString(status)
	}

	b.WriteString("\n\n")
	b.WriteString(styles.help.Render(m.helpLine()))
	return b.String()
}

func (m *Model) regionForTab() statusRegion {
	switch m.activeTab {
	case TabImport:
		return regionUpload
	case TabAdd:
		return regionAdd
	case TabRecommend:
		return regionRecommend
	default:
		return regionCollection
	}
}

func (m *Model) renderTabBar() string {
	var tabs []string
	for t := TabImport; t < tabCount; t++ {
		if t == m.activeTab {
			tabs = append(tabs, styles.active.Render(t.String()))
		} else {
			tabs = append(tabs, styles.tab.Render(t.String()))
		}
	}

	bar := strings.Join(tabs, " ")
	if m.loading() {
		bar += "  " + m.spinner.View() + " working…"
	}
	return bar
}

func (m *Model) renderImport() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Import a CSV export"))
	b.WriteString("\n")
	b.WriteString("Upload a TV Time or Letterboxd CSV export to seed your collection.\n\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n\n")
	b.WriteString(styles.help.Render("enter upload • tab next tab"))
	return b.String()
}

func (m *Model) renderAdd() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Add a movie"))
	b.WriteString("\n")

	switch m.phase {
	case phaseIdle, phaseSearching:
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
		b.WriteString(m.yearInput.View())
		if m.phase == phaseSearching {
			b.WriteString("\n\nSearching…")
		}

	case phaseResults:
		if len(m.resultsList.Items()) == 0 {
			b.WriteString("\nNo results found. Try a different title or year.")
			b.WriteString("\n\n")
			b.WriteString(styles.help.Render("esc new search"))
			return b.String()
		}
		b.WriteString(m.resultsList.View())

	case phaseRating, phaseSubmitting:
		title := m.selected.Title
		if m.selected.Year > 0 {
			title = fmt.Sprintf("%s (%d)", title, m.selected.Year)
		}
		b.WriteString(fmt.Sprintf("Rate '%s'\n\n", title))
		b.WriteString(m.ratingInput.View())
		b.WriteString("\n")
		b.WriteString(m.dateInput.View())
		if m.phase == phaseSubmitting {
			b.WriteString("\n\nAdding…")
		}
	}

	if help := m.searchHelp(); help != "" {
		b.WriteString("\n\n")
		b.WriteString(styles.help.Render(help))
	}
	return b.String()
}

func (m *Model) renderRecommend() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Personalized recommendations"))
	b.WriteString("\n")

	if !m.haveRecs {
		b.WriteString("Press g to generate recommendations from your rated movies.\n")
		b.WriteString("You need at least 5 rated movies for scoring to work.")
		return b.String()
	}

	if len(m.recList.Items()) == 0 {
		b.WriteString("No recommendations yet. Press g to generate.")
		return b.String()
	}

	b.WriteString(m.recList.View())
	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter details • g regenerate"))
	return b.String()
}

func (m *Model) renderCollection() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("Your collection"))
	b.WriteString("\n")

	if m.collection == nil {
		b.WriteString("Loading your collection…")
		return b.String()
	}

	if m.collection.Count == 0 {
		b.WriteString("Your collection is empty.\n")
		b.WriteString("Import a CSV export or add movies manually to get started.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("You have %s in your collection\n\n", shared.MovieCount(m.collection.Count)))
	b.WriteString(m.collList.View())
	b.WriteString("\n")
	b.WriteString(styles.help.Render("enter details • r refresh"))
	return b.String()
}

func (m *Model) renderModal() string {
	var b strings.Builder

	if m.detailErr != nil {
		b.WriteString(styles.err.Render(fmt.Sprintf("Could not load details: %v", m.detailErr)))
		b.WriteString("\n\n")
		b.WriteString(styles.help.Render("esc close"))
		return styles.modal.Render(b.String())
	}

	if m.detail == nil {
		b.WriteString(m.spinner.View())
		b.WriteString(" Loading details…")
		b.WriteString("\n\n")
		b.WriteString(styles.help.Render("esc close"))
		return styles.modal.Render(b.String())
	}

	d := m.detail

	header := d.Title
	if d.Year > 0 {
		header = fmt.Sprintf("%s (%d)", header, d.Year)
	}
	b.WriteString(styles.title.Render(header))
	b.WriteString("\n")

	if len(d.Genres) > 0 {
		b.WriteString(strings.Join(d.Genres, ", "))
		b.WriteString("\n")
	}

	rating := "N/A"
	if d.Rating > 0 {
		rating = fmt.Sprintf("%.1f/10", d.Rating)
	}
	b.WriteString(fmt.Sprintf("Runtime: %s • Rating: %s\n", shared.FormatRuntime(d.Runtime), rating))

	if d.Overview != "" {
		b.WriteString("\n")
		b.WriteString(d.Overview)
		b.WriteString("\n")
	}

	// Director and cast sections appear only when the backend provided them.
	if d.Director != "" {
		b.WriteString(fmt.Sprintf("\nDirector: %s\n", d.Director))
	}
	if len(d.Cast) > 0 {
		b.WriteString("\nCast:\n")
		for i, member := range d.Cast {
			if i >= 10 {
				break
			}
			line := "  " + member.Name
			if member.Character != "" {
				line += " as " + member.Character
			}
			b.WriteString(line + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(styles.help.Render("esc close"))
	return styles.modal.Render(b.String())
}

func (m *Model) helpLine() string {
	return m.help.ShortHelpView(m.keys.ShortHelp())
}
