package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// statusTTL is how long a status message stays visible.
const statusTTL = 5 * time.Second

// statusKind marks how a status message is styled.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusError
)

// statusRegion names a flow's status surface. Flows never share a surface, so
// a message from one flow can never clobber another's.
type statusRegion int

const (
	regionUpload statusRegion = iota
	regionAdd
	regionRecommend
	regionCollection
)

// statusState is a single region's visible message. seq identifies the message
// generation: an expiry tick scheduled for an older message is ignored, so a
// fresh message always gets its full TTL.
type statusState struct {
	message string
	detail  string // Supplementary line (e.g. per-row import errors)
	kind    statusKind
	visible bool
	seq     int
}

// statusExpiredMsg fires when a region's TTL elapses. Carries the sequence it
// was scheduled for.
type statusExpiredMsg struct {
	region statusRegion
	seq    int
}

// showStatus sets a region's message and schedules its expiry. Replacing a
// message bumps the sequence, which invalidates any previously scheduled hide.
func (m *Model) showStatus(region statusRegion, message string, kind statusKind) tea.Cmd {
	return m.showStatusDetail(region, message, "", kind)
}

// showStatusDetail is showStatus with a supplementary second line, shown and
// expired together with the main message.
func (m *Model) showStatusDetail(region statusRegion, message, detail string, kind statusKind) tea.Cmd {
	st := m.status(region)
	st.seq++
	st.message = message
	st.detail = detail
	st.kind = kind
	st.visible = true

	seq := st.seq
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpiredMsg{region: region, seq: seq}
	})
}

// expireStatus hides a region if the expiry belongs to its current message.
func (m *Model) expireStatus(msg statusExpiredMsg) {
	st := m.status(msg.region)
	if st.seq == msg.seq {
		st.visible = false
	}
}

func (m *Model) status(region statusRegion) *statusState {
	return &m.statuses[region]
}

// startLoading marks one more network call in flight. The busy indicator is
// reference-counted so overlapping flows cannot prematurely clear it.
func (m *Model) startLoading() tea.Cmd {
	m.loadingCount++
	if m.loadingCount == 1 {
		return m.spinner.Tick
	}
	return nil
}

// stopLoading releases one in-flight call. Called on every completion path,
// including stale responses and errors.
func (m *Model) stopLoading() {
	if m.loadingCount > 0 {
		m.loadingCount--
	}
}

func (m *Model) loading() bool {
	return m.loadingCount > 0
}

func (st *statusState) render(p *Palette) string {
	if !st.visible {
		return ""
	}

	var style = p.warn
	switch st.kind {
	case statusSuccess:
		style = p.ok
	case statusError:
		style = p.err
	}

	out := style.Render(st.message)
	if st.detail != "" {
		out += "\n" + p.help.Render(st.detail)
	}
	return out
}
