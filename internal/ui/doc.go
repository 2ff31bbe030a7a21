// Package ui implements the interactive movie tracker as a bubbletea program.
//
// The model is a tabbed single screen: Import, Add Movie, Recommendations, and
// Collection, plus a detail modal that overlays whichever tab opened it. Each
// flow issues requests as [tea.Cmd] closures carrying a generation counter;
// responses from a superseded request (a newer submit, or a tab switch) are
// discarded on arrival. Status messages live in per-flow regions with a fixed
// TTL, and the busy indicator is reference counted across overlapping flows.
package ui
