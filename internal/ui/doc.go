// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a live search workflow:
//  1. [SearchView] : Type a query; searches fire automatically after a short pause in typing
//  2. [DetailView] : Inspect one result's credits, release metadata, and platform links
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via tea.Msg values.
// Search lifecycle events flow through a channel from the orchestrator, so every keystroke stays non-blocking while
// in-flight searches are superseded behind the scenes.
//
// Keyboard navigation uses the arrow keys (ctrl+j/ctrl+k also move, leaving plain letters free for the query input),
// enter, esc, and ctrl+c, with contextual help displayed via charmbracelet/bubbles/help.
package ui
