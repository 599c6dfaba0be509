package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/leonardonapoless/PAMS/internal/models"
)

var _ list.Item = resultItem{}

// resultItem wraps [models.SearchResult] to implement [list.Item].
type resultItem struct {
	result models.SearchResult
}

func (i resultItem) FilterValue() string { return i.result.Title }
func (i resultItem) Title() string       { return i.result.Title }
func (i resultItem) Description() string {
	desc := i.result.Artist
	if i.result.Album != models.NotAvailable {
		desc = fmt.Sprintf("%s • %s", desc, i.result.Album)
	}
	if i.result.Duration != models.NotAvailable {
		desc = fmt.Sprintf("%s • %s", desc, i.result.Duration)
	}
	return desc
}
