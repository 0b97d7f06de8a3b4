package ui

import (
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/search"
)

// stateMsg carries a search state published by the controller
type stateMsg search.State

// updatesClosedMsg is sent once the controller's update channel is closed
type updatesClosedMsg struct{}

type favoritesLoadedMsg struct {
	err error
}

type favoriteToggledMsg struct {
	track models.Track
	added bool
	err   error
}

type previewOpenedMsg struct {
	track models.Track
	err   error
}
