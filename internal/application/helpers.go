package application

import (
	"net/url"
	"strings"

	"assassin/internal/models"
)

// LocationURL builds a Google Maps search link for the game location.
func LocationURL(game *models.Game) string {
	escaped := strings.ReplaceAll(url.QueryEscape(game.Location), "+", "%20")
	return mapsBaseURL + escaped
}

func displayNameOr(name, fallback string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return fallback
	}
	return name
}

func ensureOpen(game *models.Game) error {
	if game.Status == models.GameFinished {
		return ErrGameFinished
	}
	return nil
}
