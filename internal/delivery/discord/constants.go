package discord

const (
	// Display limits
	topTeamsLimit    = 10
	maxMessageLength = 2000
	maxEmbedLength   = 4096

	// Embed colors
	colorGold  = 0xFFD700 // Standings
	colorGreen = 0x2ECC71 // Active game
	colorRed   = 0xE74C3C // Finished game / eliminations
	colorGray  = 0x95A5A6 // Default/neutral
	colorBlue  = 0x3498DB // Info/teams

	userIDPrefix = "discord:"

	msgNoRights = "You don't have permission to do that."
)
