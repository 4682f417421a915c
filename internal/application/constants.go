package application

const (
	// Game creation limits
	minPasswordLength = 6
	maxPasswordLength = 20
	minPlayers        = 2
	defaultMaxPlayers = 12

	// Hub
	maxMessageRunes     = 500
	defaultMessageLimit = 20
	maxMessageLimit     = 100

	// Google Sheets configuration
	sheetsPermissionRole = "writer"
	sheetsClearRange     = "A1:Z1000"
	sheetsTitlePrefix    = "Standings - "

	// Excel report configuration
	excelStandingsSheet = "Standings"
	excelPlayersSheet   = "Players"

	mapsBaseURL = "https://maps.google.com/?q="
)

var defaultRules = []string{
	"Each player receives a target at the start of the game.",
	"Eliminate your target by tagging them with a foam dart.",
	"Eliminations only count outside of school grounds.",
	"Workplaces, places of worship and private homes without permission are safe zones.",
	"No eliminations while a player is driving.",
	"Eliminated players must report it in the app right away.",
	"Eliminators record the elimination for their team.",
	"Spectators may not help or warn active players.",
	"Admins settle disputes and can revive players.",
	"The last team with active players wins.",
}
