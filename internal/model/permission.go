package model

// Permission represents a string code for a specific system action.
type Permission string

const (
	// PermissionContentRead allows viewing the game content bank.
	PermissionContentRead Permission = "content:read"

	// PermissionContentWrite allows creating, updating, and deleting content.
	PermissionContentWrite Permission = "content:write"

	// PermissionPlayersRead allows viewing player lists and details.
	PermissionPlayersRead Permission = "players:read"

	// PermissionPlayersResetSession allows resetting a player's login session.
	PermissionPlayersResetSession Permission = "players:reset_session"

	// PermissionBadgesWrite allows managing the badge catalog.
	PermissionBadgesWrite Permission = "badges:write"

	// PermissionChallengesWrite allows managing daily challenges.
	PermissionChallengesWrite Permission = "challenges:write"
)

// AllPermissions is a slice of all available permissions.
var AllPermissions = []Permission{
	PermissionContentRead,
	PermissionContentWrite,
	PermissionPlayersRead,
	PermissionPlayersResetSession,
	PermissionBadgesWrite,
	PermissionChallengesWrite,
}
