package model

const MembershipType = "membership" // also, memdb schema name

// Membership is the single source of truth for "is user in a team".
// One record per user; TeamUUID is empty when the user is teamless.
type Membership struct {
	UserUUID UserUUID `json:"user_uuid"` // PK
	Version  string   `json:"resource_version"`

	TeamUUID TeamUUID `json:"team_uuid"`

	// LeftTeamAt anchors the team-creation cooldown. Zero when the user
	// never left a team voluntarily; kicks do not set it.
	LeftTeamAt UnixTime `json:"left_team_at"`

	// HiddenTeammates is the viewer-controlled hide-list consumed by the
	// aggregator.
	HiddenTeammates []UserUUID `json:"hidden_teammates"`
}

func (m *Membership) ObjType() string {
	return MembershipType
}

func (m *Membership) ObjId() string {
	return m.UserUUID
}

func (m *Membership) InTeam() bool {
	return m.TeamUUID != ""
}

func (m *Membership) Hides(subject UserUUID) bool {
	for _, hidden := range m.HiddenTeammates {
		if hidden == subject {
			return true
		}
	}
	return false
}
