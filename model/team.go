package model

const TeamType = "team" // also, memdb schema name

type Team struct {
	UUID    TeamUUID `json:"uuid"` // PK
	Version string   `json:"resource_version"`

	OwnerUUID      UserUUID   `json:"owner_uuid"`
	Password       string     `json:"password"`
	MaximumMembers int        `json:"maximum_members"`
	Members        []UserUUID `json:"members"`

	CreatedAt UnixTime `json:"created_at"`
}

func (t *Team) ObjType() string {
	return TeamType
}

func (t *Team) ObjId() string {
	return t.UUID
}

func (t *Team) IsFull() bool {
	return len(t.Members) >= t.MaximumMembers
}

func (t *Team) HasMember(user UserUUID) bool {
	for _, m := range t.Members {
		if m == user {
			return true
		}
	}
	return false
}

func (t *Team) RemoveMember(user UserUUID) {
	members := make([]UserUUID, 0, len(t.Members))
	for _, m := range t.Members {
		if m != user {
			members = append(members, m)
		}
	}
	t.Members = members
}
