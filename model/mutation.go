package model

// TeamMutationResult is the discriminated outcome of a team operation;
// exactly one field group is populated depending on the operation.
type TeamMutationResult struct {
	Team     *Team  `json:"team,omitempty"`
	Password string `json:"password,omitempty"`

	Joined bool `json:"joined,omitempty"`
	Left   bool `json:"left,omitempty"`
	Kicked bool `json:"kicked,omitempty"`
}
