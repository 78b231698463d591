package fixtures

const (
	UserUUID1 = "00000000-0000-4000-a000-000000000001"
	UserUUID2 = "00000000-0000-4000-a000-000000000002"
	UserUUID3 = "00000000-0000-4000-a000-000000000003"
	UserUUID4 = "00000000-0000-4000-a000-000000000004"
	UserUUID5 = "00000000-0000-4000-a000-000000000005"

	TeamUUID1 = "10000000-0000-4000-a000-000000000001"
	TeamUUID2 = "10000000-0000-4000-a000-000000000002"
)
