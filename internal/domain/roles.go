package domain

// Role mirrors the role claim of CRM-issued tokens. The engine only ever
// serves trainers; token issuance lives in the main CRM.
type Role string

const (
	RoleTrainer Role = "trainer"
	RoleClient  Role = "client"
)
