package models

type WorkspaceRole = string

const (
	WorkspaceRoleAdmin  = WorkspaceRole("admin")
	WorkspaceRoleMember = WorkspaceRole("member")
)

type Workspace struct {
	BaseModel

	Name        string `json:"name"`
	Description string `json:"description"`
	InviteCode  string `json:"invite_code" gorm:"uniqueIndex"`
	OwnerID     uint   `json:"owner_id"`

	Owner    Account           `json:"owner" gorm:"foreignKey:OwnerID"`
	Members  []WorkspaceMember `json:"members"`
	Channels []Channel         `json:"channels"`
}

type WorkspaceMember struct {
	BaseModel

	WorkspaceID uint          `json:"workspace_id" gorm:"uniqueIndex:idx_workspace_account"`
	AccountID   uint          `json:"account_id" gorm:"uniqueIndex:idx_workspace_account"`
	Role        WorkspaceRole `json:"role"`

	Workspace Workspace `json:"workspace"`
	Account   Account   `json:"account"`
}
