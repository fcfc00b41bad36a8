package models

// Account is the local projection of an externally authenticated identity.
// Rows are upserted from token claims on first sight and never reused.
type Account struct {
	BaseModel

	Name   string `json:"name" gorm:"uniqueIndex"`
	Nick   string `json:"nick"`
	Status string `json:"status"`

	Workspaces []Workspace `json:"workspaces" gorm:"foreignKey:OwnerID"`
	Channels   []Channel   `json:"channels" gorm:"foreignKey:AccountID"`
}
