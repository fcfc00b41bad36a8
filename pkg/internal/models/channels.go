package models

type Channel struct {
	BaseModel

	Name        string `json:"name" gorm:"uniqueIndex:idx_workspace_channel_name"`
	Description string `json:"description"`
	IsPrivate   bool   `json:"is_private"`
	WorkspaceID uint   `json:"workspace_id" gorm:"uniqueIndex:idx_workspace_channel_name"`
	AccountID   uint   `json:"account_id"`

	Workspace Workspace       `json:"workspace"`
	Account   Account         `json:"account"`
	Members   []ChannelMember `json:"members"`
	Messages  []Message       `json:"messages"`
}

type ChannelMember struct {
	BaseModel

	ChannelID uint `json:"channel_id" gorm:"uniqueIndex:idx_channel_account"`
	AccountID uint `json:"account_id" gorm:"uniqueIndex:idx_channel_account"`

	Channel Channel `json:"channel"`
	Account Account `json:"account"`
}
