package models

import "gorm.io/datatypes"

type Reaction struct {
	Emoji      string `json:"emoji"`
	AccountIDs []uint `json:"account_ids"`
}

type Message struct {
	BaseModel

	Uuid     string `json:"uuid"`
	Content  string `json:"content"`
	IsEdited bool   `json:"is_edited"`

	// WorkspaceID is snapshotted from the channel at send time. Channels never
	// move between workspaces, so it is not re-derived afterwards.
	ChannelID   uint `json:"channel_id" gorm:"index"`
	WorkspaceID uint `json:"workspace_id" gorm:"index"`
	AuthorID    uint `json:"author_id"`

	ReplyID   *uint                         `json:"reply_id,omitempty"`
	ReplyTo   *Message                      `json:"reply_to,omitempty" gorm:"foreignKey:ReplyID"`
	Reactions datatypes.JSONSlice[Reaction] `json:"reactions"`

	Channel Channel `json:"channel"`
	Author  Account `json:"author" gorm:"foreignKey:AuthorID"`
}
