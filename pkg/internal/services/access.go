package services

import (
	"errors"

	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/gorm"
)

// ErrAccessDenied marks an operation refused by the access evaluator.
// Write handlers surface it as a hard failure; read handlers fold it
// into empty results so resource existence is never revealed.
var ErrAccessDenied = errors.New("access denied")

// Verdict is the outcome of a single access evaluation. Reason is for
// logs and tests only and must not leak into read responses.
type Verdict struct {
	Allowed bool
	Reason  string
}

func allow() Verdict {
	return Verdict{Allowed: true}
}

func deny(reason string) Verdict {
	return Verdict{Allowed: false, Reason: reason}
}

// CheckWorkspaceAccess allows iff a workspace membership exists for the
// account. Evaluated fresh on every call; memberships may change between
// requests so verdicts are never cached.
func CheckWorkspaceAccess(tx *gorm.DB, accountId, workspaceId uint) Verdict {
	var count int64
	if err := tx.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND account_id = ?", workspaceId, accountId).
		Count(&count).Error; err != nil {
		return deny(err.Error())
	}
	if count == 0 {
		return deny("not a member of this workspace")
	}
	return allow()
}

// CheckChannelAccess resolves the channel and decides whether the account
// may see or post into it. A missing channel is a deny, not a distinct
// outcome. Private channels require an explicit channel membership;
// public channels require workspace membership only, so a workspace
// member can read and post without ever joining.
func CheckChannelAccess(tx *gorm.DB, accountId, channelId uint) (models.Channel, Verdict) {
	var channel models.Channel
	if err := tx.Where("id = ?", channelId).First(&channel).Error; err != nil {
		return channel, deny("channel not found")
	}

	if channel.IsPrivate {
		var count int64
		if err := tx.Model(&models.ChannelMember{}).
			Where("channel_id = ? AND account_id = ?", channel.ID, accountId).
			Count(&count).Error; err != nil {
			return channel, deny(err.Error())
		}
		if count == 0 {
			return channel, deny("not a member of this channel")
		}
		return channel, allow()
	}

	return channel, CheckWorkspaceAccess(tx, accountId, channel.WorkspaceID)
}

// CheckMessageOwnership allows iff the account authored the message.
// Ownership is absolute; there is no admin override.
func CheckMessageOwnership(message models.Message, accountId uint) Verdict {
	if message.AuthorID != accountId {
		return deny("only the author can mutate a message")
	}
	return allow()
}
