package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var ErrBadReplyTarget = errors.New("reply target does not exist in this channel")

// NewMessage gates and persists a message inside one transaction so the
// access check and the insert see the same membership state. The
// workspace id is snapshotted from the channel at send time.
func NewMessage(author models.Account, channelId uint, content string, replyId *uint, clientUuid string) (models.Message, error) {
	var message models.Message
	err := database.C.Transaction(func(tx *gorm.DB) error {
		channel, verdict := CheckChannelAccess(tx, author.ID, channelId)
		if !verdict.Allowed {
			return fmt.Errorf("%w: %s", ErrAccessDenied, verdict.Reason)
		}

		if replyId != nil {
			var count int64
			if err := tx.Model(&models.Message{}).
				Where("id = ? AND channel_id = ?", *replyId, channel.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return ErrBadReplyTarget
			}
		}

		if len(clientUuid) == 0 {
			clientUuid = uuid.NewString()
		}

		message = models.Message{
			Uuid:        clientUuid,
			Content:     content,
			ChannelID:   channel.ID,
			WorkspaceID: channel.WorkspaceID,
			AuthorID:    author.ID,
			ReplyID:     replyId,
		}

		return tx.Create(&message).Error
	})

	return message, err
}

func GetMessage(id uint) (models.Message, error) {
	var message models.Message
	if err := database.C.Where("id = ?", id).First(&message).Error; err != nil {
		return message, err
	}

	return message, nil
}

// EditMessage replaces the content of the caller's own message. The
// edited flag is set on every accepted edit, changed content or not.
func EditMessage(user models.Account, messageId uint, content string) (models.Message, error) {
	message, err := GetMessage(messageId)
	if err != nil {
		return message, err
	}

	if verdict := CheckMessageOwnership(message, user.ID); !verdict.Allowed {
		return message, fmt.Errorf("%w: %s", ErrAccessDenied, verdict.Reason)
	}

	message.Content = content
	message.IsEdited = true
	if err := database.C.Save(&message).Error; err != nil {
		return message, err
	}

	return message, nil
}

// DeleteMessage removes the caller's own message. Replies that pointed at
// it are left in place; cascading would destroy other authors' content.
func DeleteMessage(user models.Account, messageId uint) error {
	message, err := GetMessage(messageId)
	if err != nil {
		return err
	}

	if verdict := CheckMessageOwnership(message, user.ID); !verdict.Allowed {
		return fmt.Errorf("%w: %s", ErrAccessDenied, verdict.Reason)
	}

	return database.C.Delete(&message).Error
}

// ToggleReaction adds the account under the emoji, or withdraws it when
// already present. Any account that can see the channel can react.
func ToggleReaction(user models.Account, messageId uint, emoji string) (models.Message, error) {
	var message models.Message
	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", messageId).First(&message).Error; err != nil {
			return err
		}

		if _, verdict := CheckChannelAccess(tx, user.ID, message.ChannelID); !verdict.Allowed {
			return fmt.Errorf("%w: %s", ErrAccessDenied, verdict.Reason)
		}

		reactions := []models.Reaction(message.Reactions)
		idx := lo.IndexOf(lo.Map(reactions, func(item models.Reaction, index int) string {
			return item.Emoji
		}), emoji)

		if idx < 0 {
			reactions = append(reactions, models.Reaction{
				Emoji:      emoji,
				AccountIDs: []uint{user.ID},
			})
		} else if lo.Contains(reactions[idx].AccountIDs, user.ID) {
			reactions[idx].AccountIDs = lo.Without(reactions[idx].AccountIDs, user.ID)
			if len(reactions[idx].AccountIDs) == 0 {
				reactions = append(reactions[:idx], reactions[idx+1:]...)
			}
		} else {
			reactions[idx].AccountIDs = append(reactions[idx].AccountIDs, user.ID)
		}

		message.Reactions = datatypes.NewJSONSlice(reactions)
		return tx.Save(&message).Error
	})

	return message, err
}
