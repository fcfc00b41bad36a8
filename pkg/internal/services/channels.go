package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/gorm"
)

var (
	ErrChannelNameTaken   = errors.New("a channel with this name already exists in the workspace")
	ErrPrivateChannel     = errors.New("private channels cannot be joined without an invitation")
	ErrNotWorkspaceMember = errors.New("not a member of this workspace")
)

var channelNamePattern = regexp.MustCompile("^[a-z0-9-]+$")

// NormalizeChannelName maps display names onto the stored form: lowercase
// with spaces collapsed to hyphens, so "Design Team" and "design-team"
// refer to the same channel.
func NormalizeChannelName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.ReplaceAll(name, " ", "-")
}

func CheckChannelName(name string) error {
	if !channelNamePattern.MatchString(name) {
		return fmt.Errorf("channel name should only contain lowercase letters, numbers, and hyphens")
	}
	return nil
}

// NewChannel creates a channel and enrolls its creator in one transaction,
// so a crash cannot leave a channel nobody can access. The creator must be
// a workspace member; the name must be unique post-normalization.
func NewChannel(creator models.Account, workspaceId uint, name string, isPrivate bool, description string) (models.Channel, error) {
	var channel models.Channel
	name = NormalizeChannelName(name)
	if err := CheckChannelName(name); err != nil {
		return channel, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if verdict := CheckWorkspaceAccess(tx, creator.ID, workspaceId); !verdict.Allowed {
			return fmt.Errorf("%w: %s", ErrAccessDenied, verdict.Reason)
		}

		var count int64
		if err := tx.Model(&models.Channel{}).
			Where("workspace_id = ? AND name = ?", workspaceId, name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrChannelNameTaken
		}

		channel = models.Channel{
			Name:        name,
			Description: description,
			IsPrivate:   isPrivate,
			WorkspaceID: workspaceId,
			AccountID:   creator.ID,
		}
		if err := tx.Create(&channel).Error; err != nil {
			return err
		}

		return tx.Create(&models.ChannelMember{
			ChannelID: channel.ID,
			AccountID: creator.ID,
		}).Error
	})

	return channel, err
}

func GetChannel(id uint) (models.Channel, error) {
	var channel models.Channel
	if err := database.C.Where("id = ?", id).First(&channel).Error; err != nil {
		return channel, err
	}

	return channel, nil
}

// ListChannel returns a workspace's channels with private ones filtered
// down to those the account belongs to.
func ListChannel(user models.Account, workspaceId uint) ([]models.Channel, error) {
	var identities []models.ChannelMember
	if err := database.C.Where("account_id = ?", user.ID).Find(&identities).Error; err != nil {
		return nil, fmt.Errorf("unable to get identities: %v", err)
	}
	idRange := lo.Map(identities, func(item models.ChannelMember, index int) uint {
		return item.ChannelID
	})

	var channels []models.Channel
	if err := database.C.
		Where("workspace_id = ? AND (is_private = ? OR id IN ?)", workspaceId, false, idRange).
		Find(&channels).Error; err != nil {
		return channels, err
	}

	return channels, nil
}

// JoinChannel self-enrolls a workspace member into a public channel.
// Private channels have no self-join path at all; membership there is
// granted only through enrollment flows. Joining twice is a no-op.
func JoinChannel(user models.Account, channelId uint) error {
	channel, err := GetChannel(channelId)
	if err != nil {
		return err
	}

	if verdict := CheckWorkspaceAccess(database.C, user.ID, channel.WorkspaceID); !verdict.Allowed {
		return fmt.Errorf("%w: %v", ErrAccessDenied, ErrNotWorkspaceMember)
	}
	if channel.IsPrivate {
		return fmt.Errorf("%w: %v", ErrAccessDenied, ErrPrivateChannel)
	}

	return AddChannelMember(database.C, user.ID, channel.ID)
}

// AddChannelMember inserts a membership record, treating an existing one
// as success.
func AddChannelMember(tx *gorm.DB, accountId, channelId uint) error {
	var member models.ChannelMember
	if err := tx.Where("channel_id = ? AND account_id = ?", channelId, accountId).
		First(&member).Error; err == nil || !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	member = models.ChannelMember{
		ChannelID: channelId,
		AccountID: accountId,
	}

	return tx.Create(&member).Error
}

func CountChannelMember(channelId uint) (int64, error) {
	var count int64
	if err := database.C.Model(&models.ChannelMember{}).
		Where("channel_id = ?", channelId).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func ListChannelMember(channelId uint) ([]models.ChannelMember, error) {
	var members []models.ChannelMember
	if err := database.C.
		Where("channel_id = ?", channelId).
		Preload("Account").
		Find(&members).Error; err != nil {
		return members, err
	}

	return members, nil
}
