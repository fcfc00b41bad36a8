package services

import (
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/gorm"
)

const DefaultChannelName = "general"

// Unambiguous alphabet, no I/L/O/0/1, so codes survive being read aloud.
const inviteCodeAlphabet = "ABCDEFGHJKMNPQRSTUVWXYZ23456789"
const inviteCodeLength = 8

var ErrInvalidInviteCode = errors.New("invalid invite code")

func GenerateInviteCode(tx *gorm.DB) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		buf := make([]byte, inviteCodeLength)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("unable to read random source: %v", err)
		}
		for idx, b := range buf {
			buf[idx] = inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)]
		}
		code := string(buf)

		var count int64
		if err := tx.Model(&models.Workspace{}).
			Where("invite_code = ?", code).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}

	return "", fmt.Errorf("unable to generate a unique invite code")
}

// NewWorkspace creates the workspace, enrolls the owner as admin, and
// bootstraps a public default channel with the owner enrolled, all in
// one transaction so no partially initialized workspace can be seen.
func NewWorkspace(owner models.Account, name, description string) (models.Workspace, error) {
	var workspace models.Workspace
	err := database.C.Transaction(func(tx *gorm.DB) error {
		code, err := GenerateInviteCode(tx)
		if err != nil {
			return err
		}

		workspace = models.Workspace{
			Name:        name,
			Description: description,
			InviteCode:  code,
			OwnerID:     owner.ID,
		}
		if err := tx.Create(&workspace).Error; err != nil {
			return err
		}

		if err := tx.Create(&models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			AccountID:   owner.ID,
			Role:        models.WorkspaceRoleAdmin,
		}).Error; err != nil {
			return err
		}

		channel := models.Channel{
			Name:        DefaultChannelName,
			Description: "General discussion",
			WorkspaceID: workspace.ID,
			AccountID:   owner.ID,
		}
		if err := tx.Create(&channel).Error; err != nil {
			return err
		}

		return tx.Create(&models.ChannelMember{
			ChannelID: channel.ID,
			AccountID: owner.ID,
		}).Error
	})

	return workspace, err
}

func GetWorkspace(id uint) (models.Workspace, error) {
	var workspace models.Workspace
	if err := database.C.Where("id = ?", id).First(&workspace).Error; err != nil {
		return workspace, err
	}

	return workspace, nil
}

// ListWorkspace returns the caller's memberships with workspaces attached,
// which is the only listing surface; there is no global workspace index.
func ListWorkspace(user models.Account) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	if err := database.C.
		Where("account_id = ?", user.ID).
		Preload("Workspace").
		Find(&members).Error; err != nil {
		return members, err
	}

	return members, nil
}

func ListWorkspaceMember(workspaceId uint) ([]models.WorkspaceMember, error) {
	var members []models.WorkspaceMember
	if err := database.C.
		Where("workspace_id = ?", workspaceId).
		Preload("Account").
		Find(&members).Error; err != nil {
		return members, err
	}

	return members, nil
}

// JoinWorkspaceByCode redeems an invite code. Joining twice is a no-op
// that returns the same workspace. New members are also enrolled into
// the default channel when one exists; its absence is tolerated since
// the join must not hard-depend on workspace bootstrap invariants.
func JoinWorkspaceByCode(user models.Account, code string) (models.Workspace, error) {
	var workspace models.Workspace
	if err := database.C.Where("invite_code = ?", code).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return workspace, ErrInvalidInviteCode
		}
		return workspace, err
	}

	var existing models.WorkspaceMember
	if err := database.C.
		Where("workspace_id = ? AND account_id = ?", workspace.ID, user.ID).
		First(&existing).Error; err == nil {
		return workspace, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return workspace, err
	}

	err := database.C.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&models.WorkspaceMember{
			WorkspaceID: workspace.ID,
			AccountID:   user.ID,
			Role:        models.WorkspaceRoleMember,
		}).Error; err != nil {
			return err
		}

		var general models.Channel
		if err := tx.
			Where("workspace_id = ? AND name = ?", workspace.ID, DefaultChannelName).
			First(&general).Error; err != nil {
			return nil
		}

		return tx.Create(&models.ChannelMember{
			ChannelID: general.ID,
			AccountID: user.ID,
		}).Error
	})

	return workspace, err
}
