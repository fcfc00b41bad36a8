package services

import (
	"testing"

	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNewMessageAccess(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	member := makeAccount(t, "member")
	stranger := makeAccount(t, "stranger")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	joinAsMember(t, member, workspace)

	public, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	private, err := NewChannel(owner, workspace.ID, "secrets", true, "")
	require.NoError(t, err)

	// Posting into a public channel needs workspace membership only.
	message, err := NewMessage(member, public.ID, "hello", nil, "")
	require.NoError(t, err)
	require.Equal(t, workspace.ID, message.WorkspaceID)
	require.NotEmpty(t, message.Uuid)

	_, err = NewMessage(stranger, public.ID, "hello", nil, "")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = NewMessage(member, private.ID, "psst", nil, "")
	require.ErrorIs(t, err, ErrAccessDenied)

	_, err = NewMessage(owner, private.ID, "psst", nil, "")
	require.NoError(t, err)
}

func TestNewMessageReplyValidation(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)

	random, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	design, err := NewChannel(owner, workspace.ID, "design", false, "")
	require.NoError(t, err)

	parent, err := NewMessage(owner, random.ID, "root", nil, "")
	require.NoError(t, err)

	reply, err := NewMessage(owner, random.ID, "child", &parent.ID, "")
	require.NoError(t, err)
	require.Equal(t, parent.ID, *reply.ReplyID)

	// A reply chain cannot cross channels.
	_, err = NewMessage(owner, design.ID, "child", &parent.ID, "")
	require.ErrorIs(t, err, ErrBadReplyTarget)

	missing := parent.ID + 100
	_, err = NewMessage(owner, random.ID, "child", &missing, "")
	require.ErrorIs(t, err, ErrBadReplyTarget)
}

func TestEditMessage(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)

	message, err := NewMessage(owner, channel.ID, "hello", nil, "")
	require.NoError(t, err)
	require.False(t, message.IsEdited)

	edited, err := EditMessage(owner, message.ID, "hello there")
	require.NoError(t, err)
	require.Equal(t, "hello there", edited.Content)
	require.True(t, edited.IsEdited)

	// Re-submitting identical content still marks the message as edited.
	fresh, err := NewMessage(owner, channel.ID, "same", nil, "")
	require.NoError(t, err)
	edited, err = EditMessage(owner, fresh.ID, "same")
	require.NoError(t, err)
	require.True(t, edited.IsEdited)
}

func TestMessageMutationAuthorship(t *testing.T) {
	useTestSource(t)

	alice := makeAccount(t, "alice")
	bob := makeAccount(t, "bob")
	workspace, err := NewWorkspace(alice, "Acme", "")
	require.NoError(t, err)
	joinAsMember(t, bob, workspace)

	// Both get the admin role; it must not matter.
	require.NoError(t, database.C.Model(&models.WorkspaceMember{}).
		Where("workspace_id = ? AND account_id = ?", workspace.ID, bob.ID).
		Update("role", models.WorkspaceRoleAdmin).Error)

	channel, err := NewChannel(alice, workspace.ID, "random", false, "")
	require.NoError(t, err)
	message, err := NewMessage(alice, channel.ID, "mine", nil, "")
	require.NoError(t, err)

	_, err = EditMessage(bob, message.ID, "hijacked")
	require.ErrorIs(t, err, ErrAccessDenied)
	require.ErrorIs(t, DeleteMessage(bob, message.ID), ErrAccessDenied)

	require.NoError(t, DeleteMessage(alice, message.ID))
	_, err = GetMessage(message.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestToggleReaction(t *testing.T) {
	useTestSource(t)

	owner := makeAccount(t, "owner")
	member := makeAccount(t, "member")
	stranger := makeAccount(t, "stranger")
	workspace, err := NewWorkspace(owner, "Acme", "")
	require.NoError(t, err)
	joinAsMember(t, member, workspace)

	channel, err := NewChannel(owner, workspace.ID, "random", false, "")
	require.NoError(t, err)
	message, err := NewMessage(owner, channel.ID, "hello", nil, "")
	require.NoError(t, err)

	got, err := ToggleReaction(member, message.ID, "👍")
	require.NoError(t, err)
	require.Len(t, got.Reactions, 1)
	require.Equal(t, []uint{member.ID}, got.Reactions[0].AccountIDs)

	got, err = ToggleReaction(owner, message.ID, "👍")
	require.NoError(t, err)
	require.ElementsMatch(t, []uint{member.ID, owner.ID}, got.Reactions[0].AccountIDs)

	// Toggling again withdraws; the emoji disappears with its last backer.
	got, err = ToggleReaction(owner, message.ID, "👍")
	require.NoError(t, err)
	require.Equal(t, []uint{member.ID}, got.Reactions[0].AccountIDs)
	got, err = ToggleReaction(member, message.ID, "👍")
	require.NoError(t, err)
	require.Empty(t, got.Reactions)

	_, err = ToggleReaction(stranger, message.ID, "👍")
	require.ErrorIs(t, err, ErrAccessDenied)
}
