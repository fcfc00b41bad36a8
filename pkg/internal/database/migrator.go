package database

import (
	"github.com/solarent/beacon/pkg/internal/models"
	"gorm.io/gorm"
)

var AutoMaintainRange = []any{
	&models.Account{},
	&models.Workspace{},
	&models.WorkspaceMember{},
	&models.Channel{},
	&models.ChannelMember{},
	&models.Message{},
}

func RunMigration(source *gorm.DB) error {
	if err := source.AutoMigrate(AutoMaintainRange...); err != nil {
		return err
	}

	return nil
}
