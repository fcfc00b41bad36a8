package services

import (
	"github.com/solarent/beacon/pkg/internal/database"
	"github.com/solarent/beacon/pkg/internal/models"
)

func GetAccount(id uint) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("id = ?", id).First(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}

// LoadOrCreateAccount projects an externally authenticated identity into
// the local accounts table. Identity issuance itself lives outside this
// service; by the time a request gets here the actor is already resolved.
func LoadOrCreateAccount(name, nick string) (models.Account, error) {
	var account models.Account
	if err := database.C.Where("name = ?", name).First(&account).Error; err == nil {
		return account, nil
	}

	if len(nick) == 0 {
		nick = name
	}
	account = models.Account{
		Name: name,
		Nick: nick,
	}
	if err := database.C.Create(&account).Error; err != nil {
		return account, err
	}

	return account, nil
}
