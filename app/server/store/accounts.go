package store

import (
	"context"
	"errors"
	"fmt"

	"recipe-app-api/app/server/models"

	"gorm.io/gorm"
)

func (g *Gorm) CreateAccount(ctx context.Context, account *models.Account) error {
	if err := g.db.WithContext(ctx).Create(account).Error; err != nil {
		return fmt.Errorf("create account: %w", translate(err))
	}

	return nil
}

func (g *Gorm) SaveAccount(ctx context.Context, account *models.Account) error {
	if err := g.db.WithContext(ctx).Save(account).Error; err != nil {
		return fmt.Errorf("save account: %w", translate(err))
	}

	return nil
}

func (g *Gorm) FindAccount(ctx context.Context, id uint) (*models.Account, error) {
	var account models.Account
	if err := g.db.WithContext(ctx).First(&account, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("find account %d: %w", id, translate(err))
	}

	return &account, nil
}

func (g *Gorm) FindAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	var account models.Account
	if err := g.db.WithContext(ctx).First(&account, "email = ?", email).Error; err != nil {
		return nil, fmt.Errorf("find account by email: %w", translate(err))
	}

	return &account, nil
}

func (g *Gorm) DeleteAccount(ctx context.Context, id uint) error {
	res := g.db.WithContext(ctx).Delete(&models.Account{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("delete account %d: %w", id, translate(res.Error))
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("delete account %d: %w", id, ErrNotFound)
	}

	return nil
}

func (g *Gorm) IssueToken(ctx context.Context, accountID uint, key string) (*models.AuthToken, error) {
	var token models.AuthToken
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&token, "account_id = ?", accountID).Error
		if err == nil {
			// 已经有了，直接复用
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		token = models.AuthToken{
			Key:       key,
			AccountID: accountID,
		}
		return tx.Omit("Account").Create(&token).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// 并发请求抢先创建了，重新读一次
		err = g.db.WithContext(ctx).First(&token, "account_id = ?", accountID).Error
	}
	if err != nil {
		return nil, fmt.Errorf("issue token for account %d: %w", accountID, translate(err))
	}

	return &token, nil
}

func (g *Gorm) FindAccountByToken(ctx context.Context, key string) (*models.Account, error) {
	var account models.Account
	if err := g.db.WithContext(ctx).
		Joins("JOIN auth_tokens ON auth_tokens.account_id = accounts.id").
		Where("auth_tokens.key = ?", key).
		First(&account).Error; err != nil {
		return nil, fmt.Errorf("find account by token: %w", translate(err))
	}

	return &account, nil
}

func (g *Gorm) FindToken(ctx context.Context, accountID uint) (*models.AuthToken, error) {
	var token models.AuthToken
	if err := g.db.WithContext(ctx).First(&token, "account_id = ?", accountID).Error; err != nil {
		return nil, fmt.Errorf("find token of account %d: %w", accountID, translate(err))
	}

	return &token, nil
}
