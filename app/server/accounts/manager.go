// Package accounts owns account identity: email normalization, credential hashing,
// credential verification and token issuance.
package accounts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
)

var (
	ErrEmailRequired      = errors.New("users must have an email address")
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")
)

// Fields 是创建账户时一并保存的额外信息
type Fields struct {
	Name string
}

type Manager struct {
	st     store.Accounts
	params *argon2id.Params

	// 用于未知邮箱时也跑一遍校验，避免通过响应时间判断账户是否存在
	dummyHash string
}

type Option func(*Manager)

// WithParams 修改 argon2id 参数（测试时使用更便宜的参数）
func WithParams(params *argon2id.Params) Option {
	return func(m *Manager) {
		m.params = params
	}
}

func NewManager(st store.Accounts, opts ...Option) (*Manager, error) {
	m := &Manager{
		st:     st,
		params: argon2id.DefaultParams,
	}
	for _, opt := range opts {
		opt(m)
	}

	dummyHash, err := argon2id.CreateHash(uuid.NewString(), m.params)
	if err != nil {
		return nil, fmt.Errorf("create dummy hash: %w", err)
	}
	m.dummyHash = dummyHash

	return m, nil
}

func (m *Manager) SetPassword(account *models.Account, password string) error {
	hash, err := argon2id.CreateHash(password, m.params)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.Password = hash
	return nil
}

func (m *Manager) CreateAccount(ctx context.Context, email string, password string, fields Fields) (*models.Account, error) {
	email = NormalizeEmail(email)
	if email == "" {
		return nil, ErrEmailRequired
	}

	account := &models.Account{
		Email:    email,
		Name:     fields.Name,
		IsActive: true,
	}
	if err := m.SetPassword(account, password); err != nil {
		return nil, err
	}

	if err := m.st.CreateAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

func (m *Manager) CreatePrivilegedAccount(ctx context.Context, email string, password string) (*models.Account, error) {
	account, err := m.CreateAccount(ctx, email, password, Fields{})
	if err != nil {
		return nil, err
	}

	account.IsStaff = true
	account.IsSuperuser = true
	if err = m.st.SaveAccount(ctx, account); err != nil {
		return nil, fmt.Errorf("save privileged account: %w", err)
	}

	return account, nil
}

// Authenticate 校验邮箱和密码。邮箱不存在、密码错误、账户未启用都返回同一个错误
func (m *Manager) Authenticate(ctx context.Context, email string, password string) (*models.Account, error) {
	account, err := m.st.FindAccountByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("find account: %w", err)
		}

		_, _, _ = argon2id.CheckHash(password, m.dummyHash)
		return nil, ErrInvalidCredentials
	}

	match, _, err := argon2id.CheckHash(password, account.Password)
	if err != nil {
		return nil, fmt.Errorf("check password: %w", err)
	} else if !match || !account.IsActive {
		return nil, ErrInvalidCredentials
	}

	return account, nil
}

// IssueToken 返回账户已有的 token ，没有的话签发一个新的
func (m *Manager) IssueToken(ctx context.Context, account *models.Account) (string, error) {
	key := strings.ReplaceAll(uuid.NewString(), "-", "")

	token, err := m.st.IssueToken(ctx, account.ID, key)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	return token.Key, nil
}
