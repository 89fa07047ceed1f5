package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"recipe-app-api/app/server/accounts"
	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgEmailTaken         = "user with this email already exists."
	msgInvalidCredentials = "Unable to authenticate with provided credentials"
)

func (a *App) UserCreate(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AccountInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}
	if fieldErrors := validation.Full(&req); len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 创建账户
	account, err := a.accounts.CreateAccount(rctx, *req.Email, *req.Password, accounts.Fields{
		Name: *req.Name,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicate):
			return a.ev(c, types.FieldErrors{"email": {msgEmailTaken}})
		case errors.Is(err, accounts.ErrEmailRequired):
			return a.ev(c, types.FieldErrors{"email": {"This field is required."}})
		default:
			a.l.Error("failed to create account", zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	return c.JSON(http.StatusCreated, accountInfo(account))
}

func (a *App) UserToken(c echo.Context) error {
	rctx := c.Request().Context()

	// 绑定请求体
	var req types.TokenInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}
	if fieldErrors := validation.Full(&req); len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 校验账户
	account, err := a.accounts.Authenticate(rctx, *req.Email, *req.Password)
	if err != nil {
		if errors.Is(err, accounts.ErrInvalidCredentials) {
			return a.ev(c, types.FieldErrors{types.NonFieldErrors: {msgInvalidCredentials}})
		}
		a.l.Error("failed to authenticate", zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 签发 token
	key, err := a.accounts.IssueToken(rctx, account)
	if err != nil {
		a.l.Error("failed to issue token", zap.Uint("id", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, &types.Token{
		Token: key,
	})
}

func (a *App) UserMeGet(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	return c.JSON(http.StatusOK, accountInfo(account))
}

func (a *App) UserMeUpdate(c echo.Context) error {
	return a.userMeSave(c, false)
}

func (a *App) UserMePartialUpdate(c echo.Context) error {
	return a.userMeSave(c, true)
}

func (a *App) userMeSave(c echo.Context, partial bool) error {
	current := middlewares.CurrentAccount(c)
	if current == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AccountInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}
	fieldErrors := validation.Full(&req)
	if partial {
		fieldErrors = validation.Partial(&req)
	}
	if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 缓存里的账户不带密码，从数据库中重新读取
	account, err := a.st.FindAccount(rctx, current.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusUnauthorized)
		}
		a.l.Error("failed to get account", zap.Uint("id", current.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 更新字段
	if req.Email != nil {
		account.Email = accounts.NormalizeEmail(*req.Email)
	}
	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.Password != nil {
		if err = a.accounts.SetPassword(account, *req.Password); err != nil {
			a.l.Error("failed to hash password", zap.Uint("id", account.ID), zap.Error(err))
			return a.er(c, http.StatusInternalServerError)
		}
	}

	if err = a.st.SaveAccount(rctx, account); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return a.ev(c, types.FieldErrors{"email": {msgEmailTaken}})
		}
		a.l.Error("failed to save account", zap.Uint("id", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 清理缓存
	if a.rdb != nil {
		if key := middlewares.CurrentToken(c); key != "" {
			if err = a.rdb.Del(rctx, fmt.Sprintf(constants.CacheKeyTokenAccount, key)).Err(); err != nil {
				a.l.Error("failed to delete token account cache", zap.Uint("id", account.ID), zap.Error(err))
			}
		}
	}

	return c.JSON(http.StatusOK, accountInfo(account))
}
