package handlers

import (
	"errors"
	"net/http"

	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// 标签和食材共用的处理函数。方法不能有类型形参，所以写成普通函数

func attributeList[M any, PM interface {
	*M
	models.Attribute
}](a *App, c echo.Context, repo store.Attributes[M]) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	list, err := repo.List(c.Request().Context(), account.ID)
	if err != nil {
		a.l.Error("failed to list attributes", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, attributeInfos[M, PM](list))
}

func attributeCreate[M any, PM interface {
	*M
	models.Attribute
}](a *App, c echo.Context, repo store.Attributes[M]) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	// 绑定请求体
	var req types.AttributeInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}
	if fieldErrors := validation.Full(&req); len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 创建，所属账户总是当前账户
	var m M
	PM(&m).SetLabel(*req.Name)
	PM(&m).SetOwner(account.ID)
	if err := repo.Create(c.Request().Context(), &m); err != nil {
		a.l.Error("failed to create attribute", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, attributeInfo[M, PM](&m))
}

func attributeUpdate[M any, PM interface {
	*M
	models.Attribute
}](a *App, c echo.Context, repo store.Attributes[M], partial bool) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.pathID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.AttributeInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}

	// 获得指定的记录（只在当前账户的范围内）
	m, err := repo.Find(rctx, account.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get attribute", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	fieldErrors := validation.Full(&req)
	if partial {
		fieldErrors = validation.Partial(&req)
	}
	if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 更新
	if req.Name != nil {
		PM(m).SetLabel(*req.Name)
	}
	if err = repo.Save(rctx, m); err != nil {
		a.l.Error("failed to save attribute", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, attributeInfo[M, PM](m))
}

func attributeDestroy[M any, PM interface {
	*M
	models.Attribute
}](a *App, c echo.Context, repo store.Attributes[M]) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.pathID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	if err := repo.Delete(c.Request().Context(), account.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to delete attribute", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.NoContent(http.StatusNoContent)
}
