package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func (a *App) er(c echo.Context, statusCode int) error {
	return c.JSON(statusCode, &types.ErrorMessage{
		Message: utils.P(http.StatusText(statusCode)),
	})
}

// ev 返回按字段索引的校验错误
func (a *App) ev(c echo.Context, fieldErrors types.FieldErrors) error {
	return c.JSON(http.StatusBadRequest, fieldErrors)
}

// bind 绑定请求体，失败时返回要交给 ev 的错误
func (a *App) bind(c echo.Context, req any) types.FieldErrors {
	err := c.Bind(req)
	if err == nil {
		return nil
	}

	fieldErrors := types.FieldErrors{}

	// 类型不匹配的字段报告为对应字段的错误
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		fieldErrors.Add(typeErr.Field, "Incorrect type. Expected "+typeErr.Type.String()+", but got "+typeErr.Value+".")
		return fieldErrors
	}

	a.l.Debug("failed to bind request", zap.Error(err))
	fieldErrors.Add(types.NonFieldErrors, "Malformed request body.")
	return fieldErrors
}

// pathID 解析路径中的 id ，无法解析的按找不到处理
func (a *App) pathID(c echo.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
