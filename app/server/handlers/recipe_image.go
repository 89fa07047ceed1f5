package handlers

import (
	"errors"
	"io"
	"net/http"

	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/storage"
	"recipe-app-api/app/server/types"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	msgNoFile   = "No file was submitted."
	msgNotImage = "Upload a valid image. The file you uploaded was either not an image or a corrupted image."
)

func (a *App) RecipeUploadImage(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	recipe, err := a.findRecipe(c, account)
	if recipe == nil {
		return err
	}

	rctx := c.Request().Context()

	// 限制请求体大小
	if a.maxUploadSize > 0 {
		c.Request().Body = http.MaxBytesReader(c.Response(), c.Request().Body, a.maxUploadSize)
	}

	// 读取上传的文件
	fh, err := c.FormFile("image")
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return a.er(c, http.StatusRequestEntityTooLarge)
		}
		return a.ev(c, types.FieldErrors{"image": {msgNoFile}})
	}

	f, err := fh.Open()
	if err != nil {
		a.l.Error("failed to open uploaded file", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		a.l.Error("failed to read uploaded file", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 检查是否为图片
	contentType, ext, err := storage.InspectImage(data)
	if err != nil {
		if errors.Is(err, storage.ErrNotImage) {
			return a.ev(c, types.FieldErrors{"image": {msgNotImage}})
		}
		a.l.Error("failed to inspect uploaded file", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	// 保存
	key := storage.ImageKey(fh.Filename, ext)
	if err = a.images.Save(rctx, key, contentType, data); err != nil {
		a.l.Error("failed to save recipe image", zap.Uint("id", recipe.ID), zap.String("key", key), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	oldKey := recipe.Image
	recipe.Image = key
	if err = a.st.SaveRecipe(rctx, recipe); err != nil {
		a.l.Error("failed to save recipe", zap.Uint("id", recipe.ID), zap.Error(err))
		// 记录没有更新，新文件也不再需要
		if err = a.images.Delete(rctx, key); err != nil {
			a.l.Error("failed to delete recipe image", zap.String("key", key), zap.Error(err))
		}
		return a.er(c, http.StatusInternalServerError)
	}

	// 清理旧图片
	if oldKey != "" && oldKey != key {
		if err = a.images.Delete(rctx, oldKey); err != nil {
			a.l.Error("failed to delete old recipe image", zap.Uint("id", recipe.ID), zap.String("key", oldKey), zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, a.serializeRecipe(c, ActionUploadImage, recipe))
}
