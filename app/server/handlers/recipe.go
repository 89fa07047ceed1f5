package handlers

import (
	"context"
	"errors"
	"net/http"

	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/utils"
	"recipe-app-api/app/server/validation"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const msgUnknownID = "Invalid pk - object does not exist."

func (a *App) RecipeList(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 解析查询参数
	var params types.RecipeListParams
	if err := echo.QueryParamsBinder(c).
		String("tags", &params.Tags).
		String("ingredients", &params.Ingredients).
		Uint("page", &params.Page).
		Uint("limit", &params.Limit).
		BindError(); err != nil {
		a.l.Debug("failed to bind recipe list params", zap.Error(err))
		return a.er(c, http.StatusBadRequest)
	}

	var (
		filter      store.RecipeFilter
		err         error
		fieldErrors = types.FieldErrors{}
	)
	if filter.TagIDs, err = utils.ParseIDs(params.Tags); err != nil {
		fieldErrors.Add("tags", "Enter a comma separated list of integers.")
	}
	if filter.IngredientIDs, err = utils.ParseIDs(params.Ingredients); err != nil {
		fieldErrors.Add("ingredients", "Enter a comma separated list of integers.")
	}
	if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	showAll, page, limit := a.parsePagination(params.Page, params.Limit)
	if !showAll {
		filter.Limit, filter.Offset = limit, page*limit
	}

	recipes, err := a.st.ListRecipes(rctx, account.ID, filter)
	if err != nil {
		a.l.Error("failed to get recipe list", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	count, err := a.st.CountRecipes(rctx, account.ID, filter)
	if err != nil {
		a.l.Error("failed to count recipe", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	resRecipes := []any{}
	for i := range recipes {
		resRecipes = append(resRecipes, a.serializeRecipe(c, ActionList, &recipes[i]))
	}

	c.Response().Header().Set(headerPageMax, formatPageMax(a.calcMaxPage(count, showAll, limit)))
	return c.JSON(http.StatusOK, resRecipes)
}

// resolveRelations 把请求中的 ID 列表换成当前账户自己的标签和食材，未知的 ID 报告为字段错误
func (a *App) resolveRelations(ctx context.Context, ownerID uint, req *types.RecipeInput, recipe *models.Recipe) (types.FieldErrors, error) {
	fieldErrors := types.FieldErrors{}

	if req.Tags != nil {
		tags, err := a.st.Tags().Resolve(ctx, ownerID, *req.Tags)
		if err != nil {
			if !errors.Is(err, store.ErrUnknownIDs) {
				return nil, err
			}
			fieldErrors.Add("tags", msgUnknownID)
		}
		recipe.Tags = tags
	}

	if req.Ingredients != nil {
		ingredients, err := a.st.Ingredients().Resolve(ctx, ownerID, *req.Ingredients)
		if err != nil {
			if !errors.Is(err, store.ErrUnknownIDs) {
				return nil, err
			}
			fieldErrors.Add("ingredients", msgUnknownID)
		}
		recipe.Ingredients = ingredients
	}

	return fieldErrors, nil
}

func (a *App) RecipeCreate(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()

	// 绑定请求体
	var req types.RecipeInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}
	if fieldErrors := validation.Full(&req); len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 创建菜谱，所属账户总是当前账户
	recipe := models.Recipe{
		Title:       *req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		AccountID:   account.ID,
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	fieldErrors, err := a.resolveRelations(rctx, account.ID, &req, &recipe)
	if err != nil {
		a.l.Error("failed to resolve recipe relations", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	if err = a.st.CreateRecipe(rctx, &recipe); err != nil {
		a.l.Error("failed to create recipe", zap.Uint("account", account.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusCreated, a.serializeRecipe(c, ActionCreate, &recipe))
}

// findRecipe 获得当前账户的指定菜谱，失败时已经写好了响应
func (a *App) findRecipe(c echo.Context, account *models.Account) (*models.Recipe, error) {
	id, ok := a.pathID(c)
	if !ok {
		return nil, a.er(c, http.StatusNotFound)
	}

	recipe, err := a.st.FindRecipe(c.Request().Context(), account.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get recipe", zap.Uint("id", id), zap.Error(err))
		return nil, a.er(c, http.StatusInternalServerError)
	}

	return recipe, nil
}

func (a *App) RecipeRetrieve(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	recipe, err := a.findRecipe(c, account)
	if recipe == nil {
		return err
	}

	return c.JSON(http.StatusOK, a.serializeRecipe(c, ActionRetrieve, recipe))
}

func (a *App) RecipeUpdate(c echo.Context) error {
	return a.recipeSave(c, ActionUpdate)
}

func (a *App) RecipePartialUpdate(c echo.Context) error {
	return a.recipeSave(c, ActionPartialUpdate)
}

func (a *App) recipeSave(c echo.Context, action Action) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	rctx := c.Request().Context()
	partial := action == ActionPartialUpdate

	// 绑定请求体
	var req types.RecipeInput
	if fieldErrors := a.bind(c, &req); fieldErrors != nil {
		return a.ev(c, fieldErrors)
	}

	recipe, err := a.findRecipe(c, account)
	if recipe == nil {
		return err
	}

	fieldErrors := validation.Full(&req)
	if partial {
		fieldErrors = validation.Partial(&req)
	}
	if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 整体更新时没有提交的可选字段清空
	if !partial {
		if req.Link == nil {
			req.Link = utils.P("")
		}
		if req.Tags == nil {
			req.Tags = &[]uint{}
		}
		if req.Ingredients == nil {
			req.Ingredients = &[]uint{}
		}
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		recipe.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		recipe.Price = *req.Price
	}
	if req.Link != nil {
		recipe.Link = *req.Link
	}

	if fieldErrors, err = a.resolveRelations(rctx, account.ID, &req, recipe); err != nil {
		a.l.Error("failed to resolve recipe relations", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	} else if len(fieldErrors) > 0 {
		return a.ev(c, fieldErrors)
	}

	// 只改写请求中出现的关联
	var relations []store.Relation
	if req.Tags != nil {
		relations = append(relations, store.RelationTags)
	}
	if req.Ingredients != nil {
		relations = append(relations, store.RelationIngredients)
	}

	if err = a.st.SaveRecipe(rctx, recipe, relations...); err != nil {
		a.l.Error("failed to save recipe", zap.Uint("id", recipe.ID), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	return c.JSON(http.StatusOK, a.serializeRecipe(c, action, recipe))
}

func (a *App) RecipeDestroy(c echo.Context) error {
	account := middlewares.CurrentAccount(c)
	if account == nil {
		return a.er(c, http.StatusUnauthorized)
	}

	id, ok := a.pathID(c)
	if !ok {
		return a.er(c, http.StatusNotFound)
	}

	rctx := c.Request().Context()

	// 先取出图片路径，删除记录后一并清理
	recipe, err := a.st.FindRecipe(rctx, account.ID, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to get recipe", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if err = a.st.DeleteRecipe(rctx, account.ID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return a.er(c, http.StatusNotFound)
		}
		a.l.Error("failed to delete recipe", zap.Uint("id", id), zap.Error(err))
		return a.er(c, http.StatusInternalServerError)
	}

	if recipe.Image != "" {
		if err = a.images.Delete(rctx, recipe.Image); err != nil {
			a.l.Error("failed to delete recipe image", zap.Uint("id", id), zap.String("image", recipe.Image), zap.Error(err))
		}
	}

	return c.NoContent(http.StatusNoContent)
}
