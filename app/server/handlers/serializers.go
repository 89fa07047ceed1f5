package handlers

import (
	"strings"

	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/types"

	"github.com/labstack/echo/v4"
)

func accountInfo(account *models.Account) *types.AccountInfo {
	return &types.AccountInfo{
		Email: account.Email,
		Name:  account.Name,
	}
}

func attributeInfo[M any, PM interface {
	*M
	models.Attribute
}](m *M) types.AttributeInfo {
	return types.AttributeInfo{
		ID:   PM(m).Identity(),
		Name: PM(m).Label(),
	}
}

func attributeInfos[M any, PM interface {
	*M
	models.Attribute
}](list []M) []types.AttributeInfo {
	res := []types.AttributeInfo{}
	for i := range list {
		res = append(res, attributeInfo[M, PM](&list[i]))
	}
	return res
}

func attributeIDs[M any, PM interface {
	*M
	models.Attribute
}](list []M) []uint {
	ids := []uint{}
	for i := range list {
		ids = append(ids, PM(&list[i]).Identity())
	}
	return ids
}

func recipeInfo(r *models.Recipe) *types.RecipeInfo {
	return &types.RecipeInfo{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Tags:        attributeIDs(r.Tags),
		Ingredients: attributeIDs(r.Ingredients),
	}
}

func (a *App) recipeDetail(c echo.Context, r *models.Recipe) *types.RecipeDetail {
	return &types.RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price.StringFixed(2),
		Link:        r.Link,
		Image:       a.imageURL(c, r.Image),
		Tags:        attributeInfos(r.Tags),
		Ingredients: attributeInfos(r.Ingredients),
	}
}

func (a *App) recipeImage(c echo.Context, r *models.Recipe) *types.RecipeImage {
	return &types.RecipeImage{
		ID:    r.ID,
		Image: a.imageURL(c, r.Image),
	}
}

// serializeRecipe 按操作选择菜谱的输出形式
func (a *App) serializeRecipe(c echo.Context, action Action, r *models.Recipe) any {
	switch action {
	case ActionRetrieve:
		return a.recipeDetail(c, r)
	case ActionUploadImage:
		return a.recipeImage(c, r)
	default:
		return recipeInfo(r)
	}
}

// imageURL 返回图片的访问地址，本地存储返回的相对路径补全为绝对地址
func (a *App) imageURL(c echo.Context, key string) *string {
	if key == "" {
		return nil
	}

	url := a.images.URL(key)
	if strings.HasPrefix(url, "/") {
		url = c.Scheme() + "://" + c.Request().Host + url
	}
	return &url
}
