package handlers

import (
	"net/http"

	"recipe-app-api/app/server/middlewares"
	"recipe-app-api/app/server/models"

	"github.com/labstack/echo/v4"
)

// Action 资源上可以执行的操作
type Action int

const (
	ActionList Action = iota
	ActionCreate
	ActionRetrieve
	ActionUpdate
	ActionPartialUpdate
	ActionDestroy
	ActionUploadImage
)

func (act Action) String() string {
	switch act {
	case ActionList:
		return "list"
	case ActionCreate:
		return "create"
	case ActionRetrieve:
		return "retrieve"
	case ActionUpdate:
		return "update"
	case ActionPartialUpdate:
		return "partial_update"
	case ActionDestroy:
		return "destroy"
	case ActionUploadImage:
		return "upload_image"
	default:
		return "unknown"
	}
}

type actionRoute struct {
	method string
	path   string // 相对资源前缀
}

var actionRoutes = map[Action]actionRoute{
	ActionList:          {http.MethodGet, ""},
	ActionCreate:        {http.MethodPost, ""},
	ActionRetrieve:      {http.MethodGet, "/:id"},
	ActionUpdate:        {http.MethodPut, "/:id"},
	ActionPartialUpdate: {http.MethodPatch, "/:id"},
	ActionDestroy:       {http.MethodDelete, "/:id"},
	ActionUploadImage:   {http.MethodPost, "/:id/upload-image"},
}

// 按固定顺序注册，方便阅读路由表
var actionOrder = []Action{
	ActionList, ActionCreate, ActionRetrieve, ActionUpdate, ActionPartialUpdate, ActionDestroy, ActionUploadImage,
}

type resource map[Action]echo.HandlerFunc

func registerResource(g *echo.Group, prefix string, handlers resource) {
	for _, act := range actionOrder {
		h, ok := handlers[act]
		if !ok {
			continue
		}
		r := actionRoutes[act]
		g.Add(r.method, prefix+r.path, h).Name = prefix + "." + act.String()
	}
}

// RegisterHandlers 在 /api 下注册全部接口
func RegisterHandlers(e *echo.Echo, a *App) {
	api := e.Group("/api")

	// 不需要认证
	api.GET("/healthcheck", a.HealthCheck)
	api.POST("/users/create", a.UserCreate)
	api.POST("/users/token", a.UserToken)

	// 需要认证
	authed := api.Group("", middlewares.TokenAuth(a.st, a.rdb, a.l))

	authed.GET("/users/me", a.UserMeGet)
	authed.PUT("/users/me", a.UserMeUpdate)
	authed.PATCH("/users/me", a.UserMePartialUpdate)

	registerResource(authed, "/recipe/tags", resource{
		ActionList:          func(c echo.Context) error { return attributeList[models.Tag](a, c, a.st.Tags()) },
		ActionCreate:        func(c echo.Context) error { return attributeCreate[models.Tag](a, c, a.st.Tags()) },
		ActionUpdate:        func(c echo.Context) error { return attributeUpdate[models.Tag](a, c, a.st.Tags(), false) },
		ActionPartialUpdate: func(c echo.Context) error { return attributeUpdate[models.Tag](a, c, a.st.Tags(), true) },
		ActionDestroy:       func(c echo.Context) error { return attributeDestroy[models.Tag](a, c, a.st.Tags()) },
	})
	registerResource(authed, "/recipe/ingredients", resource{
		ActionList:          func(c echo.Context) error { return attributeList[models.Ingredient](a, c, a.st.Ingredients()) },
		ActionCreate:        func(c echo.Context) error { return attributeCreate[models.Ingredient](a, c, a.st.Ingredients()) },
		ActionUpdate:        func(c echo.Context) error { return attributeUpdate[models.Ingredient](a, c, a.st.Ingredients(), false) },
		ActionPartialUpdate: func(c echo.Context) error { return attributeUpdate[models.Ingredient](a, c, a.st.Ingredients(), true) },
		ActionDestroy:       func(c echo.Context) error { return attributeDestroy[models.Ingredient](a, c, a.st.Ingredients()) },
	})
	registerResource(authed, "/recipe/recipes", resource{
		ActionList:          a.RecipeList,
		ActionCreate:        a.RecipeCreate,
		ActionRetrieve:      a.RecipeRetrieve,
		ActionUpdate:        a.RecipeUpdate,
		ActionPartialUpdate: a.RecipePartialUpdate,
		ActionDestroy:       a.RecipeDestroy,
		ActionUploadImage:   a.RecipeUploadImage,
	})
}
