package middlewares

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"recipe-app-api/app/server/constants"
	"recipe-app-api/app/server/models"
	"recipe-app-api/app/server/store"
	"recipe-app-api/app/server/types"
	"recipe-app-api/app/server/utils"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, &types.ErrorMessage{
		Message: utils.P(http.StatusText(http.StatusUnauthorized)),
	})
}

// parseAuthHeader 提取 "Bearer <key>" 或 "Token <key>" 中的 key
func parseAuthHeader(authHeader string) (string, bool) {
	splits := strings.Fields(authHeader)
	if len(splits) != 2 {
		return "", false
	}

	switch strings.ToLower(splits[0]) {
	case "bearer", "token":
		return splits[1], true
	default:
		return "", false
	}
}

// TokenAuth 把请求中的 token 解析成账户，放进 echo context 。rdb 为 nil 时不使用缓存
func TokenAuth(st store.Accounts, rdb *redis.Client, l *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rctx := c.Request().Context()

			// 提取 token
			key, ok := parseAuthHeader(c.Request().Header.Get("Authorization"))
			if !ok {
				return unauthorized(c)
			}

			var account *models.Account

			// 查询缓存
			cacheKey := fmt.Sprintf(constants.CacheKeyTokenAccount, key)
			if rdb != nil {
				if cacheBytes, err := rdb.Get(rctx, cacheKey).Bytes(); err != nil {
					if !errors.Is(err, redis.Nil) {
						l.Error("failed to query cache for token account", zap.Error(err))
					}
				} else {
					var cached models.Account
					if err = json.Unmarshal(cacheBytes, &cached); err != nil {
						l.Error("failed to unmarshal token account", zap.ByteString("cacheBytes", cacheBytes), zap.Error(err))
						// 可能是无效的缓存，清理掉
						if err = rdb.Del(rctx, cacheKey).Err(); err != nil {
							l.Error("failed to delete invalid token account cache", zap.Error(err))
						}
					} else {
						account = &cached
					}
				}
			}

			if account == nil {
				// 查询数据库
				found, err := st.FindAccountByToken(rctx, key)
				if err != nil {
					if errors.Is(err, store.ErrNotFound) {
						return unauthorized(c)
					}
					l.Error("failed to find account by token", zap.Error(err))
					return c.JSON(http.StatusInternalServerError, &types.ErrorMessage{
						Message: utils.P(http.StatusText(http.StatusInternalServerError)),
					})
				}
				account = found

				// 格式化并加入缓存，方便下一次查询
				if rdb != nil {
					if cacheBytes, err := json.Marshal(account); err != nil {
						l.Error("failed to marshal token account", zap.Uint("id", account.ID), zap.Error(err))
					} else if err = rdb.Set(rctx, cacheKey, cacheBytes, constants.CacheExpireTokenAccount).Err(); err != nil {
						l.Error("failed to cache token account", zap.Uint("id", account.ID), zap.Error(err))
					}
				}
			}

			if !account.IsActive {
				return unauthorized(c)
			}

			// 设置 context
			c.Set(constants.ContextKeyAccount, account)
			c.Set(constants.ContextKeyToken, key)

			// 继续处理
			return next(c)
		}
	}
}

// CurrentAccount 取出 TokenAuth 放进 context 的账户，不在受保护的路由上时返回 nil
func CurrentAccount(c echo.Context) *models.Account {
	account, _ := c.Get(constants.ContextKeyAccount).(*models.Account)
	return account
}

func CurrentToken(c echo.Context) string {
	key, _ := c.Get(constants.ContextKeyToken).(string)
	return key
}
