package middleware

import (
	"context"
	"strings"

	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"

	"github.com/gin-gonic/gin"
)

const ContextUserKey = "user"

var (
	errNoToken   = pkg.Unauthorized("Not authorized, no token")
	errForbidden = pkg.Forbidden("You do not have permission to perform this action")
)

// Authenticator 校验令牌并返回当前用户
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*model.User, error)
}

// AuthMiddleware 解析 Bearer 令牌，校验通过后注入当前用户
func AuthMiddleware(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		scheme, tokenStr, ok := strings.Cut(authHeader, " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			abortWithError(c, errNoToken)
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), tokenStr)
		if err != nil {
			abortWithError(c, err)
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// Authorize 角色校验，必须放在 AuthMiddleware 之后
func Authorize(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			abortWithError(c, errNoToken)
			return
		}
		if !user.HasRole(roles...) {
			abortWithError(c, errForbidden)
			return
		}
		c.Next()
	}
}

// ProtectAdmin 登录校验加管理员角色校验
func ProtectAdmin(auth Authenticator) []gin.HandlerFunc {
	return []gin.HandlerFunc{AuthMiddleware(auth), Authorize(model.RoleAdmin)}
}

func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}
