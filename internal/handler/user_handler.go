package handler

import (
	"net/http"

	"Community_Portal/internal/middleware"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/service"

	"github.com/gin-gonic/gin"
)

var errNotAuthenticated = pkg.Unauthorized("Not authorized, no token")

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Register 注册接口
func (h *UserHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusCreated, "User registered successfully", res)
}

// Login 登录接口
func (h *UserHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Login successful", res)
}

// Me 当前登录用户
func (h *UserHandler) Me(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(errNotAuthenticated)
		return
	}
	pkg.Success(c, http.StatusOK, "Success", user.Public())
}

func (h *UserHandler) Logout(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(errNotAuthenticated)
		return
	}
	if err := h.svc.Logout(c.Request.Context(), user.ID); err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// ChangePassword 修改密码后需要重新登录
func (h *UserHandler) ChangePassword(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		_ = c.Error(errNotAuthenticated)
		return
	}
	var req service.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.ChangePassword(c.Request.Context(), user.ID, req); err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Password changed successfully, please log in again", nil)
}

func (h *UserHandler) ForgotPassword(c *gin.Context) {
	var req service.ForgotPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	msg, err := h.svc.ForgotPassword(c.Request.Context(), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, msg, nil)
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req service.ResetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.svc.ResetPassword(c.Request.Context(), c.Param("token"), req); err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "Password has been reset, please log in", nil)
}

// List 管理员查看用户列表
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.svc.List(c.Request.Context())
	respondList(c, users, err)
}

// UpdateRole 管理员修改角色
func (h *UserHandler) UpdateRole(c *gin.Context) {
	var req service.UpdateRoleRequest
	if !bindJSON(c, &req) {
		return
	}
	user, err := h.svc.UpdateRole(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	pkg.Success(c, http.StatusOK, "User role updated successfully", user)
}
