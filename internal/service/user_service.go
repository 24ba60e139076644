package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"Community_Portal/internal/logger"
	"Community_Portal/internal/model"
	"Community_Portal/internal/pkg"
	"Community_Portal/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const DefaultHashCost = 12

var (
	ErrInvalidCredentials = pkg.Unauthorized("Invalid credentials")
	ErrUserExists         = pkg.Conflict("User already exists with this email or username")
	ErrNotAuthorized      = pkg.Unauthorized("Not authorized, no token")
	ErrTokenFailed        = pkg.Unauthorized("Not authorized, token failed")
	ErrTokenExpired       = pkg.Unauthorized("Not authorized, token expired")
	ErrLoggedElsewhere    = pkg.Unauthorized("Account has been logging elsewhere")
	ErrUserGone           = pkg.Unauthorized("User no longer exists")
	ErrOldPassword        = pkg.Unauthorized("Old password is incorrect")
	ErrResetToken         = pkg.BadRequest("Reset token is invalid or has expired")
)

const forgotPasswordMessage = "If that email is registered, a reset link has been sent"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type UpdateRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user moderator admin"`
}

type AuthResult struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

type UserDeps struct {
	Users    repository.Store[model.User]
	Sessions repository.SessionStore
	Resets   repository.ResetTokenStore
	JWT      *pkg.JWTManager
	Mailer   pkg.Mailer
	AppURL   string
	ResetTTL time.Duration
	HashCost int
}

type UserService struct {
	users    repository.Store[model.User]
	sessions repository.SessionStore
	resets   repository.ResetTokenStore
	jwt      *pkg.JWTManager
	mailer   pkg.Mailer
	appURL   string
	resetTTL time.Duration
	hashCost int
}

func NewUserService(deps UserDeps) *UserService {
	if deps.HashCost == 0 {
		deps.HashCost = DefaultHashCost
	}
	if deps.ResetTTL == 0 {
		deps.ResetTTL = 15 * time.Minute
	}
	return &UserService{
		users:    deps.Users,
		sessions: deps.Sessions,
		resets:   deps.Resets,
		jwt:      deps.JWT,
		mailer:   deps.Mailer,
		appURL:   strings.TrimRight(deps.AppURL, "/"),
		resetTTL: deps.ResetTTL,
		hashCost: deps.HashCost,
	}
}

// Register 注册并直接登录
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}

	for _, cond := range []map[string]any{{"username": req.Username}, {"email": req.Email}} {
		_, err := s.users.FindOne(ctx, cond)
		if err == nil {
			return nil, ErrUserExists
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{
		Username: req.Username,
		Email:    req.Email,
		Password: string(hash),
		Role:     model.RoleUser,
	}
	user.SetID(model.NewID())
	user.Stamp(time.Now())

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return s.issueToken(ctx, user)
}

// Login 邮箱不存在与密码错误返回同一错误
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}

	user, err := s.users.FindOne(ctx, map[string]any{"email": req.Email})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(ctx, user)
}

// issueToken 签发令牌并写入会话，旧令牌随之失效
func (s *UserService) issueToken(ctx context.Context, user *model.User) (*AuthResult, error) {
	token, err := s.jwt.Generate(user.ID)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.AddUserToken(ctx, user.ID, token, s.jwt.TTL()); err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Authenticate 校验令牌与当前会话，返回对应用户
func (s *UserService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	claims, err := s.jwt.Parse(token)
	if errors.Is(err, pkg.ErrTokenExpired) {
		return nil, ErrTokenExpired
	}
	if err != nil {
		return nil, ErrTokenFailed
	}

	current, err := s.sessions.GetUserToken(ctx, claims.UserID)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return nil, ErrLoggedElsewhere
	}
	if err != nil {
		return nil, err
	}
	if current != token {
		return nil, ErrLoggedElsewhere
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserGone
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Logout(ctx context.Context, userID string) error {
	return s.sessions.DeleteUserToken(ctx, userID)
}

// ChangePassword 登录态修改密码，成功后需要重新登录
func (s *UserService) ChangePassword(ctx context.Context, userID string, req ChangePasswordRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserGone
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)) != nil {
		return ErrOldPassword
	}
	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

// ForgotPassword 无论邮箱是否存在都返回同样的提示
func (s *UserService) ForgotPassword(ctx context.Context, req ForgotPasswordRequest) (string, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := pkg.Validate(&req); err != nil {
		return "", err
	}

	user, err := s.users.FindOne(ctx, map[string]any{"email": req.Email})
	if errors.Is(err, repository.ErrNotFound) {
		return forgotPasswordMessage, nil
	}
	if err != nil {
		return "", err
	}

	token := uuid.NewString()
	if err := s.resets.SaveResetToken(ctx, token, user.ID, s.resetTTL); err != nil {
		return "", err
	}
	link := s.appURL + "/reset-password/" + token
	if err := s.mailer.Send(ctx, user.Email, "Password reset", pkg.ResetPasswordHTML(user.Username, link, s.resetTTL)); err != nil {
		logger.Errorf("send reset mail to %s: %v", user.Email, err)
	}
	return forgotPasswordMessage, nil
}

// ResetPassword 消费一次性令牌并设置新密码
func (s *UserService) ResetPassword(ctx context.Context, token string, req ResetPasswordRequest) error {
	if err := pkg.Validate(&req); err != nil {
		return err
	}
	userID, err := s.resets.TakeResetToken(ctx, token)
	if errors.Is(err, repository.ErrTokenNotFound) {
		return ErrResetToken
	}
	if err != nil {
		return err
	}

	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrResetToken
	}
	if err != nil {
		return err
	}
	if err := s.setPassword(ctx, user, req.NewPassword); err != nil {
		return err
	}
	return s.Logout(ctx, userID)
}

func (s *UserService) setPassword(ctx context.Context, user *model.User, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)
	user.Stamp(time.Now())
	return s.users.Replace(ctx, user.ID, user)
}

func (s *UserService) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := s.users.Find(ctx, repository.Query{Sort: repository.Sort("createdAt")})
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return out, nil
}

// UpdateRole 管理员修改用户角色
func (s *UserService) UpdateRole(ctx context.Context, userID string, req UpdateRoleRequest) (*model.PublicUser, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := pkg.Validate(&req); err != nil {
		return nil, err
	}
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, pkg.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}

	user.Role = req.Role
	user.Stamp(time.Now())
	if err := s.users.Replace(ctx, user.ID, user); err != nil {
		return nil, err
	}
	public := user.Public()
	return &public, nil
}
