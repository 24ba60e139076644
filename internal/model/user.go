package model

import "strings"

const (
	RoleUser      = "user"
	RoleModerator = "moderator"
	RoleAdmin     = "admin"
)

// User 密码只保存哈希，且不参与 JSON 序列化
type User struct {
	Base     `bson:",inline"`
	Username string `json:"username" bson:"username" gorm:"uniqueIndex;size:30;not null" validate:"required,min=3,max=30"`
	Email    string `json:"email" bson:"email" gorm:"uniqueIndex;size:100;not null" validate:"required,email,max=100"`
	Password string `json:"-" bson:"password" gorm:"size:255;not null"`
	Role     string `json:"role" bson:"role" gorm:"size:20;not null;default:user" validate:"oneof=user moderator admin"`
}

type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Role = strings.ToLower(strings.TrimSpace(u.Role))
	if u.Role == "" {
		u.Role = RoleUser
	}
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Role:     u.Role,
	}
}

// HasRole 大小写不敏感的角色匹配
func (u *User) HasRole(roles ...string) bool {
	for _, role := range roles {
		if strings.EqualFold(u.Role, role) {
			return true
		}
	}
	return false
}
