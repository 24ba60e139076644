package model

import "strings"

const (
	SchoolElementary = "elementary"
	SchoolMiddle     = "middle"
	SchoolHigh       = "high"
)

type School struct {
	Base      `bson:",inline"`
	Name      string  `json:"name" bson:"name" gorm:"uniqueIndex;size:100;not null" validate:"required,min=3,max=100"`
	Type      string  `json:"type" bson:"type" gorm:"size:20;not null;index:idx_school_type_district" validate:"required,oneof=elementary middle high"`
	Address   string  `json:"address" bson:"address" gorm:"size:200;not null" validate:"required,min=10,max=200"`
	Phone     string  `json:"phone" bson:"phone" gorm:"size:20;not null" validate:"required,phone"`
	Email     *string `json:"email,omitempty" bson:"email,omitempty" gorm:"uniqueIndex;size:100" validate:"omitempty,email,max=100"`
	Website   string  `json:"website" bson:"website" gorm:"size:100;not null" validate:"required,url,max=100"`
	Direction string  `json:"direction" bson:"direction" gorm:"type:text" validate:"required"`
	District  string  `json:"district" bson:"district" gorm:"size:50;not null;index:idx_school_type_district" validate:"required,min=3,max=50"`
}

func (s *School) Normalize() {
	trim(&s.Name, &s.Type, &s.Address, &s.Phone, &s.Website, &s.Direction, &s.District)
	if s.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*s.Email))
		if email == "" {
			s.Email = nil
		} else {
			s.Email = &email
		}
	}
}
