package model

import "time"

type News struct {
	Base        `bson:",inline"`
	Title       string    `json:"title" bson:"title" gorm:"uniqueIndex;size:200;not null" validate:"required,min=4,max=200"`
	Description string    `json:"description" bson:"description" gorm:"type:text" validate:"required,min=50,max=5000"`
	Image       string    `json:"image" bson:"image" gorm:"size:500" validate:"omitempty,url"`
	Date        time.Time `json:"date" bson:"date" gorm:"index"`
	Type        string    `json:"type" bson:"type" gorm:"size:10;not null;index" validate:"required,oneof=news event"`
}

func (News) TableName() string { return "news" }

func (n *News) Normalize() {
	trim(&n.Title, &n.Description, &n.Image, &n.Type)
	if n.Date.IsZero() {
		n.Date = time.Now()
	}
	n.Date = utc(n.Date)
}
