package model

type Issue struct {
	Base        `bson:",inline"`
	Title       string `json:"title" bson:"title" gorm:"uniqueIndex;size:200;not null" validate:"required,max=200"`
	Description string `json:"description" bson:"description" gorm:"type:text" validate:"required,max=5000"`
}

func (i *Issue) Normalize() {
	trim(&i.Title, &i.Description)
}
