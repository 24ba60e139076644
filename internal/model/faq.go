package model

type FAQ struct {
	Base     `bson:",inline"`
	Question string `json:"question" bson:"question" gorm:"uniqueIndex;size:500;not null" validate:"required,min=10,max=500"`
	Answer   string `json:"answer" bson:"answer" gorm:"type:text" validate:"required,min=20,max=2000"`
	Category string `json:"category" bson:"category" gorm:"size:20;not null;index" validate:"required,oneof=general technical account billing other"`
}

func (FAQ) TableName() string { return "faqs" }

func (f *FAQ) Normalize() {
	trim(&f.Question, &f.Answer, &f.Category)
}
