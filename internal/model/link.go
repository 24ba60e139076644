package model

type Link struct {
	Base  `bson:",inline"`
	Title string `json:"title" bson:"title" gorm:"size:200;not null" validate:"required,max=200"`
	Link  string `json:"link" bson:"link" gorm:"size:500;not null" validate:"required,url,max=500"`
}

func (l *Link) Normalize() {
	trim(&l.Title, &l.Link)
}
