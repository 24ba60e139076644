package model

// HOAMember 业主委员会成员
type HOAMember struct {
	Base   `bson:",inline"`
	FName  string `json:"fName" bson:"fName" gorm:"size:200;not null" validate:"required,max=200"`
	LName  string `json:"lName" bson:"lName" gorm:"size:200;not null" validate:"required,max=200"`
	ImgURL string `json:"imgUrl" bson:"imgUrl" gorm:"size:500;not null" validate:"required,max=500"`
	Title  string `json:"title" bson:"title" gorm:"size:200;not null" validate:"required,max=200"`
}

func (HOAMember) TableName() string { return "hoa_members" }

func (h *HOAMember) Normalize() {
	trim(&h.FName, &h.LName, &h.ImgURL, &h.Title)
}
