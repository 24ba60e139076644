package model

import "time"

const (
	RepeatNone    = "none"
	RepeatWeekly  = "weekly"
	RepeatMonthly = "monthly"
	RepeatYearly  = "yearly"

	EventTypeSocial = "Social"
)

type Event struct {
	Base        `bson:",inline"`
	Title       string     `json:"title" bson:"title" gorm:"uniqueIndex;size:100;not null" validate:"required,min=5,max=100"`
	Description string     `json:"description" bson:"description" gorm:"type:text" validate:"required,min=20,max=2000"`
	Date        time.Time  `json:"date" bson:"date" gorm:"index" validate:"required"`
	Location    string     `json:"location" bson:"location" gorm:"size:200;not null" validate:"required,max=200"`
	Type        string     `json:"type" bson:"type" gorm:"size:20;not null;index" validate:"oneof=Social Educational Sports Cultural Business"`
	StartTime   time.Time  `json:"startTime" bson:"startTime" validate:"required"`
	EndTime     time.Time  `json:"endTime" bson:"endTime" validate:"required,gtfield=StartTime"`
	Repeat      string     `json:"repeat" bson:"repeat" gorm:"size:10;not null" validate:"oneof=none weekly monthly yearly"`
	RepeatUntil *time.Time `json:"repeatUntil" bson:"repeatUntil"`
}

func (e *Event) Normalize() {
	trim(&e.Title, &e.Description, &e.Location, &e.Type, &e.Repeat)
	if e.Type == "" {
		e.Type = EventTypeSocial
	}
	if e.Repeat == "" {
		e.Repeat = RepeatNone
	}
	e.Date = utc(e.Date)
	e.StartTime = utc(e.StartTime)
	e.EndTime = utc(e.EndTime)
	if e.RepeatUntil != nil {
		until := utc(*e.RepeatUntil)
		e.RepeatUntil = &until
	}
}
