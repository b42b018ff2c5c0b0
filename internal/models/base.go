package models

import "time"

type Base struct {
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func NewBase() Base {
	now := time.Now()
	return Base{
		CreatedAt: now,
		UpdatedAt: now,
	}
}
