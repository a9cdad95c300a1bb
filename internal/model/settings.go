package model

import "time"

const DefaultTheme = "light"

type Settings struct {
	UserID          string    `db:"user_id" json:"userId"`
	DefaultCurrency string    `db:"default_currency" json:"defaultCurrency"`
	Theme           string    `db:"theme" json:"theme"`
	CreatedAt       time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `db:"updated_at" json:"updatedAt"`
}
