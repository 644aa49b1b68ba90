package models

import "time"

type Note struct {
	ID        int64
	Owner     string
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt time.Time
}
