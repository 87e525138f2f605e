package db

import "time"

type CheeseCheeseListing struct {
	ID          int64
	Title       string
	Description string
	Price       int64
	CreatedAt   time.Time
	IsPublished bool
	OwnerID     int64
}

type CheeseUser struct {
	ID        int64
	Email     string
	Username  string
	CreatedAt time.Time
}
