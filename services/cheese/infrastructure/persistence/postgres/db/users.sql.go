package db

import (
	"context"
	"time"
)

const insertUser = `
INSERT INTO users (email, username, created_at)
VALUES ($1, $2, $3)
RETURNING id
`

type InsertUserParams struct {
	Email     string
	Username  string
	CreatedAt time.Time
}

func (q *Queries) InsertUser(ctx context.Context, arg InsertUserParams) (int64, error) {
	row := q.db.QueryRowContext(ctx, insertUser, arg.Email, arg.Username, arg.CreatedAt)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getUserByID = `
SELECT id, email, username, created_at
FROM users
WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id int64) (CheeseUser, error) {
	row := q.db.QueryRowContext(ctx, getUserByID, id)
	var i CheeseUser
	err := row.Scan(
		&i.ID,
		&i.Email,
		&i.Username,
		&i.CreatedAt,
	)
	return i, err
}

const userExists = `
SELECT EXISTS (SELECT 1 FROM users WHERE id = $1)
`

func (q *Queries) UserExists(ctx context.Context, id int64) (bool, error) {
	row := q.db.QueryRowContext(ctx, userExists, id)
	var exists bool
	err := row.Scan(&exists)
	return exists, err
}
