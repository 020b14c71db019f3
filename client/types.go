// Package client provides a JSON API client for the taskboard server and a
// synchronization store mirroring server entities for a UI: an injectable
// state container with per-slice reducers applying pending, fulfilled and
// rejected transitions around each request.
package client

import "time"

type User struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Task struct {
	ID          string  `json:"id"`
	ColumnID    string  `json:"columnId"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	AssigneeID  *string `json:"assigneeId"`
	Assignee    *User   `json:"assignee"`
	Tags        []Tag   `json:"tags"`
}

type Column struct {
	ID      string `json:"id"`
	BoardID string `json:"boardId"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Tasks   []Task `json:"tasks"`
}

type Board struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	OwnerID     string    `json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Members     []User    `json:"members"`
	Columns     []Column  `json:"columns"`
}

type Notification struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Read        bool      `json:"read"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Auth carries the login/register payload: the user plus a session token.
type Auth struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}
