package models

import "time"

// Note is a title/body record owned by exactly one Account.
type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"user"`
	Title     string    `json:"title"`
	Body      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NoteView is a Note enriched with its owner's username.
type NoteView struct {
	Note
	Username string `json:"username"`
}
