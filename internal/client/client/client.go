package client

import (
	"context"
	"time"
)

// Account is the account view returned by the server. It never carries
// credential material.
type Account struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Note is a note enriched with its owner's username.
type Note struct {
	ID        string    `json:"id"`
	Owner     string    `json:"user"`
	Username  string    `json:"username"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AccountUpdate is a full replace of an account; an empty Password keeps
// the stored credential.
type AccountUpdate struct {
	ID       string
	Username string
	Roles    []string
	Active   bool
	Password []byte
}

type NoteUpdate struct {
	ID        string
	Owner     string
	Title     string
	Text      string
	Completed bool
}

type Client interface {
	Close() error
	Ping(ctx context.Context) error

	ListAccounts(ctx context.Context) ([]Account, error)
	GetAccount(ctx context.Context, id string) (*Account, error)
	CreateAccount(ctx context.Context, username string, password []byte, roles []string) (string, error)
	UpdateAccount(ctx context.Context, u AccountUpdate) (string, error)
	DeleteAccount(ctx context.Context, id string) (string, error)

	ListNotes(ctx context.Context) ([]Note, error)
	GetNote(ctx context.Context, id string) (*Note, error)
	CreateNote(ctx context.Context, owner, title, text string) (string, error)
	UpdateNote(ctx context.Context, u NoteUpdate) (string, error)
	DeleteNote(ctx context.Context, id string) (string, error)
}
