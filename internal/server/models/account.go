package models

import "time"

// Account is a principal identity with a hashed credential and roles.
// CredentialHash is never serialized.
type Account struct {
	ID             string    `json:"id"`
	Username       string    `json:"username"`
	CredentialHash string    `json:"-"`
	Roles          []string  `json:"roles"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// AccountSummary is the read projection of an Account: everything except
// credential material.
type AccountSummary struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Roles     []string  `json:"roles"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Summary drops the credential hash.
func (a *Account) Summary() AccountSummary {
	roles := make([]string, len(a.Roles))
	copy(roles, a.Roles)
	return AccountSummary{
		ID:        a.ID,
		Username:  a.Username,
		Roles:     roles,
		Active:    a.Active,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}
