package model

import "time"

type User struct {
	UserID     string    `firestore:"userid" json:"id"`
	Name       string    `firestore:"name" json:"name"`
	Email      string    `firestore:"email" json:"email"`
	Password   string    `firestore:"password" json:"-"`
	IsVerified bool      `firestore:"verified" json:"isVerified"`
	Tokens     []string  `firestore:"tokens" json:"-"`
	CreatedAt  time.Time `firestore:"createdat" json:"createdAt"`
}

// UserSummary is the shape returned by list endpoints and embedded project
// member expansions.
type UserSummary struct {
	UserID string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
}

func (u *User) Summary() UserSummary {
	return UserSummary{UserID: u.UserID, Name: u.Name, Email: u.Email}
}

// HasToken reports whether the refresh token is in the user's stored set.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}
