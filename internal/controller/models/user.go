package models

import (
	"time"

	"dontverifyme/internal/auth"
)

type User struct {
	Id                    *string    `json:"id"`
	Email                 string     `json:"email"`
	Password              *string    `json:"password"`
	PasswordHash          *string    `json:"passwordHash"`
	EmailVerificationCode *string    `json:"emailVerificationCode"`
	IsEmailVerified       bool       `json:"isEmailVerified"`
	CreatedAt             *time.Time `json:"createdAt"`
	LastUpdatedAt         *time.Time `json:"lastUpdatedAt"`
}

func (u User) ValidatePassword() bool {
	if u.Password == nil || u.PasswordHash == nil {
		return false
	}
	return auth.ValidatePassword(*u.Password, *u.PasswordHash)
}
