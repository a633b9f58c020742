package domain

import "time"

type User struct {
	ID            int32     `json:"id"`
	PhoneNumber   string    `json:"phone_number"`
	Name          string    `json:"name"`
	Email         string    `json:"email,omitempty"`
	PasswordHash  string    `json:"-"`
	PhoneVerified bool      `json:"phone_verified"`
	CreatedOn     time.Time `json:"created_on"`
}
