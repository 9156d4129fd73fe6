package user

import (
	"github.com/google/uuid"
)

type (
	Request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	User struct {
		UUID  uuid.UUID `json:"id"`
		Email string    `json:"email"`
	}
)
