package user

import (
	"files-manager-api/internal/domain/user"
)

func ToResponseUser(uDomain user.User) User {
	return User{
		UUID:  uDomain.UUID,
		Email: uDomain.Email,
	}
}
