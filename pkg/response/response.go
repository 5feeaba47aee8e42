package response

import "github.com/ministryworks/dms-go/internal/domain/user"

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type CountResponse struct {
	Count int64 `json:"count"`
}
