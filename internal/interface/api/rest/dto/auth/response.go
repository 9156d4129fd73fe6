package auth

type Token struct {
	Token string `json:"token"`
}
