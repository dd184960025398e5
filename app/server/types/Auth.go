package types

type AuthCredentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginToken struct {
	RememberToken string `json:"remember_token"`
}
