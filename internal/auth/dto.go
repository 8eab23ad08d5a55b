package auth

// LoginDTO is the body of POST /auth.
type LoginDTO struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// RefreshTokenDTO is the body of POST /auth/refresh.
type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken"`
}

type TokenDTO struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}
