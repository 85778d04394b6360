package dto

// RegisterRequest cadastro de usuário.
type RegisterRequest struct {
	Nome   string `json:"nome"`
	Email  string `json:"email"`
	Senha  string `json:"senha"`
	Perfil string `json:"perfil,omitempty"` // padrão: "consulta"
}

// LoginRequest autenticação.
type LoginRequest struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// AuthResponse token emitido após login/registro.
type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Nome   string `json:"nome"`
	Perfil string `json:"perfil"`
}
