package entity

import "time"

// Usuario representa um usuário autenticável da aplicação.
type Usuario struct {
	ID           string
	Nome         string
	Email        string // único
	SenhaHash    string // bcrypt
	Perfil       string // "admin" | "gestor" | "consulta"
	Ativo        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
