package entity

import "time"

// Fornecedor representa um fornecedor cadastrado, referenciado opcionalmente
// pelos preços coletados (auto-preenchimento de fonte e CNPJ).
type Fornecedor struct {
	ID           string
	RazaoSocial  string
	NomeFantasia string
	CNPJ         string // único
	Ativo        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
