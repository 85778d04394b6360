package dto

// CreateFornecedorRequest comando para cadastrar um fornecedor.
type CreateFornecedorRequest struct {
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia,omitempty"`
	CNPJ         string `json:"cnpj"`
}

// UpdateFornecedorRequest campos editáveis (CNPJ é imutável).
type UpdateFornecedorRequest struct {
	RazaoSocial  *string `json:"razao_social,omitempty"`
	NomeFantasia *string `json:"nome_fantasia,omitempty"`
}

// FornecedorResponse representação de um fornecedor.
type FornecedorResponse struct {
	ID           string `json:"id"`
	RazaoSocial  string `json:"razao_social"`
	NomeFantasia string `json:"nome_fantasia,omitempty"`
	CNPJ         string `json:"cnpj"`
	Ativo        bool   `json:"ativo"`
}

// FornecedorListResponse listagem paginada de fornecedores.
type FornecedorListResponse struct {
	Fornecedores []FornecedorResponse `json:"fornecedores"`
	Page         PageResponse         `json:"page"`
}
