package dto

import "time"

// AuditoriaResponse um registro da trilha de auditoria.
type AuditoriaResponse struct {
	ID            string    `json:"id"`
	UsuarioID     string    `json:"usuario_id"`
	Acao          string    `json:"acao"`
	TipoEntidade  string    `json:"tipo_entidade"`
	EntidadeID    string    `json:"entidade_id"`
	CampoAlterado string    `json:"campo_alterado,omitempty"`
	ValorAnterior string    `json:"valor_anterior,omitempty"`
	ValorNovo     string    `json:"valor_novo,omitempty"`
	Descricao     string    `json:"descricao"`
	Resultado     string    `json:"resultado"`
	CriadoEm      time.Time `json:"criado_em"`
}

// AuditoriaListResponse listagem paginada da trilha.
type AuditoriaListResponse struct {
	Registros []AuditoriaResponse `json:"registros"`
	Page      PageResponse        `json:"page"`
}
