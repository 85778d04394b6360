package dto

import "time"

// AnexoResponse metadados de um anexo.
type AnexoResponse struct {
	ID           string    `json:"id"`
	TipoEntidade string    `json:"tipo_entidade"`
	EntidadeID   string    `json:"entidade_id"`
	NomeArquivo  string    `json:"nome_arquivo"`
	ContentType  string    `json:"content_type"`
	Tamanho      int64     `json:"tamanho"`
	CriadoEm     time.Time `json:"criado_em"`
}
