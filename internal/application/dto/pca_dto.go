package dto

import "time"

// CreatePcaRequest comando para criar um plano anual (versão 1, EM_ELABORACAO).
type CreatePcaRequest struct {
	Ano             int    `json:"ano"`
	NumeroPlano     string `json:"numero_plano"`
	Responsavel     string `json:"responsavel"`
	AreaResponsavel string `json:"area_responsavel,omitempty"`
}

// MudarSituacaoPcaRequest comando de mudança de situação do plano.
type MudarSituacaoPcaRequest struct {
	Situacao      string `json:"situacao"`
	Justificativa string `json:"justificativa,omitempty"`
}

// NovaVersaoPcaRequest comando de versionamento: exige motivo com ao menos 10 caracteres.
type NovaVersaoPcaRequest struct {
	Motivo string `json:"motivo"`
}

// PcaResponse representação de uma versão do plano.
type PcaResponse struct {
	ID               string    `json:"id"`
	Ano              int       `json:"ano"`
	NumeroPlano      string    `json:"numero_plano"`
	Versao           int       `json:"versao"`
	Situacao         string    `json:"situacao"`
	VersaoAnteriorID string    `json:"versao_anterior_id,omitempty"`
	Responsavel      string    `json:"responsavel"`
	AreaResponsavel  string    `json:"area_responsavel,omitempty"`
	CriadoEm         time.Time `json:"criado_em"`
}

// PcaListResponse listagem paginada de planos.
type PcaListResponse struct {
	Planos []PcaResponse `json:"planos"`
	Page   PageResponse  `json:"page"`
}
