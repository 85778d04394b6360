package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDemandaRequest comando para cadastrar uma demanda em um PCA.
type CreateDemandaRequest struct {
	PcaID     string `json:"pca_id"`
	Descricao string `json:"descricao"`
}

// UpdateDemandaRequest campos editáveis de uma demanda (status muda só via workflow).
type UpdateDemandaRequest struct {
	Descricao *string `json:"descricao,omitempty"`
}

// MudarStatusDemandaRequest comando genérico de transição de status.
// Justificativa é obrigatória para CANCELADA.
type MudarStatusDemandaRequest struct {
	Status        string `json:"status"`
	Justificativa string `json:"justificativa,omitempty"`
}

// IniciarContratacaoRequest transição ESTIMADA → EM_CONTRATACAO.
type IniciarContratacaoRequest struct {
	NumeroProcesso string `json:"numero_processo"`
}

// FinalizarContratoRequest transição EM_CONTRATACAO → CONTRATADA.
type FinalizarContratoRequest struct {
	NumeroContrato  string          `json:"numero_contrato"`
	DataContrato    time.Time       `json:"data_contrato"`
	ValorContratado decimal.Decimal `json:"valor_contratado"`
	FornecedorCNPJ  string          `json:"fornecedor_cnpj"`
	FornecedorNome  string          `json:"fornecedor_nome"`
}

// DemandaResponse representação de uma demanda.
type DemandaResponse struct {
	ID                        string           `json:"id"`
	PcaID                     string           `json:"pca_id"`
	Codigo                    string           `json:"codigo"`
	Descricao                 string           `json:"descricao"`
	Status                    string           `json:"status"`
	ValorEstimadoGlobal       decimal.Decimal  `json:"valor_estimado_global"`
	NumeroProcesso            string           `json:"numero_processo,omitempty"`
	NumeroContrato            string           `json:"numero_contrato,omitempty"`
	DataContrato              *time.Time       `json:"data_contrato,omitempty"`
	ValorContratado           *decimal.Decimal `json:"valor_contratado,omitempty"`
	FornecedorCNPJ            string           `json:"fornecedor_cnpj,omitempty"`
	FornecedorNome            string           `json:"fornecedor_nome,omitempty"`
	JustificativaCancelamento string           `json:"justificativa_cancelamento,omitempty"`
	CanceladaEm               *time.Time       `json:"cancelada_em,omitempty"`
	CriadoEm                  time.Time        `json:"criado_em"`
}

// DemandaListResponse listagem paginada de demandas.
type DemandaListResponse struct {
	Demandas []DemandaResponse `json:"demandas"`
	Page     PageResponse      `json:"page"`
}
