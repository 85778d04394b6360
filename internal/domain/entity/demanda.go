package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status da Demanda (máquina de estados, ver internal/domain/workflow).
const (
	DemandaCadastrada    = "CADASTRADA" // status inicial
	DemandaEmAnalise     = "EM_ANALISE"
	DemandaEstimada      = "ESTIMADA"
	DemandaEmContratacao = "EM_CONTRATACAO"
	DemandaContratada    = "CONTRATADA" // terminal
	DemandaSuspensa      = "SUSPENSA"
	DemandaCancelada     = "CANCELADA" // terminal
)

// Demanda representa uma demanda de contratação vinculada a um PCA.
// Codigo é gerado pelo sistema e imutável; os campos de contratação são
// preenchidos apenas durante as transições IniciarContratacao/FinalizarContrato.
type Demanda struct {
	ID                  string
	PcaID               string
	Codigo              string // "DM-<ano>-<seq>", preservado entre versões do PCA
	Descricao           string
	Status              string
	ValorEstimadoGlobal decimal.Decimal

	// Campos de contratação
	NumeroProcesso  string
	NumeroContrato  string
	DataContrato    *time.Time
	ValorContratado *decimal.Decimal
	FornecedorCNPJ  string
	FornecedorNome  string

	// Cancelamento
	JustificativaCancelamento string
	CanceladaEm               *time.Time

	Ativo        bool
	CriadoEm     time.Time
	AtualizadoEm time.Time
}
