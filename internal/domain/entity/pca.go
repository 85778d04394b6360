package entity

import "time"

// Situações do PCA (Plano de Contratações Anual).
const (
	PcaEmElaboracao = "EM_ELABORACAO" // situação inicial
	PcaAprovado     = "APROVADO"
	PcaEmExecucao   = "EM_EXECUCAO"
	PcaRevisado     = "REVISADO"  // reaprovação intermediária após revisão
	PcaEncerrado    = "ENCERRADO" // terminal
	PcaCancelado    = "CANCELADO" // terminal
)

// Pca representa uma versão do plano anual de contratações de uma unidade.
// Uma nova versão é uma nova linha ligada à anterior via VersaoAnteriorID.
type Pca struct {
	ID               string
	Ano              int
	NumeroPlano      string
	Versao           int // >= 1
	Situacao         string
	VersaoAnteriorID *string
	Responsavel      string
	AreaResponsavel  string
	Ativo            bool
	CriadoEm         time.Time
	AtualizadoEm     time.Time
}
