package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item representa um item de uma Demanda, quantificado e precificado.
// ValorUnitarioEstimado e ValorTotalEstimado são derivados: somente o
// atualizador de valoração os escreve, nunca entrada direta do usuário.
// Invariante: total == unitário × quantidade sempre que o unitário não for nil.
type Item struct {
	ID                    string
	DemandaID             string
	Descricao             string
	UnidadeMedida         string
	Quantidade            decimal.Decimal
	ValorUnitarioEstimado *decimal.Decimal
	ValorTotalEstimado    *decimal.Decimal
	Observacoes           string
	CriadoEm              time.Time
	AtualizadoEm          time.Time
}
