package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de fonte de um preço coletado.
const (
	FonteCotacaoFornecedor = "SUPPLIER_QUOTE"
	FontePainelPrecos      = "PRICE_PANEL"
	FonteBancoPrecos       = "PRICE_BANK"
	FonteContratoSimilar   = "SIMILAR_CONTRACT"
	FonteNotaFiscal        = "INVOICE"
	FonteOutra             = "OTHER"
)

// Classificações de um preço em relação à faixa de aceitação [mediana×0,75, mediana×1,25].
// INVALID_DATE existe na taxonomia para preços com data de coleta vencida; a regra
// de frescor não é calculada pelo motor de estatística (condição pendente de negócio).
const (
	ClassificacaoAceito       = "ACCEPTED"
	ClassificacaoAcimaLimite  = "ABOVE_LIMIT"
	ClassificacaoAbaixoLimite = "BELOW_LIMIT"
	ClassificacaoDataInvalida = "INVALID_DATE"
)

// TiposFonteValidos para validação na borda.
var TiposFonteValidos = map[string]bool{
	FonteCotacaoFornecedor: true,
	FontePainelPrecos:      true,
	FonteBancoPrecos:       true,
	FonteContratoSimilar:   true,
	FonteNotaFiscal:        true,
	FonteOutra:             true,
}

// Preco representa uma observação de preço de mercado coletada para um Item.
// Classificacao e PercentualVariacao são derivados pelo motor de estatística
// a cada mutação do conjunto de preços do item.
type Preco struct {
	ID                 string
	ItemID             string
	ValorUnitario      decimal.Decimal // > 0
	Fonte              string
	TipoFonte          string
	Link               string
	FornecedorID       *string
	FornecedorCNPJ     string
	DataColeta         time.Time
	Classificacao      string
	PercentualVariacao *decimal.Decimal
	Ativo              bool
	CriadoEm           time.Time
	AtualizadoEm       time.Time
	CriadoPor          string
}
