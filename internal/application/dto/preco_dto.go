package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePrecoRequest comando para cadastrar um preço coletado.
type CreatePrecoRequest struct {
	ItemID        string          `json:"item_id"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
	Fonte         string          `json:"fonte"`
	TipoFonte     string          `json:"tipo_fonte"`
	Link          string          `json:"link,omitempty"`
	FornecedorID  string          `json:"fornecedor_id,omitempty"`
	DataColeta    time.Time       `json:"data_coleta"`
}

// CreatePrecoLoteItem um item do lote de cotação (valor ≤ 0 é ignorado em silêncio).
type CreatePrecoLoteItem struct {
	ItemID        string          `json:"item_id"`
	ValorUnitario decimal.Decimal `json:"valor_unitario"`
}

// CreatePrecoLoteRequest comando para cadastrar uma cotação de fornecedor em lote:
// um preço por item, dentro de uma única transação.
type CreatePrecoLoteRequest struct {
	FornecedorID string                `json:"fornecedor_id"`
	TipoFonte    string                `json:"tipo_fonte"`
	DataColeta   time.Time             `json:"data_coleta"`
	Itens        []CreatePrecoLoteItem `json:"itens"`
}

// UpdatePrecoRequest campos mutáveis de um preço (whitelist). Ponteiros nil
// significam "não alterar".
type UpdatePrecoRequest struct {
	ValorUnitario  *decimal.Decimal `json:"valor_unitario,omitempty"`
	Fonte          *string          `json:"fonte,omitempty"`
	TipoFonte      *string          `json:"tipo_fonte,omitempty"`
	Link           *string          `json:"link,omitempty"`
	DataColeta     *time.Time       `json:"data_coleta,omitempty"`
	FornecedorCNPJ *string          `json:"cnpj,omitempty"`
}

// PrecoResponse representação de um preço coletado.
type PrecoResponse struct {
	ID                 string           `json:"id"`
	ItemID             string           `json:"item_id"`
	ValorUnitario      decimal.Decimal  `json:"valor_unitario"`
	Fonte              string           `json:"fonte"`
	TipoFonte          string           `json:"tipo_fonte"`
	Link               string           `json:"link,omitempty"`
	FornecedorID       string           `json:"fornecedor_id,omitempty"`
	FornecedorCNPJ     string           `json:"cnpj,omitempty"`
	DataColeta         time.Time        `json:"data_coleta"`
	Classificacao      string           `json:"classificacao,omitempty"`
	PercentualVariacao *decimal.Decimal `json:"percentual_variacao,omitempty"`
	// Warning sinaliza falha no recálculo da valoração: a mutação do preço foi
	// persistida, mas os valores estimados do item podem estar desatualizados.
	Warning string `json:"warning,omitempty"`
}

// PrecoLoteResponse resultado do cadastro em lote.
type PrecoLoteResponse struct {
	IDs      []string `json:"ids"`
	Criados  int      `json:"criados"`
	Pulados  int      `json:"pulados"` // entradas com valor ≤ 0, ignoradas
	Warnings []string `json:"warnings,omitempty"`
}

// EstatisticaResponse estatísticas calculadas sobre os preços ativos de um item.
type EstatisticaResponse struct {
	Quantidade          int             `json:"quantidade"`
	Media               decimal.Decimal `json:"media"`
	Mediana             decimal.Decimal `json:"mediana"`
	DesvioPadrao        decimal.Decimal `json:"desvio_padrao"`
	CoeficienteVariacao decimal.Decimal `json:"coeficiente_variacao"`
	LimiteInferior      decimal.Decimal `json:"limite_inferior"`
	LimiteSuperior      decimal.Decimal `json:"limite_superior"`
}
