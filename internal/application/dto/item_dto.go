package dto

import "github.com/shopspring/decimal"

// CreateItemRequest comando para cadastrar um item em uma demanda.
type CreateItemRequest struct {
	DemandaID     string          `json:"demanda_id"`
	Descricao     string          `json:"descricao"`
	UnidadeMedida string          `json:"unidade_medida"`
	Quantidade    decimal.Decimal `json:"quantidade"`
	Observacoes   string          `json:"observacoes,omitempty"`
}

// UpdateItemRequest campos editáveis de um item. Os valores estimados não são
// aceitos aqui: somente o recálculo de valoração os escreve.
type UpdateItemRequest struct {
	Descricao     *string          `json:"descricao,omitempty"`
	UnidadeMedida *string          `json:"unidade_medida,omitempty"`
	Quantidade    *decimal.Decimal `json:"quantidade,omitempty"`
	Observacoes   *string          `json:"observacoes,omitempty"`
}

// ItemResponse representação de um item.
type ItemResponse struct {
	ID                    string           `json:"id"`
	DemandaID             string           `json:"demanda_id"`
	Descricao             string           `json:"descricao"`
	UnidadeMedida         string           `json:"unidade_medida"`
	Quantidade            decimal.Decimal  `json:"quantidade"`
	ValorUnitarioEstimado *decimal.Decimal `json:"valor_unitario_estimado,omitempty"`
	ValorTotalEstimado    *decimal.Decimal `json:"valor_total_estimado,omitempty"`
	Observacoes           string           `json:"observacoes,omitempty"`
}
