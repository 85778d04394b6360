package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// PrecoRepository define o porto de persistência para Preco.
type PrecoRepository interface {
	Create(preco *entity.Preco) error
	GetByID(id string) (*entity.Preco, error)
	Update(preco *entity.Preco) error
	// ListAtivosByItem devolve os preços ativos do item (insumo da valoração).
	ListAtivosByItem(itemID string) ([]*entity.Preco, error)
	// UpdateClassificacao grava classificação e variação derivadas pelo motor
	// de estatística, sem tocar nos demais campos.
	UpdateClassificacao(id, classificacao string, variacao decimal.Decimal) error
	// Delete remove fisicamente o preço.
	Delete(id string) error
}
