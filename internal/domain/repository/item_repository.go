package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain/entity"
)

// ItemRepository define o porto de persistência para Item.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(id string) (*entity.Item, error)
	// Update não altera os valores estimados (escritos apenas via UpdateValoracao).
	Update(item *entity.Item) error
	ListByDemanda(demandaID string) ([]*entity.Item, error)
	// UpdateValoracao grava os valores derivados pelo motor de estatística.
	UpdateValoracao(itemID string, valorUnitario, valorTotal decimal.Decimal) error
	Delete(id string) error
}
