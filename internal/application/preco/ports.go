package preco

import (
	"context"

	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// TxRunner executa uma função dentro de uma transação de BD, passando
// repositórios atados a essa tx. Garante atomicidade do cadastro em lote:
// falha parcial não deixa preços órfãos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		precoRepo repository.PrecoRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
