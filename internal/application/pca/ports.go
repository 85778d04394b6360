package pca

import (
	"context"

	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// VersionamentoTxRunner executa o versionamento do plano dentro de uma única
// transação: nova linha do PCA e clonagem das demandas ativas (e seus itens)
// ou nada.
type VersionamentoTxRunner interface {
	RunVersionamento(ctx context.Context, fn func(
		pcaRepo repository.PcaRepository,
		demandaRepo repository.DemandaRepository,
		itemRepo repository.ItemRepository,
	) error) error
}
