package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmacedo/pca-api/internal/application/pca"
	"github.com/jmacedo/pca-api/internal/application/preco"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// Ensure TxRunner implements preco.TxRunner and pca.VersionamentoTxRunner.
var _ preco.TxRunner = (*TxRunner)(nil)
var _ pca.VersionamentoTxRunner = (*TxRunner)(nil)

// TxRunner executa callbacks dentro de uma transação PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner constrói o runner com o pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia uma transação, executa fn com repos atados à tx e faz Commit ou
// Rollback. Usado pelo cadastro de preços em lote.
func (r *TxRunner) Run(ctx context.Context, fn func(
	precoRepo repository.PrecoRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	precoRepo := NewPrecoRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(precoRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunVersionamento inicia uma transação com os repos necessários à cópia de
// um plano para uma nova versão (plano, demandas e itens).
func (r *TxRunner) RunVersionamento(ctx context.Context, fn func(
	pcaRepo repository.PcaRepository,
	demandaRepo repository.DemandaRepository,
	itemRepo repository.ItemRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	pcaRepo := NewPcaRepository(tx)
	demandaRepo := NewDemandaRepository(tx)
	itemRepo := NewItemRepository(tx)

	if err := fn(pcaRepo, demandaRepo, itemRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
