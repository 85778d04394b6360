package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

// ItemRepo implementação do porto ItemRepository sobre PostgreSQL (usável com pool ou tx).
type ItemRepo struct {
	q Querier
}

// NewItemRepository constrói o adaptador de persistência de itens. Passar pool ou tx (Querier).
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

const itemColumns = `id, demanda_id, descricao, unidade_medida, quantidade,
	valor_unitario_estimado, valor_total_estimado, observacoes, criado_em, atualizado_em`

// Create persiste um item de demanda.
func (r *ItemRepo) Create(it *entity.Item) error {
	query := `
		INSERT INTO itens (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.DemandaID, it.Descricao, it.UnidadeMedida, it.Quantidade,
		it.ValorUnitarioEstimado, it.ValorTotalEstimado, it.Observacoes,
		it.CriadoEm, it.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

// GetByID obtém um item por ID.
func (r *ItemRepo) GetByID(id string) (*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens WHERE id = $1`
	var it entity.Item
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&it.ID, &it.DemandaID, &it.Descricao, &it.UnidadeMedida, &it.Quantidade,
		&it.ValorUnitarioEstimado, &it.ValorTotalEstimado, &it.Observacoes,
		&it.CriadoEm, &it.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

// Update atualiza os campos editáveis do item. Os valores estimados não passam
// por aqui: somente UpdateValoracao os escreve.
func (r *ItemRepo) Update(it *entity.Item) error {
	query := `
		UPDATE itens SET descricao = $2, unidade_medida = $3, quantidade = $4,
			observacoes = $5, atualizado_em = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		it.ID, it.Descricao, it.UnidadeMedida, it.Quantidade, it.Observacoes, it.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update item: %w", err)
	}
	return nil
}

// ListByDemanda lista os itens de uma demanda.
func (r *ItemRepo) ListByDemanda(demandaID string) ([]*entity.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM itens WHERE demanda_id = $1 ORDER BY criado_em`
	rows, err := r.q.Query(context.Background(), query, demandaID)
	if err != nil {
		return nil, fmt.Errorf("list itens: %w", err)
	}
	defer rows.Close()
	var list []*entity.Item
	for rows.Next() {
		var it entity.Item
		if err := rows.Scan(&it.ID, &it.DemandaID, &it.Descricao, &it.UnidadeMedida, &it.Quantidade,
			&it.ValorUnitarioEstimado, &it.ValorTotalEstimado, &it.Observacoes,
			&it.CriadoEm, &it.AtualizadoEm); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// UpdateValoracao grava os valores derivados pelo motor de estatística.
func (r *ItemRepo) UpdateValoracao(itemID string, valorUnitario, valorTotal decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE itens SET valor_unitario_estimado = $2, valor_total_estimado = $3, atualizado_em = now() WHERE id = $1`,
		itemID, valorUnitario, valorTotal,
	)
	if err != nil {
		return fmt.Errorf("update valoracao: %w", err)
	}
	return nil
}

// Delete remove fisicamente o item (os preços vão junto via FK ON DELETE CASCADE).
func (r *ItemRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM itens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete item: %w", err)
	}
	return nil
}
