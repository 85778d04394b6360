package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.AnexoRepository = (*AnexoRepo)(nil)

// AnexoRepo implementação do porto AnexoRepository sobre PostgreSQL.
type AnexoRepo struct {
	q Querier
}

// NewAnexoRepository constrói o adaptador de metadados de anexos.
func NewAnexoRepository(q Querier) *AnexoRepo {
	return &AnexoRepo{q: q}
}

const anexoColumns = `id, tipo_entidade, entidade_id, nome_arquivo, content_type, tamanho, caminho, ativo, criado_em, criado_por`

// Create persiste os metadados de um anexo.
func (r *AnexoRepo) Create(a *entity.Anexo) error {
	query := `
		INSERT INTO anexos (` + anexoColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.TipoEntidade, a.EntidadeID, a.NomeArquivo, a.ContentType,
		a.Tamanho, a.Caminho, a.Ativo, a.CriadoEm, a.CriadoPor,
	)
	if err != nil {
		return fmt.Errorf("insert anexo: %w", err)
	}
	return nil
}

// GetByID obtém os metadados de um anexo.
func (r *AnexoRepo) GetByID(id string) (*entity.Anexo, error) {
	query := `SELECT ` + anexoColumns + ` FROM anexos WHERE id = $1`
	var a entity.Anexo
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&a.ID, &a.TipoEntidade, &a.EntidadeID, &a.NomeArquivo, &a.ContentType,
		&a.Tamanho, &a.Caminho, &a.Ativo, &a.CriadoEm, &a.CriadoPor,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get anexo: %w", err)
	}
	return &a, nil
}

// ListByEntidade lista os anexos ativos de uma entidade.
func (r *AnexoRepo) ListByEntidade(tipoEntidade, entidadeID string) ([]*entity.Anexo, error) {
	query := `
		SELECT ` + anexoColumns + ` FROM anexos
		WHERE tipo_entidade = $1 AND entidade_id = $2 AND ativo
		ORDER BY criado_em DESC`
	rows, err := r.q.Query(context.Background(), query, tipoEntidade, entidadeID)
	if err != nil {
		return nil, fmt.Errorf("list anexos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Anexo
	for rows.Next() {
		var a entity.Anexo
		if err := rows.Scan(&a.ID, &a.TipoEntidade, &a.EntidadeID, &a.NomeArquivo, &a.ContentType,
			&a.Tamanho, &a.Caminho, &a.Ativo, &a.CriadoEm, &a.CriadoPor); err != nil {
			return nil, fmt.Errorf("scan anexo: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// SoftDelete marca o anexo como inativo; o blob permanece no store.
func (r *AnexoRepo) SoftDelete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE anexos SET ativo = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("soft delete anexo: %w", err)
	}
	return nil
}
