package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.PcaRepository = (*PcaRepo)(nil)

// PcaRepo implementação do porto PcaRepository sobre PostgreSQL (usável com pool ou tx).
type PcaRepo struct {
	q Querier
}

// NewPcaRepository constrói o adaptador de persistência de planos. Passar pool ou tx (Querier).
func NewPcaRepository(q Querier) *PcaRepo {
	return &PcaRepo{q: q}
}

const pcaColumns = `id, ano, numero_plano, versao, situacao, versao_anterior_id, responsavel, area_responsavel, ativo, criado_em, atualizado_em`

// Create persiste uma versão do plano.
func (r *PcaRepo) Create(p *entity.Pca) error {
	query := `
		INSERT INTO pcas (` + pcaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Ano, p.NumeroPlano, p.Versao, p.Situacao, p.VersaoAnteriorID,
		p.Responsavel, p.AreaResponsavel, p.Ativo, p.CriadoEm, p.AtualizadoEm,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert pca: %w", err)
	}
	return nil
}

// GetByID obtém uma versão do plano por ID.
func (r *PcaRepo) GetByID(id string) (*entity.Pca, error) {
	query := `SELECT ` + pcaColumns + ` FROM pcas WHERE id = $1 AND ativo`
	var p entity.Pca
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.Ano, &p.NumeroPlano, &p.Versao, &p.Situacao, &p.VersaoAnteriorID,
		&p.Responsavel, &p.AreaResponsavel, &p.Ativo, &p.CriadoEm, &p.AtualizadoEm,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pca: %w", err)
	}
	return &p, nil
}

// Update atualiza situação e campos editáveis do plano.
func (r *PcaRepo) Update(p *entity.Pca) error {
	query := `
		UPDATE pcas SET situacao = $2, responsavel = $3, area_responsavel = $4, atualizado_em = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		p.ID, p.Situacao, p.Responsavel, p.AreaResponsavel, p.AtualizadoEm,
	)
	if err != nil {
		return fmt.Errorf("update pca: %w", err)
	}
	return nil
}

// List lista planos ativos; ano = 0 lista todos os anos.
func (r *PcaRepo) List(ano int, limit, offset int) ([]*entity.Pca, error) {
	query := `
		SELECT ` + pcaColumns + ` FROM pcas
		WHERE ativo AND ($1 = 0 OR ano = $1)
		ORDER BY ano DESC, versao DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, ano, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list pcas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pca
	for rows.Next() {
		var p entity.Pca
		if err := rows.Scan(&p.ID, &p.Ano, &p.NumeroPlano, &p.Versao, &p.Situacao, &p.VersaoAnteriorID,
			&p.Responsavel, &p.AreaResponsavel, &p.Ativo, &p.CriadoEm, &p.AtualizadoEm); err != nil {
			return nil, fmt.Errorf("scan pca: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete remove fisicamente o plano (guarda de demandas fica no caso de uso).
func (r *PcaRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM pcas WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete pca: %w", err)
	}
	return nil
}
