package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ repository.AuditoriaRepository = (*AuditoriaRepo)(nil)

// AuditoriaRepo implementação do porto AuditoriaRepository sobre PostgreSQL.
// A tabela é append-only: este adaptador nunca emite UPDATE nem DELETE.
type AuditoriaRepo struct {
	q Querier
}

// NewAuditoriaRepository constrói o adaptador da trilha de auditoria.
func NewAuditoriaRepository(q Querier) *AuditoriaRepo {
	return &AuditoriaRepo{q: q}
}

const auditoriaColumns = `id, usuario_id, acao, tipo_entidade, entidade_id,
	campo_alterado, valor_anterior, valor_novo, descricao, resultado, criado_em`

// Create grava um registro da trilha.
func (r *AuditoriaRepo) Create(a *entity.Auditoria) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CriadoEm.IsZero() {
		a.CriadoEm = time.Now()
	}
	query := `
		INSERT INTO auditoria (` + auditoriaColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.UsuarioID, a.Acao, a.TipoEntidade, a.EntidadeID,
		nullIfEmpty(a.CampoAlterado), nullIfEmpty(a.ValorAnterior), nullIfEmpty(a.ValorNovo),
		a.Descricao, a.Resultado, a.CriadoEm,
	)
	if err != nil {
		return fmt.Errorf("insert auditoria: %w", err)
	}
	return nil
}

// ListByEntidade lista os registros de uma entidade, mais recentes primeiro.
func (r *AuditoriaRepo) ListByEntidade(tipoEntidade, entidadeID string, limit, offset int) ([]*entity.Auditoria, error) {
	query := `
		SELECT ` + auditoriaColumns + ` FROM auditoria
		WHERE tipo_entidade = $1 AND entidade_id = $2
		ORDER BY criado_em DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, tipoEntidade, entidadeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list auditoria: %w", err)
	}
	defer rows.Close()
	var list []*entity.Auditoria
	for rows.Next() {
		var a entity.Auditoria
		var campo, anterior, novo *string
		if err := rows.Scan(&a.ID, &a.UsuarioID, &a.Acao, &a.TipoEntidade, &a.EntidadeID,
			&campo, &anterior, &novo, &a.Descricao, &a.Resultado, &a.CriadoEm); err != nil {
			return nil, fmt.Errorf("scan auditoria: %w", err)
		}
		a.CampoAlterado = derefOrEmpty(campo)
		a.ValorAnterior = derefOrEmpty(anterior)
		a.ValorNovo = derefOrEmpty(novo)
		list = append(list, &a)
	}
	return list, rows.Err()
}
