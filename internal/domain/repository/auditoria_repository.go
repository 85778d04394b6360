package repository

import "github.com/jmacedo/pca-api/internal/domain/entity"

// AuditoriaRepository define o porto de persistência da trilha de auditoria.
// Append-only: não existem Update nem Delete.
type AuditoriaRepository interface {
	Create(a *entity.Auditoria) error
	ListByEntidade(tipoEntidade, entidadeID string, limit, offset int) ([]*entity.Auditoria, error)
}
