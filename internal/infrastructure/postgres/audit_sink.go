package postgres

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

var _ auditoria.Sink = (*AuditSink)(nil)

// AuditSink grava registros de auditoria na tabela via AuditoriaRepository.
// Best-effort: falha de escrita é logada e nunca propaga ao caso de uso, a
// mutação primária não pode ser desfeita por problema na trilha.
type AuditSink struct {
	repo repository.AuditoriaRepository
}

// NewAuditSink constrói o sink sobre o repositório da trilha.
func NewAuditSink(repo repository.AuditoriaRepository) *AuditSink {
	return &AuditSink{repo: repo}
}

// Registrar grava o registro, engolindo o erro com log de aviso.
func (s *AuditSink) Registrar(_ context.Context, a *entity.Auditoria) {
	if err := s.repo.Create(a); err != nil {
		log.Warn().Err(err).
			Str("acao", a.Acao).
			Str("tipo_entidade", a.TipoEntidade).
			Str("entidade_id", a.EntidadeID).
			Msg("falha ao gravar registro de auditoria")
	}
}
