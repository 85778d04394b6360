package auditoria

import (
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// ConsultaUseCase expõe a leitura da trilha de auditoria por entidade.
type ConsultaUseCase struct {
	repo repository.AuditoriaRepository
}

// NewConsultaUseCase constrói o caso de uso.
func NewConsultaUseCase(repo repository.AuditoriaRepository) *ConsultaUseCase {
	return &ConsultaUseCase{repo: repo}
}

// ListByEntidade lista os registros de auditoria de uma entidade, mais recentes primeiro.
func (uc *ConsultaUseCase) ListByEntidade(tipoEntidade, entidadeID string, limit, offset int) (*dto.AuditoriaListResponse, error) {
	regs, err := uc.repo.ListByEntidade(tipoEntidade, entidadeID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.AuditoriaListResponse{
		Registros: make([]dto.AuditoriaResponse, 0, len(regs)),
		Page:      dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, a := range regs {
		out.Registros = append(out.Registros, dto.AuditoriaResponse{
			ID:            a.ID,
			UsuarioID:     a.UsuarioID,
			Acao:          a.Acao,
			TipoEntidade:  a.TipoEntidade,
			EntidadeID:    a.EntidadeID,
			CampoAlterado: a.CampoAlterado,
			ValorAnterior: a.ValorAnterior,
			ValorNovo:     a.ValorNovo,
			Descricao:     a.Descricao,
			Resultado:     a.Resultado,
			CriadoEm:      a.CriadoEm,
		})
	}
	return out, nil
}
