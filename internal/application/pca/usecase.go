package pca

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
	"github.com/jmacedo/pca-api/internal/domain/workflow"
)

// UseCase concentra o ciclo de vida do PCA: criação, mudança de situação,
// versionamento (cópia das demandas ativas para uma nova revisão) e exclusão
// guardada pela ausência de demandas.
type UseCase struct {
	pcaRepo     repository.PcaRepository
	demandaRepo repository.DemandaRepository
	itemRepo    repository.ItemRepository
	txRunner    VersionamentoTxRunner
	audit       auditoria.Sink
}

// NewUseCase constrói o caso de uso do PCA.
func NewUseCase(
	pcaRepo repository.PcaRepository,
	demandaRepo repository.DemandaRepository,
	itemRepo repository.ItemRepository,
	txRunner VersionamentoTxRunner,
	audit auditoria.Sink,
) *UseCase {
	return &UseCase{
		pcaRepo:     pcaRepo,
		demandaRepo: demandaRepo,
		itemRepo:    itemRepo,
		txRunner:    txRunner,
		audit:       audit,
	}
}

// Create cria a versão 1 de um plano em EM_ELABORACAO.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePcaRequest) (*dto.PcaResponse, error) {
	if in.Ano < 2000 || in.Ano > 2100 {
		return nil, &domain.ValidacaoError{Campo: "ano", Motivo: "fora do intervalo aceito"}
	}
	if strings.TrimSpace(in.NumeroPlano) == "" {
		return nil, &domain.ValidacaoError{Campo: "numero_plano", Motivo: "obrigatório"}
	}

	now := time.Now()
	p := &entity.Pca{
		ID:              uuid.New().String(),
		Ano:             in.Ano,
		NumeroPlano:     in.NumeroPlano,
		Versao:          1,
		Situacao:        entity.PcaEmElaboracao,
		Responsavel:     in.Responsavel,
		AreaResponsavel: in.AreaResponsavel,
		Ativo:           true,
		CriadoEm:        now,
		AtualizadoEm:    now,
	}
	if err := uc.pcaRepo.Create(p); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadePca,
		EntidadeID:   p.ID,
		ValorNovo:    fmt.Sprintf("%s/%d v%d", p.NumeroPlano, p.Ano, p.Versao),
		Descricao:    fmt.Sprintf("criação do PCA %s/%d", p.NumeroPlano, p.Ano),
		Resultado:    "SUCESSO",
	})
	return toResponse(p), nil
}

// GetByID devolve uma versão do plano.
func (uc *UseCase) GetByID(id string) (*dto.PcaResponse, error) {
	p, err := uc.pcaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return toResponse(p), nil
}

// List lista planos ativos, opcionalmente filtrados por ano.
func (uc *UseCase) List(ano, limit, offset int) (*dto.PcaListResponse, error) {
	planos, err := uc.pcaRepo.List(ano, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.PcaListResponse{
		Planos: make([]dto.PcaResponse, 0, len(planos)),
		Page:   dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, p := range planos {
		out.Planos = append(out.Planos, *toResponse(p))
	}
	return out, nil
}

// MudarSituacao altera a situação do plano. Planos terminais (ENCERRADO,
// CANCELADO) são somente-leitura.
func (uc *UseCase) MudarSituacao(ctx context.Context, userID, id string, in dto.MudarSituacaoPcaRequest) (*dto.PcaResponse, error) {
	p, err := uc.pcaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if err := workflow.ValidarMudancaSituacaoPca(p.Situacao, in.Situacao); err != nil {
		return nil, err
	}

	anterior := p.Situacao
	p.Situacao = in.Situacao
	p.AtualizadoEm = time.Now()
	if err := uc.pcaRepo.Update(p); err != nil {
		return nil, err
	}

	desc := fmt.Sprintf("PCA %s/%d v%d: %s → %s", p.NumeroPlano, p.Ano, p.Versao, anterior, in.Situacao)
	if in.Justificativa != "" {
		desc += " (" + in.Justificativa + ")"
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoTransicao,
		TipoEntidade:  entity.EntidadePca,
		EntidadeID:    p.ID,
		CampoAlterado: "situacao",
		ValorAnterior: anterior,
		ValorNovo:     in.Situacao,
		Descricao:     desc,
		Resultado:     "SUCESSO",
	})
	return toResponse(p), nil
}

// NovaVersao cria uma revisão do plano: nova linha com versão incrementada,
// situação reiniciada em EM_ELABORACAO, vínculo com a versão anterior e cópia
// das demandas ativas (códigos preservados) com seus itens, tudo em uma única
// transação. Válido apenas a partir de APROVADO ou EM_EXECUCAO e com motivo de
// ao menos 10 caracteres.
func (uc *UseCase) NovaVersao(ctx context.Context, userID, id string, in dto.NovaVersaoPcaRequest) (*dto.PcaResponse, error) {
	if len(strings.TrimSpace(in.Motivo)) < 10 {
		return nil, &domain.ValidacaoError{Campo: "motivo", Motivo: "mínimo 10 caracteres"}
	}
	anterior, err := uc.pcaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if anterior == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if !workflow.PcaPodeVersionar(anterior.Situacao) {
		return nil, &domain.ConflitoEstadoError{Entidade: "PCA", Estado: anterior.Situacao, Operacao: "nova versão"}
	}

	now := time.Now()
	novo := &entity.Pca{
		ID:               uuid.New().String(),
		Ano:              anterior.Ano,
		NumeroPlano:      anterior.NumeroPlano,
		Versao:           anterior.Versao + 1,
		Situacao:         entity.PcaEmElaboracao,
		VersaoAnteriorID: &anterior.ID,
		Responsavel:      anterior.Responsavel,
		AreaResponsavel:  anterior.AreaResponsavel,
		Ativo:            true,
		CriadoEm:         now,
		AtualizadoEm:     now,
	}

	err = uc.txRunner.RunVersionamento(ctx, func(
		pcaRepo repository.PcaRepository,
		demandaRepo repository.DemandaRepository,
		itemRepo repository.ItemRepository,
	) error {
		if err := pcaRepo.Create(novo); err != nil {
			return err
		}
		demandas, err := demandaRepo.ListByPca(anterior.ID, 0, 0) // limit 0 = todas as ativas
		if err != nil {
			return err
		}
		for _, d := range demandas {
			clone := *d
			clone.ID = uuid.New().String()
			clone.PcaID = novo.ID
			clone.CriadoEm = now
			clone.AtualizadoEm = now
			if err := demandaRepo.Create(&clone); err != nil {
				return err
			}
			itens, err := itemRepo.ListByDemanda(d.ID)
			if err != nil {
				return err
			}
			for _, it := range itens {
				itClone := *it
				itClone.ID = uuid.New().String()
				itClone.DemandaID = clone.ID
				itClone.CriadoEm = now
				itClone.AtualizadoEm = now
				if err := itemRepo.Create(&itClone); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoCriacao,
		TipoEntidade:  entity.EntidadePca,
		EntidadeID:    novo.ID,
		CampoAlterado: "versao",
		ValorAnterior: fmt.Sprintf("%d", anterior.Versao),
		ValorNovo:     fmt.Sprintf("%d", novo.Versao),
		Descricao:     fmt.Sprintf("nova versão do PCA %s/%d: v%d → v%d (%s)", novo.NumeroPlano, novo.Ano, anterior.Versao, novo.Versao, in.Motivo),
		Resultado:     "SUCESSO",
	})
	return toResponse(novo), nil
}

// Delete remove fisicamente o plano, permitido apenas quando não possui
// nenhuma demanda (guarda contra destruir planos com trabalho real).
func (uc *UseCase) Delete(ctx context.Context, userID, id, justificativa string) error {
	p, err := uc.pcaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrNaoEncontrado
	}
	n, err := uc.demandaRepo.CountByPca(id)
	if err != nil {
		return err
	}
	if n > 0 {
		return &domain.ConflitoEstadoError{Entidade: "PCA", Estado: fmt.Sprintf("%d demanda(s)", n), Operacao: "exclusão"}
	}
	if err := uc.pcaRepo.Delete(id); err != nil {
		return err
	}

	desc := fmt.Sprintf("exclusão do PCA %s/%d v%d", p.NumeroPlano, p.Ano, p.Versao)
	if justificativa != "" {
		desc += " (" + justificativa + ")"
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoExclusao,
		TipoEntidade:  entity.EntidadePca,
		EntidadeID:    id,
		ValorAnterior: fmt.Sprintf("%s/%d v%d", p.NumeroPlano, p.Ano, p.Versao),
		Descricao:     desc,
		Resultado:     "SUCESSO",
	})
	return nil
}

func toResponse(p *entity.Pca) *dto.PcaResponse {
	out := &dto.PcaResponse{
		ID:              p.ID,
		Ano:             p.Ano,
		NumeroPlano:     p.NumeroPlano,
		Versao:          p.Versao,
		Situacao:        p.Situacao,
		Responsavel:     p.Responsavel,
		AreaResponsavel: p.AreaResponsavel,
		CriadoEm:        p.CriadoEm,
	}
	if p.VersaoAnteriorID != nil {
		out.VersaoAnteriorID = *p.VersaoAnteriorID
	}
	return out
}
