package demanda

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
	"github.com/jmacedo/pca-api/internal/domain/workflow"
	"github.com/jmacedo/pca-api/pkg/metrics"
)

// UseCase concentra o ciclo de vida da Demanda: cadastro, edição e a máquina
// de estados (transição genérica, início de contratação e finalização de
// contrato). Toda transição notifica o colaborador externo e gera registro
// STATUS_TRANSITION na auditoria.
type UseCase struct {
	demandaRepo repository.DemandaRepository
	pcaRepo     repository.PcaRepository
	itemRepo    repository.ItemRepository
	notifier    Notifier
	audit       auditoria.Sink
}

// NewUseCase constrói o caso de uso de demandas.
func NewUseCase(
	demandaRepo repository.DemandaRepository,
	pcaRepo repository.PcaRepository,
	itemRepo repository.ItemRepository,
	notifier Notifier,
	audit auditoria.Sink,
) *UseCase {
	return &UseCase{
		demandaRepo: demandaRepo,
		pcaRepo:     pcaRepo,
		itemRepo:    itemRepo,
		notifier:    notifier,
		audit:       audit,
	}
}

// Create cadastra uma demanda em CADASTRADA com código imutável gerado pelo
// sistema no formato DM-<ano>-<seq>.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateDemandaRequest) (*dto.DemandaResponse, error) {
	if strings.TrimSpace(in.Descricao) == "" {
		return nil, &domain.ValidacaoError{Campo: "descricao", Motivo: "obrigatória"}
	}
	pca, err := uc.pcaRepo.GetByID(in.PcaID)
	if err != nil {
		return nil, err
	}
	if pca == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if workflow.PcaTerminal(pca.Situacao) {
		return nil, &domain.ConflitoEstadoError{Entidade: "PCA", Estado: pca.Situacao, Operacao: "cadastro de demanda"}
	}

	seq, err := uc.demandaRepo.ProximaSequenciaCodigo()
	if err != nil {
		return nil, err
	}

	now := time.Now()
	d := &entity.Demanda{
		ID:           uuid.New().String(),
		PcaID:        in.PcaID,
		Codigo:       fmt.Sprintf("DM-%d-%05d", pca.Ano, seq),
		Descricao:    in.Descricao,
		Status:       entity.DemandaCadastrada,
		Ativo:        true,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	if err := uc.demandaRepo.Create(d); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadeDemanda,
		EntidadeID:   d.ID,
		ValorNovo:    d.Codigo,
		Descricao:    "cadastro de demanda " + d.Codigo,
		Resultado:    "SUCESSO",
	})
	return uc.toResponse(d), nil
}

// GetByID devolve a demanda com o valor estimado global derivado da soma dos
// valores totais estimados dos itens.
func (uc *UseCase) GetByID(id string) (*dto.DemandaResponse, error) {
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return uc.toResponse(d), nil
}

// ListByPca lista as demandas ativas de um plano.
func (uc *UseCase) ListByPca(pcaID string, limit, offset int) (*dto.DemandaListResponse, error) {
	demandas, err := uc.demandaRepo.ListByPca(pcaID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.DemandaListResponse{
		Demandas: make([]dto.DemandaResponse, 0, len(demandas)),
		Page:     dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, d := range demandas {
		out.Demandas = append(out.Demandas, *uc.toResponse(d))
	}
	return out, nil
}

// Update altera a descrição da demanda (status só muda via workflow).
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateDemandaRequest) (*dto.DemandaResponse, error) {
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if in.Descricao != nil {
		d.Descricao = *in.Descricao
	}
	d.AtualizadoEm = time.Now()
	if err := uc.demandaRepo.Update(d); err != nil {
		return nil, err
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoAlteracao,
		TipoEntidade: entity.EntidadeDemanda,
		EntidadeID:   d.ID,
		Descricao:    "alteração de demanda " + d.Codigo,
		Resultado:    "SUCESSO",
	})
	return uc.toResponse(d), nil
}

// MudarStatus executa a transição genérica validada pela tabela do workflow.
// CANCELADA exige justificativa (mínimo 10 caracteres) e grava o momento do
// cancelamento.
func (uc *UseCase) MudarStatus(ctx context.Context, userID, id string, in dto.MudarStatusDemandaRequest) (*dto.DemandaResponse, error) {
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if err := workflow.ValidarTransicaoDemanda(d.Status, in.Status); err != nil {
		return nil, err
	}
	if in.Status == entity.DemandaCancelada {
		if len(strings.TrimSpace(in.Justificativa)) < 10 {
			return nil, &domain.ValidacaoError{Campo: "justificativa", Motivo: "obrigatória para cancelamento, mínimo 10 caracteres"}
		}
	}

	anterior := d.Status
	now := time.Now()
	d.Status = in.Status
	d.AtualizadoEm = now
	if in.Status == entity.DemandaCancelada {
		d.JustificativaCancelamento = in.Justificativa
		d.CanceladaEm = &now
	}
	if err := uc.demandaRepo.Update(d); err != nil {
		return nil, err
	}

	uc.registrarTransicao(ctx, userID, d, anterior, in.Status, in.Justificativa)
	return uc.toResponse(d), nil
}

// IniciarContratacao é a transição ESTIMADA → EM_CONTRATACAO, registrando o
// número do processo de contratação, o autor e o momento.
func (uc *UseCase) IniciarContratacao(ctx context.Context, userID, id string, in dto.IniciarContratacaoRequest) (*dto.DemandaResponse, error) {
	if strings.TrimSpace(in.NumeroProcesso) == "" {
		return nil, &domain.ValidacaoError{Campo: "numero_processo", Motivo: "obrigatório"}
	}
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	// Só a partir de ESTIMADA: o retorno SUSPENSA → EM_CONTRATACAO usa a
	// transição genérica, não este comando.
	if d.Status != entity.DemandaEstimada {
		return nil, &domain.TransicaoInvalidaError{Entidade: "Demanda", De: d.Status, Para: entity.DemandaEmContratacao}
	}

	anterior := d.Status
	d.Status = entity.DemandaEmContratacao
	d.NumeroProcesso = in.NumeroProcesso
	d.AtualizadoEm = time.Now()
	if err := uc.demandaRepo.Update(d); err != nil {
		return nil, err
	}

	uc.registrarTransicao(ctx, userID, d, anterior, d.Status, "processo "+in.NumeroProcesso)
	return uc.toResponse(d), nil
}

// FinalizarContrato é a transição EM_CONTRATACAO → CONTRATADA, gravando os
// dados do contrato celebrado.
func (uc *UseCase) FinalizarContrato(ctx context.Context, userID, id string, in dto.FinalizarContratoRequest) (*dto.DemandaResponse, error) {
	if strings.TrimSpace(in.NumeroContrato) == "" {
		return nil, &domain.ValidacaoError{Campo: "numero_contrato", Motivo: "obrigatório"}
	}
	if !in.ValorContratado.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidacaoError{Campo: "valor_contratado", Motivo: "deve ser maior que zero"}
	}
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if d.Status != entity.DemandaEmContratacao {
		return nil, &domain.TransicaoInvalidaError{Entidade: "Demanda", De: d.Status, Para: entity.DemandaContratada}
	}

	anterior := d.Status
	dataContrato := in.DataContrato
	valor := in.ValorContratado
	d.Status = entity.DemandaContratada
	d.NumeroContrato = in.NumeroContrato
	d.DataContrato = &dataContrato
	d.ValorContratado = &valor
	d.FornecedorCNPJ = in.FornecedorCNPJ
	d.FornecedorNome = in.FornecedorNome
	d.AtualizadoEm = time.Now()
	if err := uc.demandaRepo.Update(d); err != nil {
		return nil, err
	}

	uc.registrarTransicao(ctx, userID, d, anterior, d.Status, "contrato "+in.NumeroContrato)
	return uc.toResponse(d), nil
}

// Delete exclui (tombstone) uma demanda. Permitido somente em CADASTRADA:
// demandas que já acumularam trabalho não podem ser removidas.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	d, err := uc.demandaRepo.GetByID(id)
	if err != nil {
		return err
	}
	if d == nil {
		return domain.ErrNaoEncontrado
	}
	if d.Status != entity.DemandaCadastrada {
		return &domain.ConflitoEstadoError{Entidade: "Demanda", Estado: d.Status, Operacao: "exclusão"}
	}
	if err := uc.demandaRepo.SoftDelete(id); err != nil {
		return err
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoExclusao,
		TipoEntidade:  entity.EntidadeDemanda,
		EntidadeID:    id,
		ValorAnterior: d.Codigo,
		Descricao:     "exclusão de demanda " + d.Codigo,
		Resultado:     "SUCESSO",
	})
	return nil
}

// registrarTransicao dispara a notificação (falha apenas logada) e grava o
// registro STATUS_TRANSITION com status anterior e novo.
func (uc *UseCase) registrarTransicao(ctx context.Context, userID string, d *entity.Demanda, de, para, detalhe string) {
	if err := uc.notifier.NotificarMudancaStatus(ctx, d.ID, de, para); err != nil {
		metrics.NotificacoesFalhas.Inc()
		log.Warn().Err(err).Str("demanda_id", d.ID).Msg("notificação de mudança de status falhou")
	}
	desc := fmt.Sprintf("demanda %s: %s → %s", d.Codigo, de, para)
	if detalhe != "" {
		desc += " (" + detalhe + ")"
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoTransicao,
		TipoEntidade:  entity.EntidadeDemanda,
		EntidadeID:    d.ID,
		CampoAlterado: "status",
		ValorAnterior: de,
		ValorNovo:     para,
		Descricao:     desc,
		Resultado:     "SUCESSO",
	})
}

// toResponse deriva o valor estimado global da soma dos itens valorados.
func (uc *UseCase) toResponse(d *entity.Demanda) *dto.DemandaResponse {
	total := decimal.Zero
	if itens, err := uc.itemRepo.ListByDemanda(d.ID); err == nil {
		for _, it := range itens {
			if it.ValorTotalEstimado != nil {
				total = total.Add(*it.ValorTotalEstimado)
			}
		}
	}
	return &dto.DemandaResponse{
		ID:                        d.ID,
		PcaID:                     d.PcaID,
		Codigo:                    d.Codigo,
		Descricao:                 d.Descricao,
		Status:                    d.Status,
		ValorEstimadoGlobal:       total,
		NumeroProcesso:            d.NumeroProcesso,
		NumeroContrato:            d.NumeroContrato,
		DataContrato:              d.DataContrato,
		ValorContratado:           d.ValorContratado,
		FornecedorCNPJ:            d.FornecedorCNPJ,
		FornecedorNome:            d.FornecedorNome,
		JustificativaCancelamento: d.JustificativaCancelamento,
		CanceladaEm:               d.CanceladaEm,
		CriadoEm:                  d.CriadoEm,
	}
}
