package item

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// UseCase concentra o CRUD de itens de demanda. Os valores estimados são
// derivados pela valoração de preços; aqui só se garante o invariante
// total == unitário × quantidade quando a quantidade muda.
type UseCase struct {
	itemRepo    repository.ItemRepository
	demandaRepo repository.DemandaRepository
	audit       auditoria.Sink
}

// NewUseCase constrói o caso de uso de itens.
func NewUseCase(itemRepo repository.ItemRepository, demandaRepo repository.DemandaRepository, audit auditoria.Sink) *UseCase {
	return &UseCase{itemRepo: itemRepo, demandaRepo: demandaRepo, audit: audit}
}

// Create cadastra um item em uma demanda existente.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if strings.TrimSpace(in.Descricao) == "" {
		return nil, &domain.ValidacaoError{Campo: "descricao", Motivo: "obrigatória"}
	}
	if !in.Quantidade.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidacaoError{Campo: "quantidade", Motivo: "deve ser maior que zero"}
	}
	d, err := uc.demandaRepo.GetByID(in.DemandaID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}

	now := time.Now()
	it := &entity.Item{
		ID:            uuid.New().String(),
		DemandaID:     in.DemandaID,
		Descricao:     in.Descricao,
		UnidadeMedida: in.UnidadeMedida,
		Quantidade:    in.Quantidade,
		Observacoes:   in.Observacoes,
		CriadoEm:      now,
		AtualizadoEm:  now,
	}
	if err := uc.itemRepo.Create(it); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadeItem,
		EntidadeID:   it.ID,
		Descricao:    "cadastro de item na demanda " + d.Codigo,
		Resultado:    "SUCESSO",
	})
	return toResponse(it), nil
}

// GetByID devolve um item.
func (uc *UseCase) GetByID(id string) (*dto.ItemResponse, error) {
	it, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return toResponse(it), nil
}

// ListByDemanda lista os itens de uma demanda.
func (uc *UseCase) ListByDemanda(demandaID string) ([]dto.ItemResponse, error) {
	itens, err := uc.itemRepo.ListByDemanda(demandaID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ItemResponse, 0, len(itens))
	for _, it := range itens {
		out = append(out, *toResponse(it))
	}
	return out, nil
}

// Update altera campos editáveis do item. Quando a quantidade muda e o item
// já tem valor unitário estimado, o total é recalculado para manter o
// invariante total == unitário × quantidade.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	it, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, domain.ErrNaoEncontrado
	}

	quantidadeMudou := false
	if in.Quantidade != nil {
		if !in.Quantidade.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidacaoError{Campo: "quantidade", Motivo: "deve ser maior que zero"}
		}
		quantidadeMudou = !it.Quantidade.Equal(*in.Quantidade)
		it.Quantidade = *in.Quantidade
	}
	if in.Descricao != nil {
		it.Descricao = *in.Descricao
	}
	if in.UnidadeMedida != nil {
		it.UnidadeMedida = *in.UnidadeMedida
	}
	if in.Observacoes != nil {
		it.Observacoes = *in.Observacoes
	}
	it.AtualizadoEm = time.Now()

	if err := uc.itemRepo.Update(it); err != nil {
		return nil, err
	}
	if quantidadeMudou && it.ValorUnitarioEstimado != nil {
		total := it.ValorUnitarioEstimado.Mul(it.Quantidade)
		if err := uc.itemRepo.UpdateValoracao(it.ID, *it.ValorUnitarioEstimado, total); err != nil {
			return nil, err
		}
		it.ValorTotalEstimado = &total
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoAlteracao,
		TipoEntidade: entity.EntidadeItem,
		EntidadeID:   it.ID,
		Descricao:    "alteração de item",
		Resultado:    "SUCESSO",
	})
	return toResponse(it), nil
}

// Delete remove fisicamente um item.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	it, err := uc.itemRepo.GetByID(id)
	if err != nil {
		return err
	}
	if it == nil {
		return domain.ErrNaoEncontrado
	}
	if err := uc.itemRepo.Delete(id); err != nil {
		return err
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoExclusao,
		TipoEntidade: entity.EntidadeItem,
		EntidadeID:   id,
		Descricao:    "exclusão de item da demanda " + it.DemandaID,
		Resultado:    "SUCESSO",
	})
	return nil
}

func toResponse(it *entity.Item) *dto.ItemResponse {
	return &dto.ItemResponse{
		ID:                    it.ID,
		DemandaID:             it.DemandaID,
		Descricao:             it.Descricao,
		UnidadeMedida:         it.UnidadeMedida,
		Quantidade:            it.Quantidade,
		ValorUnitarioEstimado: it.ValorUnitarioEstimado,
		ValorTotalEstimado:    it.ValorTotalEstimado,
		Observacoes:           it.Observacoes,
	}
}
