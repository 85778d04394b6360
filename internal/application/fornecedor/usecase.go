package fornecedor

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// UseCase concentra o CRUD de fornecedores (CNPJ único, exclusão lógica).
type UseCase struct {
	repo  repository.FornecedorRepository
	audit auditoria.Sink
}

// NewUseCase constrói o caso de uso de fornecedores.
func NewUseCase(repo repository.FornecedorRepository, audit auditoria.Sink) *UseCase {
	return &UseCase{repo: repo, audit: audit}
}

// Create cadastra um fornecedor. CNPJ é normalizado para apenas dígitos.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateFornecedorRequest) (*dto.FornecedorResponse, error) {
	if strings.TrimSpace(in.RazaoSocial) == "" {
		return nil, &domain.ValidacaoError{Campo: "razao_social", Motivo: "obrigatória"}
	}
	cnpj := somenteDigitos(in.CNPJ)
	if len(cnpj) != 14 {
		return nil, &domain.ValidacaoError{Campo: "cnpj", Motivo: "deve ter 14 dígitos"}
	}

	now := time.Now()
	f := &entity.Fornecedor{
		ID:           uuid.New().String(),
		RazaoSocial:  in.RazaoSocial,
		NomeFantasia: in.NomeFantasia,
		CNPJ:         cnpj,
		Ativo:        true,
		CriadoEm:     now,
		AtualizadoEm: now,
	}
	if err := uc.repo.Create(f); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadeFornecedor,
		EntidadeID:   f.ID,
		ValorNovo:    f.CNPJ,
		Descricao:    "cadastro de fornecedor " + f.RazaoSocial,
		Resultado:    "SUCESSO",
	})
	return toResponse(f), nil
}

// GetByID devolve um fornecedor.
func (uc *UseCase) GetByID(id string) (*dto.FornecedorResponse, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNaoEncontrado
	}
	return toResponse(f), nil
}

// List lista fornecedores ativos com paginação.
func (uc *UseCase) List(limit, offset int) (*dto.FornecedorListResponse, error) {
	fornecedores, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.FornecedorListResponse{
		Fornecedores: make([]dto.FornecedorResponse, 0, len(fornecedores)),
		Page:         dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, f := range fornecedores {
		out.Fornecedores = append(out.Fornecedores, *toResponse(f))
	}
	return out, nil
}

// Update altera razão social e nome fantasia (CNPJ é imutável).
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdateFornecedorRequest) (*dto.FornecedorResponse, error) {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNaoEncontrado
	}
	if in.RazaoSocial != nil {
		f.RazaoSocial = *in.RazaoSocial
	}
	if in.NomeFantasia != nil {
		f.NomeFantasia = *in.NomeFantasia
	}
	f.AtualizadoEm = time.Now()
	if err := uc.repo.Update(f); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoAlteracao,
		TipoEntidade: entity.EntidadeFornecedor,
		EntidadeID:   f.ID,
		Descricao:    "alteração de fornecedor " + f.RazaoSocial,
		Resultado:    "SUCESSO",
	})
	return toResponse(f), nil
}

// Delete marca o fornecedor como inativo (as cotações existentes permanecem).
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	f, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if f == nil {
		return domain.ErrNaoEncontrado
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoExclusao,
		TipoEntidade:  entity.EntidadeFornecedor,
		EntidadeID:    id,
		ValorAnterior: f.CNPJ,
		Descricao:     "inativação de fornecedor " + f.RazaoSocial,
		Resultado:     "SUCESSO",
	})
	return nil
}

func toResponse(f *entity.Fornecedor) *dto.FornecedorResponse {
	return &dto.FornecedorResponse{
		ID:           f.ID,
		RazaoSocial:  f.RazaoSocial,
		NomeFantasia: f.NomeFantasia,
		CNPJ:         f.CNPJ,
		Ativo:        f.Ativo,
	}
}

func somenteDigitos(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
