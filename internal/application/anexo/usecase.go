package anexo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// tiposAnexaveis: anexos são aceitos em demandas, itens e preços.
var tiposAnexaveis = map[string]bool{
	entity.EntidadeDemanda: true,
	entity.EntidadeItem:    true,
	entity.EntidadePreco:   true,
}

// UseCase associa arquivos a entidades: metadados no banco, conteúdo no blob store.
type UseCase struct {
	repo  repository.AnexoRepository
	blobs BlobStore
	audit auditoria.Sink
}

// NewUseCase constrói o caso de uso de anexos.
func NewUseCase(repo repository.AnexoRepository, blobs BlobStore, audit auditoria.Sink) *UseCase {
	return &UseCase{repo: repo, blobs: blobs, audit: audit}
}

// Upload grava o conteúdo no blob store e os metadados no banco.
func (uc *UseCase) Upload(ctx context.Context, userID, tipoEntidade, entidadeID, nomeArquivo, contentType string, conteudo []byte) (*dto.AnexoResponse, error) {
	if !tiposAnexaveis[tipoEntidade] {
		return nil, &domain.ValidacaoError{Campo: "tipo_entidade", Motivo: "tipo não anexável: " + tipoEntidade}
	}
	if nomeArquivo == "" || len(conteudo) == 0 {
		return nil, &domain.ValidacaoError{Campo: "arquivo", Motivo: "arquivo vazio"}
	}

	chave, err := uc.blobs.Save(ctx, tipoEntidade, entidadeID, nomeArquivo, conteudo)
	if err != nil {
		return nil, err
	}

	a := &entity.Anexo{
		ID:           uuid.New().String(),
		TipoEntidade: tipoEntidade,
		EntidadeID:   entidadeID,
		NomeArquivo:  nomeArquivo,
		ContentType:  contentType,
		Tamanho:      int64(len(conteudo)),
		Caminho:      chave,
		Ativo:        true,
		CriadoEm:     time.Now(),
		CriadoPor:    userID,
	}
	if err := uc.repo.Create(a); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: tipoEntidade,
		EntidadeID:   entidadeID,
		ValorNovo:    nomeArquivo,
		Descricao:    "anexo enviado: " + nomeArquivo,
		Resultado:    "SUCESSO",
	})
	return toResponse(a), nil
}

// Download devolve metadados e conteúdo de um anexo ativo.
func (uc *UseCase) Download(ctx context.Context, id string) (*dto.AnexoResponse, []byte, error) {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, nil, err
	}
	if a == nil || !a.Ativo {
		return nil, nil, domain.ErrNaoEncontrado
	}
	conteudo, err := uc.blobs.Load(ctx, a.Caminho)
	if err != nil {
		return nil, nil, err
	}
	return toResponse(a), conteudo, nil
}

// ListByEntidade lista os anexos ativos de uma entidade.
func (uc *UseCase) ListByEntidade(tipoEntidade, entidadeID string) ([]dto.AnexoResponse, error) {
	anexos, err := uc.repo.ListByEntidade(tipoEntidade, entidadeID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AnexoResponse, 0, len(anexos))
	for _, a := range anexos {
		out = append(out, *toResponse(a))
	}
	return out, nil
}

// Delete marca o anexo como inativo (o blob permanece no store).
func (uc *UseCase) Delete(ctx context.Context, userID, id string) error {
	a, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNaoEncontrado
	}
	if err := uc.repo.SoftDelete(id); err != nil {
		return err
	}
	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoExclusao,
		TipoEntidade:  a.TipoEntidade,
		EntidadeID:    a.EntidadeID,
		ValorAnterior: a.NomeArquivo,
		Descricao:     "anexo removido: " + a.NomeArquivo,
		Resultado:     "SUCESSO",
	})
	return nil
}

func toResponse(a *entity.Anexo) *dto.AnexoResponse {
	return &dto.AnexoResponse{
		ID:           a.ID,
		TipoEntidade: a.TipoEntidade,
		EntidadeID:   a.EntidadeID,
		NomeArquivo:  a.NomeArquivo,
		ContentType:  a.ContentType,
		Tamanho:      a.Tamanho,
		CriadoEm:     a.CriadoEm,
	}
}
