package preco

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/dto"
	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/estatistica"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// avisoRevaloracao é a mensagem devolvida ao chamador quando o recálculo da
// valoração falha após a mutação do preço já ter sido persistida.
const avisoRevaloracao = "preço gravado, mas o recálculo da valoração do item falhou; valores estimados podem estar desatualizados"

// UseCase concentra as operações de preço coletado: cadastro individual e em
// lote, alteração com whitelist de campos e exclusão. Toda mutação dispara o
// recálculo de valoração do item afetado e gera registro de auditoria.
type UseCase struct {
	precoRepo      repository.PrecoRepository
	itemRepo       repository.ItemRepository
	fornecedorRepo repository.FornecedorRepository
	txRunner       TxRunner
	valorador      *Valorador
	audit          auditoria.Sink
}

// NewUseCase constrói o caso de uso de preços.
func NewUseCase(
	precoRepo repository.PrecoRepository,
	itemRepo repository.ItemRepository,
	fornecedorRepo repository.FornecedorRepository,
	txRunner TxRunner,
	valorador *Valorador,
	audit auditoria.Sink,
) *UseCase {
	return &UseCase{
		precoRepo:      precoRepo,
		itemRepo:       itemRepo,
		fornecedorRepo: fornecedorRepo,
		txRunner:       txRunner,
		valorador:      valorador,
		audit:          audit,
	}
}

// Create cadastra um preço coletado para um item. Valor unitário deve ser
// positivo; se FornecedorID for informado, fonte e CNPJ são auto-preenchidos
// a partir do cadastro do fornecedor.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreatePrecoRequest) (*dto.PrecoResponse, error) {
	if !in.ValorUnitario.GreaterThan(decimal.Zero) {
		return nil, &domain.ValidacaoError{Campo: "valor_unitario", Motivo: "deve ser maior que zero"}
	}
	if !entity.TiposFonteValidos[in.TipoFonte] {
		return nil, &domain.ValidacaoError{Campo: "tipo_fonte", Motivo: "tipo de fonte desconhecido: " + in.TipoFonte}
	}
	item, err := uc.itemRepo.GetByID(in.ItemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNaoEncontrado
	}

	now := time.Now()
	p := &entity.Preco{
		ID:            uuid.New().String(),
		ItemID:        in.ItemID,
		ValorUnitario: in.ValorUnitario,
		Fonte:         in.Fonte,
		TipoFonte:     in.TipoFonte,
		Link:          in.Link,
		DataColeta:    in.DataColeta,
		Ativo:         true,
		CriadoEm:      now,
		AtualizadoEm:  now,
		CriadoPor:     userID,
	}

	if in.FornecedorID != "" {
		f, err := uc.fornecedorRepo.GetByID(in.FornecedorID)
		if err != nil {
			return nil, err
		}
		if f == nil {
			return nil, domain.ErrNaoEncontrado
		}
		p.FornecedorID = &f.ID
		p.FornecedorCNPJ = f.CNPJ
		if p.Fonte == "" {
			p.Fonte = f.RazaoSocial
		}
	}

	if err := uc.precoRepo.Create(p); err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadePreco,
		EntidadeID:   p.ID,
		ValorNovo:    p.ValorUnitario.String(),
		Descricao:    fmt.Sprintf("preço coletado para item %s (%s)", p.ItemID, p.TipoFonte),
		Resultado:    "SUCESSO",
	})

	out := precoToResponse(p)

	// Recalcular é efeito secundário best-effort: falha não desfaz a mutação,
	// mas é sinalizada ao chamador como aviso, nunca engolida em silêncio.
	res, err := uc.valorador.Revalorar(p.ItemID)
	if err != nil {
		log.Warn().Err(err).Str("item_id", p.ItemID).Msg("recálculo de valoração falhou após criar preço")
		out.Warning = avisoRevaloracao
		return out, nil
	}
	if res != nil {
		c := res.Classificar(p.ValorUnitario)
		out.Classificacao = c.Classificacao
		out.PercentualVariacao = &c.PercentualVariacao
	}
	return out, nil
}

// CreateLote cadastra uma cotação de fornecedor em lote: um preço por item,
// dentro de uma única transação. Entradas com valor ≤ 0 são puladas em
// silêncio (tolerância herdada do fluxo de digitação de cotações). Gera um
// único registro agregado de auditoria e dispara exatamente um recálculo por
// item distinto afetado, após o commit.
func (uc *UseCase) CreateLote(ctx context.Context, userID string, in dto.CreatePrecoLoteRequest) (*dto.PrecoLoteResponse, error) {
	if !entity.TiposFonteValidos[in.TipoFonte] {
		return nil, &domain.ValidacaoError{Campo: "tipo_fonte", Motivo: "tipo de fonte desconhecido: " + in.TipoFonte}
	}
	f, err := uc.fornecedorRepo.GetByID(in.FornecedorID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, domain.ErrNaoEncontrado
	}

	now := time.Now()
	out := &dto.PrecoLoteResponse{}
	itensAfetados := make([]string, 0, len(in.Itens))
	vistos := make(map[string]bool, len(in.Itens))

	err = uc.txRunner.Run(ctx, func(precoRepo repository.PrecoRepository, itemRepo repository.ItemRepository) error {
		for _, entrada := range in.Itens {
			if !entrada.ValorUnitario.GreaterThan(decimal.Zero) {
				out.Pulados++
				continue
			}
			item, err := itemRepo.GetByID(entrada.ItemID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrNaoEncontrado
			}
			p := &entity.Preco{
				ID:             uuid.New().String(),
				ItemID:         entrada.ItemID,
				ValorUnitario:  entrada.ValorUnitario,
				Fonte:          f.RazaoSocial,
				TipoFonte:      in.TipoFonte,
				FornecedorID:   &f.ID,
				FornecedorCNPJ: f.CNPJ,
				DataColeta:     in.DataColeta,
				Ativo:          true,
				CriadoEm:       now,
				AtualizadoEm:   now,
				CriadoPor:      userID,
			}
			if err := precoRepo.Create(p); err != nil {
				return err
			}
			out.IDs = append(out.IDs, p.ID)
			out.Criados++
			if !vistos[entrada.ItemID] {
				vistos[entrada.ItemID] = true
				itensAfetados = append(itensAfetados, entrada.ItemID)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoCriacao,
		TipoEntidade: entity.EntidadePreco,
		EntidadeID:   in.FornecedorID,
		Descricao:    fmt.Sprintf("cotação em lote do fornecedor %s: %d preços criados, %d pulados", f.RazaoSocial, out.Criados, out.Pulados),
		Resultado:    "SUCESSO",
	})

	// Um recálculo por item distinto, após o commit do lote.
	for _, itemID := range itensAfetados {
		if _, err := uc.valorador.Revalorar(itemID); err != nil {
			log.Warn().Err(err).Str("item_id", itemID).Msg("recálculo de valoração falhou após lote")
			out.Warnings = append(out.Warnings, fmt.Sprintf("item %s: %s", itemID, avisoRevaloracao))
		}
	}
	return out, nil
}

// Update altera campos permitidos de um preço (valor, fonte, tipo de fonte,
// link, data de coleta, CNPJ) e recalcula a valoração do item.
func (uc *UseCase) Update(ctx context.Context, userID, id string, in dto.UpdatePrecoRequest) (*dto.PrecoResponse, error) {
	p, err := uc.precoRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNaoEncontrado
	}

	valorAnterior := p.ValorUnitario
	campo := ""
	if in.ValorUnitario != nil {
		if !in.ValorUnitario.GreaterThan(decimal.Zero) {
			return nil, &domain.ValidacaoError{Campo: "valor_unitario", Motivo: "deve ser maior que zero"}
		}
		p.ValorUnitario = *in.ValorUnitario
		campo = "valor_unitario"
	}
	if in.Fonte != nil {
		p.Fonte = *in.Fonte
	}
	if in.TipoFonte != nil {
		if !entity.TiposFonteValidos[*in.TipoFonte] {
			return nil, &domain.ValidacaoError{Campo: "tipo_fonte", Motivo: "tipo de fonte desconhecido: " + *in.TipoFonte}
		}
		p.TipoFonte = *in.TipoFonte
	}
	if in.Link != nil {
		p.Link = *in.Link
	}
	if in.DataColeta != nil {
		p.DataColeta = *in.DataColeta
	}
	if in.FornecedorCNPJ != nil {
		p.FornecedorCNPJ = *in.FornecedorCNPJ
	}
	p.AtualizadoEm = time.Now()

	if err := uc.precoRepo.Update(p); err != nil {
		return nil, err
	}

	reg := &entity.Auditoria{
		UsuarioID:    userID,
		Acao:         entity.AcaoAlteracao,
		TipoEntidade: entity.EntidadePreco,
		EntidadeID:   p.ID,
		Descricao:    "alteração de preço coletado",
		Resultado:    "SUCESSO",
	}
	if campo != "" {
		reg.CampoAlterado = campo
		reg.ValorAnterior = valorAnterior.String()
		reg.ValorNovo = p.ValorUnitario.String()
	}
	uc.audit.Registrar(ctx, reg)

	out := precoToResponse(p)
	res, err := uc.valorador.Revalorar(p.ItemID)
	if err != nil {
		log.Warn().Err(err).Str("item_id", p.ItemID).Msg("recálculo de valoração falhou após alterar preço")
		out.Warning = avisoRevaloracao
		return out, nil
	}
	if res != nil {
		c := res.Classificar(p.ValorUnitario)
		out.Classificacao = c.Classificacao
		out.PercentualVariacao = &c.PercentualVariacao
	}
	return out, nil
}

// Delete remove fisicamente um preço e recalcula a valoração do item dono.
func (uc *UseCase) Delete(ctx context.Context, userID, id string) (warning string, err error) {
	p, err := uc.precoRepo.GetByID(id)
	if err != nil {
		return "", err
	}
	if p == nil {
		return "", domain.ErrNaoEncontrado
	}
	if err := uc.precoRepo.Delete(id); err != nil {
		return "", err
	}

	uc.audit.Registrar(ctx, &entity.Auditoria{
		UsuarioID:     userID,
		Acao:          entity.AcaoExclusao,
		TipoEntidade:  entity.EntidadePreco,
		EntidadeID:    id,
		ValorAnterior: p.ValorUnitario.String(),
		Descricao:     fmt.Sprintf("exclusão de preço do item %s", p.ItemID),
		Resultado:     "SUCESSO",
	})

	if _, err := uc.valorador.Revalorar(p.ItemID); err != nil {
		log.Warn().Err(err).Str("item_id", p.ItemID).Msg("recálculo de valoração falhou após excluir preço")
		return avisoRevaloracao, nil
	}
	return "", nil
}

// ListByItem devolve os preços ativos de um item.
func (uc *UseCase) ListByItem(itemID string) ([]dto.PrecoResponse, error) {
	precos, err := uc.precoRepo.ListAtivosByItem(itemID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PrecoResponse, 0, len(precos))
	for _, p := range precos {
		out = append(out, *precoToResponse(p))
	}
	return out, nil
}

// Estatisticas calcula as estatísticas dos preços ativos de um item sob demanda
// (mesmo motor usado pela valoração). Devolve nil quando não há preços.
func (uc *UseCase) Estatisticas(itemID string) (*dto.EstatisticaResponse, error) {
	precos, err := uc.precoRepo.ListAtivosByItem(itemID)
	if err != nil {
		return nil, err
	}
	valores := make([]decimal.Decimal, 0, len(precos))
	for _, p := range precos {
		valores = append(valores, p.ValorUnitario)
	}
	res := estatistica.Calcular(valores)
	if res == nil {
		return nil, nil
	}
	return &dto.EstatisticaResponse{
		Quantidade:          res.Quantidade,
		Media:               res.Media,
		Mediana:             res.Mediana,
		DesvioPadrao:        res.DesvioPadrao,
		CoeficienteVariacao: res.CoeficienteVariacao,
		LimiteInferior:      res.LimiteInferior,
		LimiteSuperior:      res.LimiteSuperior,
	}, nil
}

func precoToResponse(p *entity.Preco) *dto.PrecoResponse {
	out := &dto.PrecoResponse{
		ID:                 p.ID,
		ItemID:             p.ItemID,
		ValorUnitario:      p.ValorUnitario,
		Fonte:              p.Fonte,
		TipoFonte:          p.TipoFonte,
		Link:               p.Link,
		FornecedorCNPJ:     p.FornecedorCNPJ,
		DataColeta:         p.DataColeta,
		Classificacao:      p.Classificacao,
		PercentualVariacao: p.PercentualVariacao,
	}
	if p.FornecedorID != nil {
		out.FornecedorID = *p.FornecedorID
	}
	return out
}
