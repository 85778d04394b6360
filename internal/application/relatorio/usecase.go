package relatorio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/estatistica"
	"github.com/jmacedo/pca-api/internal/domain/repository"
)

// UseCase monta os insumos dos relatórios a partir dos repositórios e delega a
// renderização aos geradores (PDF via Maroto, planilha via Excelize).
type UseCase struct {
	pcaRepo     repository.PcaRepository
	demandaRepo repository.DemandaRepository
	itemRepo    repository.ItemRepository
	precoRepo   repository.PrecoRepository
	pdf         DemandaPDFGenerator
	excel       PcaExcelGenerator
}

// NewUseCase constrói o caso de uso de relatórios.
func NewUseCase(
	pcaRepo repository.PcaRepository,
	demandaRepo repository.DemandaRepository,
	itemRepo repository.ItemRepository,
	precoRepo repository.PrecoRepository,
	pdf DemandaPDFGenerator,
	excel PcaExcelGenerator,
) *UseCase {
	return &UseCase{
		pcaRepo:     pcaRepo,
		demandaRepo: demandaRepo,
		itemRepo:    itemRepo,
		precoRepo:   precoRepo,
		pdf:         pdf,
		excel:       excel,
	}
}

// RelatorioDemandaPDF gera o PDF de estimativa de preços de uma demanda.
// Com apenasFaixa, os preços fora de [mediana×0,75, mediana×1,25] saem da
// tabela e as estatísticas são re-agregadas sobre os remanescentes — a faixa
// em si vem sempre da mediana do conjunto completo. Re-agregação de
// apresentação: nada é persistido.
func (uc *UseCase) RelatorioDemandaPDF(ctx context.Context, demandaID string, apenasFaixa bool) ([]byte, error) {
	d, err := uc.demandaRepo.GetByID(demandaID)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNaoEncontrado
	}
	pca, err := uc.pcaRepo.GetByID(d.PcaID)
	if err != nil {
		return nil, err
	}

	itens, err := uc.itemRepo.ListByDemanda(demandaID)
	if err != nil {
		return nil, err
	}

	dados := &DadosRelatorioDemanda{
		Pca:         pca,
		Demanda:     d,
		Itens:       make([]ItemRelatorio, 0, len(itens)),
		ApenasFaixa: apenasFaixa,
		GeradoEm:    time.Now(),
	}
	for _, it := range itens {
		precos, err := uc.precoRepo.ListAtivosByItem(it.ID)
		if err != nil {
			return nil, err
		}
		linha := ItemRelatorio{Item: it, Precos: precos}
		if res := calcular(precos); res != nil {
			if apenasFaixa {
				dentro := make([]*entity.Preco, 0, len(precos))
				for _, p := range precos {
					if res.DentroDaFaixa(p.ValorUnitario) {
						dentro = append(dentro, p)
					}
				}
				linha.Precos = dentro
				linha.Estatistica = calcular(dentro)
			} else {
				linha.Estatistica = res
			}
		}
		dados.Itens = append(dados.Itens, linha)
	}

	return uc.pdf.GerarRelatorioDemanda(ctx, dados)
}

// PlanilhaPcaExcel gera a planilha consolidada do plano: uma linha por item
// de cada demanda ativa, com os valores estimados correntes.
func (uc *UseCase) PlanilhaPcaExcel(ctx context.Context, pcaID string) ([]byte, error) {
	pca, err := uc.pcaRepo.GetByID(pcaID)
	if err != nil {
		return nil, err
	}
	if pca == nil {
		return nil, domain.ErrNaoEncontrado
	}

	demandas, err := uc.demandaRepo.ListByPca(pcaID, 0, 0)
	if err != nil {
		return nil, err
	}

	dados := &DadosPlanilhaPca{Pca: pca, GeradoEm: time.Now()}
	for _, d := range demandas {
		itens, err := uc.itemRepo.ListByDemanda(d.ID)
		if err != nil {
			return nil, err
		}
		for _, it := range itens {
			valor := decimal.Zero
			if it.ValorTotalEstimado != nil {
				valor = *it.ValorTotalEstimado
			}
			dados.Linhas = append(dados.Linhas, LinhaPlanilhaPca{Demanda: d, Item: it, ValorEstimado: valor})
		}
	}

	return uc.excel.GerarPlanilhaPca(ctx, dados)
}

func calcular(precos []*entity.Preco) *estatistica.Resultado {
	valores := make([]decimal.Decimal, 0, len(precos))
	for _, p := range precos {
		valores = append(valores, p.ValorUnitario)
	}
	return estatistica.Calcular(valores)
}
