package relatorio

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/estatistica"
)

// ItemRelatorio um item da demanda com seus preços e estatísticas para o relatório.
type ItemRelatorio struct {
	Item        *entity.Item
	Precos      []*entity.Preco
	Estatistica *estatistica.Resultado // nil quando o item não tem preços
}

// DadosRelatorioDemanda insumo do PDF de demanda.
type DadosRelatorioDemanda struct {
	Pca     *entity.Pca
	Demanda *entity.Demanda
	Itens   []ItemRelatorio
	// ApenasFaixa indica que o relatório foi gerado no modo "apenas mediana ±25%"
	// (parâmetro de apresentação, nunca persistido).
	ApenasFaixa bool
	GeradoEm    time.Time
}

// LinhaPlanilhaPca uma linha da planilha do plano.
type LinhaPlanilhaPca struct {
	Demanda       *entity.Demanda
	Item          *entity.Item
	ValorEstimado decimal.Decimal
}

// DadosPlanilhaPca insumo da planilha Excel do plano.
type DadosPlanilhaPca struct {
	Pca      *entity.Pca
	Linhas   []LinhaPlanilhaPca
	GeradoEm time.Time
}

// DemandaPDFGenerator renderiza o relatório de estimativa de preços da demanda.
type DemandaPDFGenerator interface {
	GerarRelatorioDemanda(ctx context.Context, dados *DadosRelatorioDemanda) ([]byte, error)
}

// PcaExcelGenerator renderiza a planilha consolidada do plano.
type PcaExcelGenerator interface {
	GerarPlanilhaPca(ctx context.Context, dados *DadosPlanilhaPca) ([]byte, error)
}
