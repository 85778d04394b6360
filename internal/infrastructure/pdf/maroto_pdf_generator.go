// Package pdf implementa a geração do relatório de estimativa de preços de uma
// demanda (pesquisa de preços para instrução do processo de contratação).
//
// Layout da página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: PCA + versão  │  Código da demanda + data          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DEMANDA: descrição / status / valor estimado global        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  POR ITEM: estatísticas (mediana, faixa, CV)                │
//	│            TABELA: Fonte | Data | Valor | Variação | Class. │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RODAPÉ: modo de filtragem + data de geração                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jmacedo/pca-api/internal/application/relatorio"
	"github.com/jmacedo/pca-api/internal/domain/entity"
	"github.com/jmacedo/pca-api/internal/domain/estatistica"
)

// ── Paleta de cores ───────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 90, Blue: 60}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 170, Green: 40, Blue: 40}
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ relatorio.DemandaPDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa relatorio.DemandaPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator constrói o gerador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GerarRelatorioDemanda gera o PDF e devolve seus bytes.
func (g *MarotoPDFGenerator) GerarRelatorioDemanda(_ context.Context, dados *relatorio.DadosRelatorioDemanda) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Relatório de Estimativa de Preços", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(dados))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(demandaRow(dados.Demanda, valorGlobal(dados)))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	for _, item := range dados.Itens {
		m.AddRows(itemHeaderRow(item))
		if item.Estatistica != nil {
			m.AddRows(estatisticaRow(item.Estatistica))
		}
		m.AddRows(tableHeaderRow())
		for _, r := range tablePrecoRows(item.Precos) {
			m.AddRows(r)
		}
		m.AddRows(line.NewRow(2))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(dados))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: gerar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Seções ────────────────────────────────────────────────────────────────────

// headerRow: PCA e versão (esq), código da demanda e data (dir).
func headerRow(dados *relatorio.DadosRelatorioDemanda) core.Row {
	p := dados.Pca
	return row.New(18).Add(
		col.New(7).Add(
			text.New(fmt.Sprintf("PCA %s / %d", p.NumeroPlano, p.Ano), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Versão %d — %s", p.Versao, p.Situacao), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("RELATÓRIO DE ESTIMATIVA DE PREÇOS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(dados.Demanda.Codigo, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Gerado em: "+dados.GeradoEm.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// demandaRow: descrição, status e valor estimado global da demanda.
func demandaRow(d *entity.Demanda, valorGlobal decimal.Decimal) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("DEMANDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Descricao, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Status: %s   |   Valor estimado global: %s",
				d.Status, formatValor(valorGlobal),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemHeaderRow: identificação do item com quantidade e valor estimado.
func itemHeaderRow(item relatorio.ItemRelatorio) core.Row {
	it := item.Item
	estimado := "sem valoração"
	if it.ValorTotalEstimado != nil {
		estimado = formatValor(*it.ValorTotalEstimado)
	}
	return row.New(10).Add(
		col.New(8).Add(
			text.New(it.Descricao, props.Text{Style: fontstyle.Bold, Size: 9, Top: 2}),
			text.New(fmt.Sprintf("Qtd: %s %s", it.Quantidade.String(), nonEmpty(it.UnidadeMedida, "un")),
				props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
		col.New(4).Add(
			text.New(estimado, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Color: colorPrimary,
			}),
		),
	)
}

// estatisticaRow: mediana, faixa de aceitação e coeficiente de variação.
func estatisticaRow(e *estatistica.Resultado) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Mediana: %s   |   Faixa de aceitação: %s a %s   |   CV: %s%%   |   Amostras: %d",
			formatValor(e.Mediana), formatValor(e.LimiteInferior), formatValor(e.LimiteSuperior),
			e.CoeficienteVariacao.StringFixed(1), e.Quantidade,
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

// tableHeaderRow: cabeçalho da tabela de preços coletados.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fonte", 4, align.Left),
		h("Tipo", 2, align.Left),
		h("Coleta", 2, align.Center),
		h("Valor Unit.", 2, align.Right),
		h("Variação / Class.", 2, align.Right),
	)
}

// tablePrecoRows: uma linha por preço coletado.
func tablePrecoRows(precos []*entity.Preco) []core.Row {
	result := make([]core.Row, 0, len(precos))
	for _, p := range precos {
		variacao := "—"
		if p.PercentualVariacao != nil {
			variacao = p.PercentualVariacao.StringFixed(2) + "%"
		}
		classColor := colorGray
		if p.Classificacao != entity.ClassificacaoAceito && p.Classificacao != "" {
			classColor = colorAlert
		}
		result = append(result, row.New(7).Add(
			col.New(4).Add(text.New(p.Fonte, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(p.TipoFonte, props.Text{Size: 7, Align: align.Left, Top: 1})),
			col.New(2).Add(text.New(p.DataColeta.Format("02/01/2006"), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatValor(p.ValorUnitario), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(variacao+" "+p.Classificacao, props.Text{
				Size: 7, Align: align.Right, Top: 1, Right: 1, Color: classColor,
			})),
		))
	}
	return result
}

// footerRow: modo de filtragem aplicado na apresentação.
func footerRow(dados *relatorio.DadosRelatorioDemanda) core.Row {
	modo := "Todos os preços ativos coletados."
	if dados.ApenasFaixa {
		modo = "Apresentação restrita à faixa de aceitação (mediana ±25%); os dados persistidos não foram alterados."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(modo, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// valorGlobal soma os valores totais estimados dos itens valorados.
func valorGlobal(dados *relatorio.DadosRelatorioDemanda) decimal.Decimal {
	total := decimal.Zero
	for _, item := range dados.Itens {
		if item.Item.ValorTotalEstimado != nil {
			total = total.Add(*item.Item.ValorTotalEstimado)
		}
	}
	return total
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatValor formata um decimal como moeda pt-BR. Ex: 1234.5 → "R$ 1.234,50".
func formatValor(d decimal.Decimal) string {
	f, _ := d.Float64()
	return ptBR.Sprintf("R$ %.2f", f)
}
