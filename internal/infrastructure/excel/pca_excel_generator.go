// Package excel implementa a exportação da planilha consolidada do plano
// anual de contratações (uma linha por item de cada demanda ativa).
package excel

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jmacedo/pca-api/internal/application/relatorio"
)

var _ relatorio.PcaExcelGenerator = (*PcaExcelGenerator)(nil)

// PcaExcelGenerator implementa relatorio.PcaExcelGenerator usando excelize.
type PcaExcelGenerator struct{}

// NewPcaExcelGenerator constrói o gerador.
func NewPcaExcelGenerator() *PcaExcelGenerator { return &PcaExcelGenerator{} }

// GerarPlanilhaPca gera a planilha e devolve seus bytes.
func (g *PcaExcelGenerator) GerarPlanilhaPca(_ context.Context, dados *relatorio.DadosPlanilhaPca) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	titulo := fmt.Sprintf("PCA %s-%d v%d", dados.Pca.NumeroPlano, dados.Pca.Ano, dados.Pca.Versao)
	if err := f.SetSheetName(sheet, trunca(titulo, 31)); err != nil {
		return nil, fmt.Errorf("excel: renomear aba: %w", err)
	}
	sheet = trunca(titulo, 31)

	header := []interface{}{
		"codigo_demanda",
		"status_demanda",
		"descricao_item",
		"unidade_medida",
		"quantidade",
		"valor_unitario_estimado",
		"valor_total_estimado",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("excel: cabeçalho: %w", err)
	}

	row := 2
	for _, l := range dados.Linhas {
		unitario := ""
		if l.Item.ValorUnitarioEstimado != nil {
			unitario = l.Item.ValorUnitarioEstimado.StringFixed(2)
		}
		excelRow := []interface{}{
			l.Demanda.Codigo,
			l.Demanda.Status,
			l.Item.Descricao,
			l.Item.UnidadeMedida,
			l.Item.Quantidade.String(),
			unitario,
			l.ValorEstimado.StringFixed(2),
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: célula da linha %d: %w", row, err)
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return nil, fmt.Errorf("excel: linha %d: %w", row, err)
		}
		row++
	}

	// Rodapé com a data de geração, separado por uma linha em branco.
	rodape := []interface{}{fmt.Sprintf("Gerado em %s", dados.GeradoEm.Format("02/01/2006 15:04"))}
	cell, err := excelize.CoordinatesToCellName(1, row+1)
	if err != nil {
		return nil, fmt.Errorf("excel: célula do rodapé: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &rodape); err != nil {
		return nil, fmt.Errorf("excel: rodapé: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: serializar: %w", err)
	}
	return buf.Bytes(), nil
}

// trunca limita s a max caracteres (nome de aba do Excel aceita até 31).
func trunca(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
