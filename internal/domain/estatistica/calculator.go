// Package estatistica implementa o motor de estatística de preços (serviço de
// domínio puro): mediana, média, desvio padrão populacional, coeficiente de
// variação e a classificação de cada preço na faixa de aceitação
// [mediana×0,75, mediana×1,25]. Sem efeitos colaterais; determinístico e
// independente da ordem de entrada (ordena internamente antes da mediana).
package estatistica

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// Limites da faixa de aceitação em torno da mediana.
var (
	fatorInferior = decimal.NewFromFloat(0.75)
	fatorSuperior = decimal.NewFromFloat(1.25)
	cem           = decimal.NewFromInt(100)
)

// Resultado agrega as estatísticas calculadas sobre os preços ativos de um item.
// Média e desvio são calculados sobre todos os preços ativos, não só os aceitos;
// o filtro "apenas mediana ±25%" é uma re-agregação de apresentação (relatórios).
type Resultado struct {
	Quantidade          int
	Media               decimal.Decimal
	Mediana             decimal.Decimal
	DesvioPadrao        decimal.Decimal
	CoeficienteVariacao decimal.Decimal // desvio/média × 100; 0 se média for 0
	LimiteInferior      decimal.Decimal // mediana × 0,75 (inclusivo)
	LimiteSuperior      decimal.Decimal // mediana × 1,25 (inclusivo)
}

// Classificacao de um valor unitário em relação à faixa de aceitação.
type Classificacao struct {
	Classificacao      string // ACCEPTED | ABOVE_LIMIT | BELOW_LIMIT
	PercentualVariacao decimal.Decimal // (valor − mediana) / mediana × 100
}

const (
	classAceito       = "ACCEPTED"
	classAcimaLimite  = "ABOVE_LIMIT"
	classAbaixoLimite = "BELOW_LIMIT"
)

// Calcular computa as estatísticas sobre os valores unitários informados.
// Devolve nil para conjunto vazio: sem preços não há valoração.
func Calcular(valores []decimal.Decimal) *Resultado {
	n := len(valores)
	if n == 0 {
		return nil
	}

	ordenados := make([]decimal.Decimal, n)
	copy(ordenados, valores)
	sort.Slice(ordenados, func(i, j int) bool { return ordenados[i].LessThan(ordenados[j]) })

	mediana := medianaDe(ordenados)

	soma := decimal.Zero
	for _, v := range ordenados {
		soma = soma.Add(v)
	}
	media := soma.Div(decimal.NewFromInt(int64(n)))

	// Desvio padrão populacional (divide por N, não N−1).
	somaQuad := decimal.Zero
	for _, v := range ordenados {
		d := v.Sub(media)
		somaQuad = somaQuad.Add(d.Mul(d))
	}
	variancia := somaQuad.Div(decimal.NewFromInt(int64(n)))
	vf, _ := variancia.Float64()
	desvio := decimal.NewFromFloat(math.Sqrt(vf))

	cv := decimal.Zero
	if !media.IsZero() {
		cv = desvio.Div(media).Mul(cem)
	}

	return &Resultado{
		Quantidade:          n,
		Media:               media,
		Mediana:             mediana,
		DesvioPadrao:        desvio,
		CoeficienteVariacao: cv,
		LimiteInferior:      mediana.Mul(fatorInferior),
		LimiteSuperior:      mediana.Mul(fatorSuperior),
	}
}

// Classificar posiciona um valor unitário na faixa de aceitação do resultado.
// A faixa é inclusiva nas duas pontas.
func (r *Resultado) Classificar(valor decimal.Decimal) Classificacao {
	variacao := decimal.Zero
	if !r.Mediana.IsZero() {
		variacao = valor.Sub(r.Mediana).Div(r.Mediana).Mul(cem)
	}
	switch {
	case valor.GreaterThan(r.LimiteSuperior):
		return Classificacao{Classificacao: classAcimaLimite, PercentualVariacao: variacao}
	case valor.LessThan(r.LimiteInferior):
		return Classificacao{Classificacao: classAbaixoLimite, PercentualVariacao: variacao}
	default:
		return Classificacao{Classificacao: classAceito, PercentualVariacao: variacao}
	}
}

// DentroDaFaixa informa se o valor está na faixa [mediana×0,75, mediana×1,25].
// Usado pelo modo de filtro "apenas mediana ±25%" dos relatórios.
func (r *Resultado) DentroDaFaixa(valor decimal.Decimal) bool {
	return !valor.LessThan(r.LimiteInferior) && !valor.GreaterThan(r.LimiteSuperior)
}

// medianaDe assume a fatia já ordenada ascendentemente.
// Quantidade par: média dos dois valores centrais; ímpar: valor central.
func medianaDe(ordenados []decimal.Decimal) decimal.Decimal {
	n := len(ordenados)
	meio := n / 2
	if n%2 == 1 {
		return ordenados[meio]
	}
	return ordenados[meio-1].Add(ordenados[meio]).Div(decimal.NewFromInt(2))
}
