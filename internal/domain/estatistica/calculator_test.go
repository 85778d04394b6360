package estatistica_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmacedo/pca-api/internal/domain/estatistica"
)

func dec(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func valores(vs ...float64) []decimal.Decimal {
	out := make([]decimal.Decimal, 0, len(vs))
	for _, v := range vs {
		out = append(out, decimal.NewFromFloat(v))
	}
	return out
}

func TestCalcular_ConjuntoVazio(t *testing.T) {
	assert.Nil(t, estatistica.Calcular(nil), "sem preços não há valoração")
	assert.Nil(t, estatistica.Calcular([]decimal.Decimal{}))
}

// Cenário do plano: cotações 5000, 6000 e 5500 → mediana 5500, faixa [4125, 6875],
// todas aceitas; variação de 5000 ≈ −9,09%.
func TestCalcular_CenarioTresCotacoes(t *testing.T) {
	r := estatistica.Calcular(valores(5000, 6000, 5500))
	require.NotNil(t, r)

	assert.Equal(t, 3, r.Quantidade)
	assert.True(t, r.Mediana.Equal(dec(5500)), "mediana esperada 5500, obtida %s", r.Mediana)
	assert.True(t, r.LimiteInferior.Equal(dec(4125)))
	assert.True(t, r.LimiteSuperior.Equal(dec(6875)))

	for _, v := range []float64{5000, 6000, 5500} {
		c := r.Classificar(dec(v))
		assert.Equal(t, "ACCEPTED", c.Classificacao, "valor %v deve estar na faixa", v)
	}

	c := r.Classificar(dec(5000))
	esperado := dec(5000).Sub(dec(5500)).Div(dec(5500)).Mul(decimal.NewFromInt(100))
	assert.True(t, c.PercentualVariacao.Equal(esperado),
		"variação de 5000 deve ser (5000−5500)/5500×100 ≈ −9,09%%, obtida %s", c.PercentualVariacao)
}

// Mediana degenerada de um único elemento: o próprio valor.
func TestCalcular_UmaCotacao(t *testing.T) {
	r := estatistica.Calcular(valores(1234.56))
	require.NotNil(t, r)
	assert.True(t, r.Mediana.Equal(dec(1234.56)))
	assert.True(t, r.Media.Equal(dec(1234.56)))
	assert.True(t, r.DesvioPadrao.IsZero())
	assert.True(t, r.CoeficienteVariacao.IsZero())
}

// Quantidade par: mediana é a média dos dois valores centrais após ordenação.
func TestCalcular_QuantidadePar(t *testing.T) {
	r := estatistica.Calcular(valores(10, 40, 20, 30))
	require.NotNil(t, r)
	assert.True(t, r.Mediana.Equal(dec(25)), "mediana de {10,20,30,40} é 25, obtida %s", r.Mediana)
}

// O cálculo deve ser independente da ordem de entrada.
func TestCalcular_IndependenteDaOrdem(t *testing.T) {
	a := estatistica.Calcular(valores(5000, 6000, 5500, 4800))
	b := estatistica.Calcular(valores(6000, 4800, 5500, 5000))
	c := estatistica.Calcular(valores(5500, 5000, 4800, 6000))
	require.NotNil(t, a)
	require.NotNil(t, b)
	require.NotNil(t, c)

	for _, outro := range []*estatistica.Resultado{b, c} {
		assert.True(t, a.Media.Equal(outro.Media))
		assert.True(t, a.Mediana.Equal(outro.Mediana))
		assert.True(t, a.DesvioPadrao.Equal(outro.DesvioPadrao))
		assert.True(t, a.CoeficienteVariacao.Equal(outro.CoeficienteVariacao))
	}
}

// Desvio padrão populacional (divide por N): {2,4,4,4,5,5,7,9} → desvio 2.
func TestCalcular_DesvioPopulacional(t *testing.T) {
	r := estatistica.Calcular(valores(2, 4, 4, 4, 5, 5, 7, 9))
	require.NotNil(t, r)
	assert.True(t, r.Media.Equal(dec(5)))
	assert.True(t, r.DesvioPadrao.Equal(dec(2)),
		"desvio populacional de {2,4,4,4,5,5,7,9} é 2, obtido %s", r.DesvioPadrao)
	assert.True(t, r.CoeficienteVariacao.Equal(dec(40)), "cv = 2/5×100 = 40")
}

func TestCalcular_CoeficienteZeroQuandoMediaZero(t *testing.T) {
	r := estatistica.Calcular(valores(0, 0, 0))
	require.NotNil(t, r)
	assert.True(t, r.Media.IsZero())
	assert.True(t, r.CoeficienteVariacao.IsZero(), "cv deve ser 0 quando a média é 0")
}

// A faixa de aceitação é inclusiva nas duas pontas.
func TestClassificar_LimitesInclusivos(t *testing.T) {
	r := estatistica.Calcular(valores(100, 100, 100))
	require.NotNil(t, r)

	casos := []struct {
		valor    float64
		esperado string
	}{
		{75, "ACCEPTED"},   // exatamente mediana×0,75
		{125, "ACCEPTED"},  // exatamente mediana×1,25
		{74.99, "BELOW_LIMIT"},
		{125.01, "ABOVE_LIMIT"},
		{100, "ACCEPTED"},
	}
	for _, tc := range casos {
		c := r.Classificar(dec(tc.valor))
		assert.Equal(t, tc.esperado, c.Classificacao, "valor %v", tc.valor)
	}
}

func TestDentroDaFaixa(t *testing.T) {
	r := estatistica.Calcular(valores(100, 100, 100))
	require.NotNil(t, r)
	assert.True(t, r.DentroDaFaixa(dec(75)))
	assert.True(t, r.DentroDaFaixa(dec(125)))
	assert.False(t, r.DentroDaFaixa(dec(74)))
	assert.False(t, r.DentroDaFaixa(dec(126)))
}
