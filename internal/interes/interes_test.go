package interes

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func fecha(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCalcular_Escenarios(t *testing.T) {
	cases := []struct {
		name      string
		principal string
		tasa      string
		inicio    string
		corte     string
		periodos  int
		interes   string
		valor     string
	}{
		{"mismo dia cobra un periodo", "100000", "10", "2024-01-01", "2024-01-01", 1, "10000", "110000"},
		{"31 dias sigue en un periodo", "100000", "10", "2024-01-01", "2024-02-01", 1, "10000", "110000"},
		{"45 dias", "100000", "10", "2024-01-01", "2024-02-15", 1, "10000", "110000"},
		{"64 dias son dos periodos", "100000", "10", "2024-01-01", "2024-03-05", 2, "20000", "120000"},
		{"69 dias", "100000", "10", "2024-01-01", "2024-03-10", 2, "20000", "120000"},
		{"corte anterior al inicio", "50000", "5", "2024-05-10", "2024-05-01", 1, "2500", "52500"},
		{"redondeo a centavos", "1000.55", "3.33", "2024-01-01", "2024-01-10", 1, "33.32", "1033.87"},
		{"redondeo mitad hacia arriba", "0.5", "1", "2024-01-01", "2024-01-02", 1, "0.01", "0.51"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Calcular(dec(tc.principal), dec(tc.tasa), fecha(tc.inicio), fecha(tc.corte))
			assert.Equal(t, tc.periodos, r.Periodos)
			assert.True(t, dec(tc.interes).Equal(r.InteresAcumulado), "interes: got %s", r.InteresAcumulado)
			assert.True(t, dec(tc.valor).Equal(r.ValorActual), "valor: got %s", r.ValorActual)
		})
	}
}

func TestCalcular_SinDatosDeEmpeno(t *testing.T) {
	corte := fecha("2024-06-01")

	r := Calcular(dec("100000"), decimal.Zero, fecha("2024-01-01"), corte)
	assert.Equal(t, 0, r.Periodos)
	assert.True(t, r.InteresAcumulado.IsZero())
	assert.True(t, dec("100000").Equal(r.ValorActual))

	r = Calcular(dec("100000"), dec("10"), time.Time{}, corte)
	assert.Equal(t, 0, r.Periodos)
	assert.True(t, dec("100000").Equal(r.ValorActual))

	r = Calcular(decimal.Zero, dec("10"), fecha("2024-01-01"), corte)
	assert.Equal(t, 0, r.Periodos)
	assert.True(t, r.ValorActual.IsZero())
}

func TestCalcular_ValorEsPrincipalMasInteres(t *testing.T) {
	principal := dec("250000")
	tasa := dec("7.5")
	inicio := fecha("2023-11-20")
	for dias := 0; dias <= 400; dias += 13 {
		r := Calcular(principal, tasa, inicio, inicio.AddDate(0, 0, dias))
		assert.GreaterOrEqual(t, r.Periodos, 1)
		esperado := principal.Add(principal.Mul(tasa).Div(decimal.NewFromInt(100)).Mul(decimal.NewFromInt(int64(r.Periodos)))).Round(2)
		assert.True(t, esperado.Equal(r.ValorActual), "dias=%d", dias)
	}
}

func TestCalcular_Idempotente(t *testing.T) {
	inicio := fecha("2024-01-01")
	corte := fecha("2024-04-01")
	a := Calcular(dec("123456.78"), dec("4"), inicio, corte)
	b := Calcular(dec("123456.78"), dec("4"), inicio, corte)
	assert.Equal(t, a.Periodos, b.Periodos)
	assert.True(t, a.ValorActual.Equal(b.ValorActual))
}

func TestDiasTranscurridos_IgnoraHora(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	inicio := time.Date(2024, 1, 1, 23, 59, 0, 0, bogota)
	corte := time.Date(2024, 1, 2, 0, 1, 0, 0, bogota)
	assert.Equal(t, 1, DiasTranscurridos(inicio, corte))
	assert.Equal(t, 0, DiasTranscurridos(corte, inicio))
}
