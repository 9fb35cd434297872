package infra

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReciboPDF(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "recibos")
	r := Recibo{
		Folio:         "abc123",
		Titulo:        "Recibo de empeño",
		Fecha:         time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC),
		Descripcion:   "Yamaha NMAX - ABC12D",
		ClienteNombre: "José Núñez",
		Lineas: []ReciboLinea{
			{Concepto: "Valor prestado", Monto: decimal.NewFromInt(1000000)},
			{Concepto: "Interés", Monto: decimal.NewFromInt(100000)},
		},
		TotalEtiqueta: "Valor entregado",
		Total:         decimal.NewFromInt(1000000),
	}

	path, err := GenerateReciboPDF(r, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "recibo_abc123.pdf"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, len(data) > 4 && string(data[:4]) == "%PDF")
}

func TestGenerateReciboPDF_RequiresFolio(t *testing.T) {
	_, err := GenerateReciboPDF(Recibo{}, t.TempDir())
	assert.Error(t, err)
}
