package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/middleware"
	"jerosmotos/internal/model"
	"jerosmotos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// Unimplemented methods panic through the nil embedded interface.
type stubEmpenoService struct {
	service.EmpenoService
	err       error
	lastActor service.Actor
	lastClase model.ClaseBien
	lastSede  *uuid.UUID
}

func (s *stubEmpenoService) Empenar(_ context.Context, a service.Actor, clase model.ClaseBien, id uuid.UUID, req dto.CrearEmpenoRequest) (*dto.EmpenoCreadoResponse, error) {
	s.lastActor, s.lastClase = a, clase
	if s.err != nil {
		return nil, s.err
	}
	return &dto.EmpenoCreadoResponse{Clase: string(clase), BienID: id.String(), ValorEmpeno: req.ValorEmpeno}, nil
}

func (s *stubEmpenoService) Abonar(_ context.Context, _ service.Actor, _ model.ClaseBien, _ uuid.UUID, _ dto.AbonoRequest) (*dto.AbonoResponse, error) {
	return nil, s.err
}

func (s *stubEmpenoService) ListarActivos(_ context.Context, clase model.ClaseBien, sedeID *uuid.UUID) ([]dto.EmpenoResponse, error) {
	s.lastClase, s.lastSede = clase, sedeID
	return []dto.EmpenoResponse{}, s.err
}

type stubTransaccionService struct {
	service.TransaccionService
	err        error
	lastFilter dto.TransaccionFilter
}

func (s *stubTransaccionService) Listar(_ context.Context, _ service.Actor, f dto.TransaccionFilter) ([]dto.TransaccionResponse, error) {
	s.lastFilter = f
	return []dto.TransaccionResponse{}, s.err
}

func (s *stubTransaccionService) Revertir(_ context.Context, a service.Actor, _ uuid.UUID) (*dto.ReversionResponse, error) {
	if !a.EsAdmin() {
		return nil, &service.DomainError{Kind: service.ErrForbidden, Msg: "solo un administrador puede revertir"}
	}
	return &dto.ReversionResponse{}, s.err
}

type stubAuthService struct {
	service.AuthService
	err error
}

func (s *stubAuthService) Login(_ context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &dto.LoginResponse{AccessToken: "tok", TokenType: "bearer", User: dto.UsuarioResponse{Correo: req.Correo}}, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

var testUserID = uuid.New()

// withClaims stands in for JWTAuth.
func withClaims(rol string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &middleware.JWTClaims{UserID: testUserID.String(), Rol: rol})
		c.Next()
	}
}

func newEngine(rol string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(withClaims(rol))
	return r
}

func doJSON(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func detail(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body.Detail
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRespondError_MapsKinds(t *testing.T) {
	cases := []struct {
		kind   error
		status int
	}{
		{service.ErrNotFound, http.StatusNotFound},
		{service.ErrInvalidState, http.StatusConflict},
		{service.ErrValidation, http.StatusBadRequest},
		{service.ErrForbidden, http.StatusForbidden},
	}
	for _, tc := range cases {
		svc := &stubEmpenoService{err: &service.DomainError{Kind: tc.kind, Msg: "mensaje visible"}}
		r := newEngine(model.RolVendedor)
		r.POST("/v1/vehiculos/:id/empenar", NewEmpenosHandler(svc, model.ClaseVehiculo).Empenar)

		w := doJSON(r, http.MethodPost, "/v1/vehiculos/"+uuid.NewString()+"/empenar", map[string]any{
			"valor_empeno": "1000000", "interes_porcentaje": "10", "cliente_nombre": "Carlos Pérez",
		})
		assert.Equal(t, tc.status, w.Code, tc.kind.Error())
		assert.Equal(t, "mensaje visible", detail(t, w))
	}
}

func TestRespondError_HidesInternalErrors(t *testing.T) {
	svc := &stubEmpenoService{err: errors.New("pq: connection refused")}
	r := newEngine(model.RolVendedor)
	r.GET("/activos", NewEmpenosHandler(svc, model.ClaseArticulo).ListarActivos)

	w := doJSON(r, http.MethodGet, "/activos", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "pq:")
}

func TestEmpenar_Created(t *testing.T) {
	svc := &stubEmpenoService{}
	r := newEngine(model.RolVendedor)
	r.POST("/v1/articulos/:id/empenar", NewEmpenosHandler(svc, model.ClaseArticulo).Empenar)

	id := uuid.New()
	w := doJSON(r, http.MethodPost, "/v1/articulos/"+id.String()+"/empenar", map[string]any{
		"valor_empeno": "500000", "interes_porcentaje": "5", "cliente_nombre": "Ana Gómez",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.EmpenoCreadoResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, id.String(), resp.BienID)
	assert.True(t, resp.ValorEmpeno.Equal(decimal.NewFromInt(500000)))
	assert.Equal(t, model.ClaseArticulo, svc.lastClase)
	assert.Equal(t, testUserID, svc.lastActor.ID)
}

func TestEmpenar_ValidationAndBadID(t *testing.T) {
	r := newEngine(model.RolVendedor)
	r.POST("/v1/vehiculos/:id/empenar", NewEmpenosHandler(&stubEmpenoService{}, model.ClaseVehiculo).Empenar)

	w := doJSON(r, http.MethodPost, "/v1/vehiculos/"+uuid.NewString()+"/empenar", map[string]any{
		"valor_empeno": "0", "interes_porcentaje": "10", "cliente_nombre": "Carlos Pérez",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "ValorEmpeno")

	w = doJSON(r, http.MethodPost, "/v1/vehiculos/not-a-uuid/empenar", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAbonar_NotPawnedIsConflict(t *testing.T) {
	svc := &stubEmpenoService{err: &service.DomainError{Kind: service.ErrInvalidState, Msg: "el vehículo no está empeñado"}}
	r := newEngine(model.RolVendedor)
	r.PATCH("/:id/abono", NewEmpenosHandler(svc, model.ClaseVehiculo).Abonar)

	w := doJSON(r, http.MethodPatch, "/"+uuid.NewString()+"/abono", map[string]any{"monto_abono": "100"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestListarActivos_SedeFilter(t *testing.T) {
	svc := &stubEmpenoService{}
	r := newEngine(model.RolVendedor)
	r.GET("/activos", NewEmpenosHandler(svc, model.ClaseVehiculo).ListarActivos)

	sede := uuid.New()
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodGet, "/activos?sede_id="+sede.String(), nil).Code)
	require.NotNil(t, svc.lastSede)
	assert.Equal(t, sede, *svc.lastSede)

	assert.Equal(t, http.StatusBadRequest, doJSON(r, http.MethodGet, "/activos?sede_id=nope", nil).Code)
}

func TestTransacciones_ListarBindsQuery(t *testing.T) {
	svc := &stubTransaccionService{}
	r := newEngine(model.RolVendedor)
	r.GET("/v1/transacciones", NewTransaccionesHandler(svc).Listar)

	w := doJSON(r, http.MethodGet, "/v1/transacciones?tipo=venta_vehiculo&skip=10", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "venta_vehiculo", svc.lastFilter.Tipo)
	assert.Equal(t, 10, svc.lastFilter.Skip)
	assert.Equal(t, 100, svc.lastFilter.Limit)

	w = doJSON(r, http.MethodGet, "/v1/transacciones?sede_id=nope", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTransacciones_RevertirRequiresAdmin(t *testing.T) {
	svc := &stubTransaccionService{}
	path := "/v1/transacciones/" + uuid.NewString()

	r := newEngine(model.RolVendedor)
	r.DELETE("/v1/transacciones/:id", NewTransaccionesHandler(svc).Revertir)
	assert.Equal(t, http.StatusForbidden, doJSON(r, http.MethodDelete, path, nil).Code)

	r = newEngine(model.RolAdministrador)
	r.DELETE("/v1/transacciones/:id", NewTransaccionesHandler(svc).Revertir)
	assert.Equal(t, http.StatusOK, doJSON(r, http.MethodDelete, path, nil).Code)
}

func TestLogin_InvalidCredentials401(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/login", NewAuthHandler(&stubAuthService{err: service.ErrCredenciales}).Login)

	w := doJSON(r, http.MethodPost, "/login", map[string]any{"correo": "a@b.co", "password": "secreto"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	r = gin.New()
	r.POST("/login", NewAuthHandler(&stubAuthService{}).Login)
	w = doJSON(r, http.MethodPost, "/login", map[string]any{"correo": "a@b.co", "password": "secreto"})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(r, http.MethodPost, "/login", map[string]any{"correo": "no-es-correo", "password": "secreto"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPing(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", Ping)
	w := doJSON(r, http.MethodGet, "/ping", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ping":"pong"}`, w.Body.String())
}
