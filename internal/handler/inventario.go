package handler

import (
	"context"
	"net/http"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ── Sedes ────────────────────────────────────────────────────────────────────

type SedesHandler struct{ svc service.SedeService }

func NewSedesHandler(svc service.SedeService) *SedesHandler { return &SedesHandler{svc: svc} }

// Crear godoc
// @Summary Crear sede
// @Tags sedes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.SedeRequest true "Sede"
// @Success 201 {object} dto.SedeResponse
// @Router /v1/sedes [post]
func (h *SedesHandler) Crear(c *gin.Context) {
	var req dto.SedeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *SedesHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SedesHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SedesHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.SedeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *SedesHandler) Eliminar(c *gin.Context) {
	deleteByID(c, h.svc.Eliminar)
}

// ── Vehículos ────────────────────────────────────────────────────────────────

type VehiculosHandler struct{ svc service.VehiculoService }

func NewVehiculosHandler(svc service.VehiculoService) *VehiculosHandler {
	return &VehiculosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar vehículo
// @Tags vehiculos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearVehiculoRequest true "Vehículo"
// @Success 201 {object} dto.VehiculoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/vehiculos [post]
func (h *VehiculosHandler) Crear(c *gin.Context) {
	var req dto.CrearVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar vehículos
// @Tags vehiculos
// @Produce json
// @Security BearerAuth
// @Param estado query string false "Estado"
// @Param sede_id query string false "Sede"
// @Success 200 {array} dto.VehiculoResponse
// @Router /v1/vehiculos [get]
func (h *VehiculosHandler) Listar(c *gin.Context) {
	var filter dto.VehiculoFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarVehiculoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *VehiculosHandler) Eliminar(c *gin.Context) {
	deleteByID(c, h.svc.Eliminar)
}

// ── Artículos de valor ───────────────────────────────────────────────────────

type ArticulosHandler struct{ svc service.ArticuloService }

func NewArticulosHandler(svc service.ArticuloService) *ArticulosHandler {
	return &ArticulosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar artículo de valor
// @Tags articulos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearArticuloRequest true "Artículo"
// @Success 201 {object} dto.ArticuloResponse
// @Router /v1/articulos [post]
func (h *ArticulosHandler) Crear(c *gin.Context) {
	var req dto.CrearArticuloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *ArticulosHandler) Listar(c *gin.Context) {
	var filter dto.ArticuloFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticulosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticulosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.ActualizarArticuloRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ArticulosHandler) Eliminar(c *gin.Context) {
	deleteByID(c, h.svc.Eliminar)
}

// ── Mantenimientos ───────────────────────────────────────────────────────────

type MantenimientosHandler struct{ svc service.MantenimientoService }

func NewMantenimientosHandler(svc service.MantenimientoService) *MantenimientosHandler {
	return &MantenimientosHandler{svc: svc}
}

// Crear godoc
// @Summary Registrar mantenimiento de un vehículo
// @Tags mantenimientos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.MantenimientoRequest true "Mantenimiento"
// @Success 201 {object} dto.MantenimientoResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/mantenimientos [post]
func (h *MantenimientosHandler) Crear(c *gin.Context) {
	var req dto.MantenimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListarPorVehiculo godoc
// @Summary Historial de mantenimientos
// @Tags mantenimientos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del vehículo"
// @Success 200 {array} dto.MantenimientoResponse
// @Router /v1/mantenimientos/vehiculo/{id} [get]
func (h *MantenimientosHandler) ListarPorVehiculo(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorVehiculo(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientosHandler) Obtener(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientosHandler) Actualizar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.MantenimientoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *MantenimientosHandler) Eliminar(c *gin.Context) {
	deleteByID(c, h.svc.Eliminar)
}

func deleteByID(c *gin.Context, del func(ctx context.Context, id uuid.UUID) error) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := del(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
