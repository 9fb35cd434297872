package handler

import (
	"net/http"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/service"

	"github.com/gin-gonic/gin"
)

type TransaccionesHandler struct{ svc service.TransaccionService }

func NewTransaccionesHandler(svc service.TransaccionService) *TransaccionesHandler {
	return &TransaccionesHandler{svc: svc}
}

// Registrar godoc
// @Summary Registrar venta o recuperación
// @Tags transacciones
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearTransaccionRequest true "Transacción"
// @Success 201 {object} dto.TransaccionCreadaResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/transacciones [post]
func (h *TransaccionesHandler) Registrar(c *gin.Context) {
	var req dto.CrearTransaccionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Registrar(c.Request.Context(), actor(c), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Listar godoc
// @Summary Listar transacciones
// @Description Un vendedor solo ve sus propias transacciones.
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param tipo query string false "Tipo"
// @Param sede_id query string false "Sede"
// @Param usuario_id query string false "Usuario (solo administrador)"
// @Param skip query int false "Desplazamiento"
// @Param limit query int false "Máximo 500"
// @Success 200 {array} dto.TransaccionResponse
// @Router /v1/transacciones [get]
func (h *TransaccionesHandler) Listar(c *gin.Context) {
	var filter dto.TransaccionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), actor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Estadisticas godoc
// @Summary Totales por tipo de transacción
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param fecha_inicio query string false "YYYY-MM-DD"
// @Param fecha_fin query string false "YYYY-MM-DD, inclusive"
// @Param sede_id query string false "Sede"
// @Success 200 {object} dto.EstadisticasResponse
// @Router /v1/transacciones/estadisticas [get]
func (h *TransaccionesHandler) Estadisticas(c *gin.Context) {
	var filter dto.EstadisticasFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Estadisticas(c.Request.Context(), actor(c), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Revertir godoc
// @Summary Revertir una transacción
// @Description Devuelve el bien al estado anterior y elimina el registro. Responde 409 si el bien ya no está en el estado que dejó la transacción.
// @Tags transacciones
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la transacción"
// @Success 200 {object} dto.ReversionResponse
// @Failure 403 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/transacciones/{id} [delete]
func (h *TransaccionesHandler) Revertir(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Revertir(c.Request.Context(), actor(c), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
