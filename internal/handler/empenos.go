package handler

import (
	"net/http"

	"jerosmotos/internal/apierror"
	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"
	"jerosmotos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// EmpenosHandler serves the pawn endpoints of one item family; the router
// mounts one instance under /v1/vehiculos and another under /v1/articulos.
type EmpenosHandler struct {
	svc   service.EmpenoService
	clase model.ClaseBien
}

func NewEmpenosHandler(svc service.EmpenoService, clase model.ClaseBien) *EmpenosHandler {
	return &EmpenosHandler{svc: svc, clase: clase}
}

// Empenar godoc
// @Summary Empeñar un bien disponible
// @Tags empenos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del vehículo o artículo"
// @Param body body dto.CrearEmpenoRequest true "Datos del empeño"
// @Success 201 {object} dto.EmpenoCreadoResponse
// @Failure 404 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/vehiculos/{id}/empenar [post]
// @Router /v1/articulos/{id}/empenar [post]
func (h *EmpenosHandler) Empenar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.CrearEmpenoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Empenar(c.Request.Context(), actor(c), h.clase, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Abonar godoc
// @Summary Registrar un abono al empeño
// @Description Solo liquida cuando el monto cubre capital más intereses; un abono parcial no modifica nada.
// @Tags empenos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del vehículo o artículo"
// @Param body body dto.AbonoRequest true "Monto"
// @Success 200 {object} dto.AbonoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/vehiculos/{id}/abono [patch]
// @Router /v1/articulos/{id}/abono [patch]
func (h *EmpenosHandler) Abonar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var req dto.AbonoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abonar(c.Request.Context(), actor(c), h.clase, id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Consultar godoc
// @Summary Estado de cuenta del empeño
// @Tags empenos
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del vehículo o artículo"
// @Success 200 {object} dto.EmpenoResponse
// @Router /v1/vehiculos/{id}/empeno [get]
// @Router /v1/articulos/{id}/empeno [get]
func (h *EmpenosHandler) Consultar(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	resp, err := h.svc.Consultar(c.Request.Context(), h.clase, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarActivos godoc
// @Summary Empeños vigentes con su saldo a hoy
// @Tags empenos
// @Produce json
// @Security BearerAuth
// @Param sede_id query string false "Filtrar por sede"
// @Success 200 {array} dto.EmpenoResponse
// @Router /v1/vehiculos/empenos/activos [get]
// @Router /v1/articulos/empenos/activos [get]
func (h *EmpenosHandler) ListarActivos(c *gin.Context) {
	var sedeID *uuid.UUID
	if raw := c.Query("sede_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, apierror.New("sede_id invalido"))
			return
		}
		sedeID = &id
	}
	resp, err := h.svc.ListarActivos(c.Request.Context(), h.clase, sedeID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
