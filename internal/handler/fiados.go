package handler

import (
	"net/http"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
)

type FiadosHandler struct{ svc service.FiadoService }

func NewFiadosHandler(svc service.FiadoService) *FiadosHandler { return &FiadosHandler{svc: svc} }

// ListarFiados godoc
// @Summary      Listar vendas a prazo (caderneta)
// @Description  Lista fiados com pendentes primeiro, vencimento mais próximo no topo. Filtra por cliente exato ou primeira letra do nome.
// @Tags         fiados
// @Produce      json
// @Security     BearerAuth
// @Param        cliente query string false "Nome exato do cliente"
// @Param        letra   query string false "Primeira letra do nome"
// @Success      200 {object} dto.FiadoListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/fiados [get]
func (h *FiadosHandler) ListarFiados(c *gin.Context) {
	var filter dto.FiadoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarFiados(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fiados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Quitar godoc
// @Summary      Quitar fiado
// @Description  Marca a venda a prazo como paga. Não altera estoque: a mercadoria saiu na venda. Idempotente: quitar duas vezes retorna quitado=false.
// @Tags         fiados
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID da venda"
// @Success      200 {object} dto.QuitarResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fiados/{id}/quitar [post]
func (h *FiadosHandler) Quitar(c *gin.Context) {
	resp, err := h.svc.Quitar(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Anotar godoc
// @Summary      Anotar observação no fiado
// @Tags         fiados
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string            true "ID da venda"
// @Param        body body dto.AnotarRequest true "Observação"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fiados/{id}/anotar [post]
func (h *FiadosHandler) Anotar(c *gin.Context) {
	var req dto.AnotarRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Anotar(c.Request.Context(), c.Param("id"), req.Observacao); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
