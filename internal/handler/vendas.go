package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/middleware"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type VendasHandler struct{ svc service.VendaService }

func NewVendasHandler(svc service.VendaService) *VendasHandler { return &VendasHandler{svc: svc} }

// RegistrarVenda godoc
// @Summary      Registrar uma nova venda
// @Description  Cria uma venda ACID: baixa estoque com piso, registra movimentos e despacha geração de recibo assíncrona. Vendas a prazo exigem cliente e data de vencimento.
// @Tags         vendas
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.RegistrarVendaRequest true "Detalhe da venda"
// @Success      201  {object} dto.VendaResponse
// @Failure      400  {object} apierror.APIError
// @Failure      409  {object} apierror.APIError
// @Failure      500  {object} apierror.APIError
// @Router       /v1/vendas [post]
func (h *VendasHandler) RegistrarVenda(c *gin.Context) {
	var req dto.RegistrarVendaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)

	resp, err := h.svc.RegistrarVenda(c.Request.Context(), claims.UserID, req)
	if err != nil {
		// Só erros de validação voltam com o motivo; falha de banco ou de
		// transação vira 500 genérico para não vazar detalhes da infra.
		var ve *service.ErroValidacao
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, apierror.New(ve.Error()))
			return
		}
		log.Error().Err(err).Uint("usuario_id", claims.UserID).Msg("falha ao registrar venda")
		c.JSON(http.StatusInternalServerError, apierror.New("Não foi possível registrar a venda"))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ObterVenda godoc
// @Summary      Detalhar venda
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "ID da venda"
// @Success      200 {object} dto.VendaListItem
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id} [get]
func (h *VendasHandler) ObterVenda(c *gin.Context) {
	resp, err := h.svc.ObterVenda(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListarVendas godoc
// @Summary      Listar vendas
// @Description  Lista paginada de vendas filtrada por período e método de pagamento.
// @Tags         vendas
// @Produce      json
// @Security     BearerAuth
// @Param        data_inicio query string false "Data YYYY-MM-DD"
// @Param        data_fim    query string false "Data YYYY-MM-DD"
// @Param        metodo      query string false "dinheiro | cartao | pix | prazo | all"
// @Param        page        query int    false "Página (default 1)"
// @Param        limit       query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.VendaListResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/vendas [get]
func (h *VendasHandler) ListarVendas(c *gin.Context) {
	var filter dto.VendaFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.ListarVendas(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar vendas"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GerarRecibo godoc
// @Summary      Recibo em PDF da venda
// @Tags         vendas
// @Produce      application/pdf
// @Security     BearerAuth
// @Param        id path string true "ID da venda"
// @Success      200 {file} binary
// @Failure      404 {object} apierror.APIError
// @Router       /v1/vendas/{id}/recibo [get]
func (h *VendasHandler) GerarRecibo(c *gin.Context) {
	id := c.Param("id")
	pdf, err := h.svc.GerarRecibo(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=recibo_%s.pdf", id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}
