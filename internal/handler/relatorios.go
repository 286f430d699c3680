package handler

import (
	"net/http"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
)

type RelatoriosHandler struct{ svc service.RelatorioService }

func NewRelatoriosHandler(svc service.RelatorioService) *RelatoriosHandler {
	return &RelatoriosHandler{svc: svc}
}

// Dashboard godoc
// @Summary      Painel do dia
// @Description  Totais de hoje por método, fiados pendentes e alertas de estoque.
// @Tags         relatorios
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.DashboardResponse
// @Router       /v1/relatorios/dashboard [get]
func (h *RelatoriosHandler) Dashboard(c *gin.Context) {
	resp, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao montar dashboard"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExportarVendasCSV godoc
// @Summary      Exportar vendas do período em CSV
// @Tags         relatorios
// @Produce      text/csv
// @Security     BearerAuth
// @Param        data_inicio query string false "Data YYYY-MM-DD (default: 1 mês atrás)"
// @Param        data_fim    query string false "Data YYYY-MM-DD (default: hoje)"
// @Success      200 {file} binary
// @Router       /v1/relatorios/vendas.csv [get]
func (h *RelatoriosHandler) ExportarVendasCSV(c *gin.Context) {
	csvBytes, err := h.svc.ExportarVendasCSV(c.Request.Context(), c.Query("data_inicio"), c.Query("data_fim"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao exportar vendas"))
		return
	}
	c.Header("Content-Disposition", "attachment; filename=vendas.csv")
	c.Data(http.StatusOK, "text/csv; charset=utf-8", csvBytes)
}
