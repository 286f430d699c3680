package handler

import (
	"net/http"
	"strconv"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
)

type ProdutosHandler struct{ svc service.ProdutoService }

func NewProdutosHandler(svc service.ProdutoService) *ProdutosHandler {
	return &ProdutosHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarProdutoRequest true "Dados do produto"
// @Success      201 {object} dto.ProdutoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/produtos [post]
func (h *ProdutosHandler) Criar(c *gin.Context) {
	var req dto.CriarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Criar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Obter godoc
// @Summary      Detalhar produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do produto"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id} [get]
func (h *ProdutosHandler) Obter(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.Obter(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Listar godoc
// @Summary      Listar produtos
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        search    query string false "Busca por nome ou código de barras"
// @Param        categoria query string false "Categoria exata"
// @Param        page      query int    false "Página (default 1)"
// @Param        limit     query int    false "Registros por página (default 50)"
// @Success      200 {object} dto.ProdutoListResponse
// @Router       /v1/produtos [get]
func (h *ProdutosHandler) Listar(c *gin.Context) {
	var filter dto.ProdutoFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar produtos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Atualizar godoc
// @Summary      Atualizar produto
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                         true "ID do produto"
// @Param        body body dto.AtualizarProdutoRequest true "Campos a alterar"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/produtos/{id} [put]
func (h *ProdutosHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarProdutoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Atualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Remover godoc
// @Summary      Remover produto
// @Description  Recusa a remoção quando o produto já aparece em vendas.
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do produto"
// @Success      204
// @Failure      409 {object} apierror.APIError
// @Router       /v1/produtos/{id} [delete]
func (h *ProdutosHandler) Remover(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// AjustarEstoque godoc
// @Summary      Ajuste manual de estoque
// @Description  Aplica um delta (positivo ou negativo) e registra o movimento na mesma transação.
// @Tags         produtos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                       true "ID do produto"
// @Param        body body dto.AjustarEstoqueRequest true "Delta e motivo"
// @Success      200 {object} dto.ProdutoResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/produtos/{id}/estoque [post]
func (h *ProdutosHandler) AjustarEstoque(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.AjustarEstoqueRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AjustarEstoque(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Movimentos godoc
// @Summary      Histórico de movimentos de estoque do produto
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int true  "ID do produto"
// @Param        limit query int false "Máximo de registros (default 50)"
// @Success      200 {array} model.MovimentoEstoque
// @Failure      404 {object} apierror.APIError
// @Router       /v1/produtos/{id}/movimentos [get]
func (h *ProdutosHandler) Movimentos(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	movs, err := h.svc.Movimentos(c.Request.Context(), id, limit)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, movs)
}

// AlertasEstoque godoc
// @Summary      Produtos no estoque mínimo ou abaixo
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.AlertaEstoqueResponse
// @Router       /v1/produtos/alertas [get]
func (h *ProdutosHandler) AlertasEstoque(c *gin.Context) {
	alertas, err := h.svc.AlertasEstoque(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar alertas"))
		return
	}
	c.JSON(http.StatusOK, alertas)
}

// Categorias godoc
// @Summary      Categorias cadastradas
// @Tags         produtos
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} string
// @Router       /v1/produtos/categorias [get]
func (h *ProdutosHandler) Categorias(c *gin.Context) {
	categorias, err := h.svc.Categorias(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar categorias"))
		return
	}
	c.JSON(http.StatusOK, categorias)
}
