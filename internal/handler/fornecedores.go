package handler

import (
	"net/http"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
)

type FornecedoresHandler struct{ svc service.FornecedorService }

func NewFornecedoresHandler(svc service.FornecedorService) *FornecedoresHandler {
	return &FornecedoresHandler{svc: svc}
}

// Criar godoc
// @Summary      Cadastrar fornecedor
// @Tags         fornecedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.CriarFornecedorRequest true "Dados do fornecedor"
// @Success      201 {object} dto.FornecedorResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/fornecedores [post]
func (h *FornecedoresHandler) Criar(c *gin.Context) {
	var req dto.CriarFornecedorRequest
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

// Listar godoc
// @Summary      Listar fornecedores
// @Tags         fornecedores
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.FornecedorResponse
// @Router       /v1/fornecedores [get]
func (h *FornecedoresHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Erro ao listar fornecedores"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Obter godoc
// @Summary      Detalhar fornecedor
// @Tags         fornecedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do fornecedor"
// @Success      200 {object} dto.FornecedorResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [get]
func (h *FornecedoresHandler) Obter(c *gin.Context) {
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

// Atualizar godoc
// @Summary      Atualizar fornecedor
// @Tags         fornecedores
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path int                            true "ID do fornecedor"
// @Param        body body dto.AtualizarFornecedorRequest true "Campos a alterar"
// @Success      200 {object} dto.FornecedorResponse
// @Failure      400 {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [put]
func (h *FornecedoresHandler) Atualizar(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var req dto.AtualizarFornecedorRequest
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
// @Summary      Remover fornecedor
// @Description  Produtos vinculados permanecem no catálogo com fornecedor_id nulo.
// @Tags         fornecedores
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "ID do fornecedor"
// @Success      204
// @Failure      404 {object} apierror.APIError
// @Router       /v1/fornecedores/{id} [delete]
func (h *FornecedoresHandler) Remover(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.Remover(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}
