package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/apierror"
	"github.com/Junior36912/Projeto-Acougue/internal/dto"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
	"github.com/Junior36912/Projeto-Acougue/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const precoCacheTTL = 4 * time.Hour

// ConsultaPrecosHandler serves the public price check endpoint for the
// scale/terminal at the counter. No authentication, no side effects.
type ConsultaPrecosHandler struct {
	repo repository.ProdutoRepository
	rdb  *redis.Client
}

func NewConsultaPrecosHandler(repo repository.ProdutoRepository, rdb *redis.Client) *ConsultaPrecosHandler {
	return &ConsultaPrecosHandler{repo: repo, rdb: rdb}
}

// GetPrecoPorCodigoBarras godoc
// @Summary      Consulta de preço por código de barras (sem autenticação)
// @Tags         preco
// @Produce      json
// @Param        codigo path string true "Código de barras"
// @Success      200 {object} dto.ConsultaPrecoResponse
// @Failure      404 {object} apierror.APIError
// @Router       /v1/preco/{codigo} [get]
func (h *ConsultaPrecosHandler) GetPrecoPorCodigoBarras(c *gin.Context) {
	codigo := c.Param("codigo")
	ctx := c.Request.Context()
	// Mesma chave que o catálogo invalida ao alterar/remover o produto.
	cacheKey := service.ChavePrecoCache(codigo)

	// 1. Try Redis cache first
	if cached, err := h.rdb.Get(ctx, cacheKey).Bytes(); err == nil {
		var resp dto.ConsultaPrecoResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	produto, err := h.repo.FindByCodigoBarras(ctx, codigo)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Produto não encontrado"))
		return
	}

	resp := dto.ConsultaPrecoResponse{
		Nome:       produto.Nome,
		Preco:      produto.Preco,
		TipoVenda:  produto.TipoVenda,
		Categoria:  produto.Categoria,
		Disponivel: produto.Quantidade,
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), cacheKey, b, precoCacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}
