package router

import (
	"time"

	"github.com/Junior36912/Projeto-Acougue/internal/config"
	"github.com/Junior36912/Projeto-Acougue/internal/handler"
	"github.com/Junior36912/Projeto-Acougue/internal/infra"
	"github.com/Junior36912/Projeto-Acougue/internal/middleware"
	"github.com/Junior36912/Projeto-Acougue/internal/model"
	"github.com/Junior36912/Projeto-Acougue/internal/repository"
	"github.com/Junior36912/Projeto-Acougue/internal/service"
	"github.com/Junior36912/Projeto-Acougue/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher, recibos *infra.ReciboPDF) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.CORSOrigin))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMin, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	produtoRepo := repository.NewProdutoRepository(db)
	vendaRepo := repository.NewVendaRepository(db)
	fornecedorRepo := repository.NewFornecedorRepository(db)
	movimentoRepo := repository.NewMovimentoEstoqueRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	produtoSvc := service.NewProdutoService(produtoRepo, fornecedorRepo, movimentoRepo, rdb)
	fornecedorSvc := service.NewFornecedorService(fornecedorRepo)
	vendaSvc := service.NewVendaService(vendaRepo, produtoRepo, movimentoRepo, recibos, dispatcher)
	fiadoSvc := service.NewFiadoService(vendaRepo)
	relatorioSvc := service.NewRelatorioService(vendaRepo, produtoSvc)

	// ── Handlers ─────────────────────────────────────────────────────────────
	usuariosH := handler.NewUsuariosHandler(authSvc)
	produtosH := handler.NewProdutosHandler(produtoSvc)
	vendasH := handler.NewVendasHandler(vendaSvc)
	fiadosH := handler.NewFiadosHandler(fiadoSvc)
	fornecedoresH := handler.NewFornecedoresHandler(fornecedorSvc)
	relatoriosH := handler.NewRelatoriosHandler(relatorioSvc)
	consultaH := handler.NewConsultaPrecosHandler(produtoRepo, rdb)
	healthH := handler.NewHealthHandler(db, rdb)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", healthH.Check)

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(cfg.LoginRateLimitPerMin), usuariosH.Login)
		auth.POST("/refresh", usuariosH.Refresh)
	}

	// Price check for the counter terminal — no auth required
	r.GET("/v1/preco/:codigo", consultaH.GetPrecoPorCodigoBarras)

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	ambos := middleware.RequireRole(model.RoleGerente, model.RoleFuncionario)
	soGerente := middleware.RequireRole(model.RoleGerente)

	v1 := r.Group("/v1", jwtMW)
	{
		v1.POST("/vendas", ambos, vendasH.RegistrarVenda)
		v1.GET("/vendas", ambos, vendasH.ListarVendas)
		v1.GET("/vendas/:id", ambos, vendasH.ObterVenda)
		v1.GET("/vendas/:id/recibo", ambos, vendasH.GerarRecibo)

		v1.GET("/fiados", ambos, fiadosH.ListarFiados)
		v1.POST("/fiados/:id/quitar", ambos, fiadosH.Quitar)
		v1.POST("/fiados/:id/anotar", ambos, fiadosH.Anotar)

		v1.GET("/produtos", ambos, produtosH.Listar)
		v1.GET("/produtos/categorias", ambos, produtosH.Categorias)
		v1.GET("/produtos/alertas", ambos, produtosH.AlertasEstoque)
		v1.GET("/produtos/:id", ambos, produtosH.Obter)
		prods := v1.Group("/produtos", soGerente)
		{
			prods.POST("", produtosH.Criar)
			prods.PUT("/:id", produtosH.Atualizar)
			prods.DELETE("/:id", produtosH.Remover)
			prods.POST("/:id/estoque", produtosH.AjustarEstoque)
			prods.GET("/:id/movimentos", produtosH.Movimentos)
		}

		forn := v1.Group("/fornecedores", soGerente)
		{
			forn.POST("", fornecedoresH.Criar)
			forn.GET("", fornecedoresH.Listar)
			forn.GET("/:id", fornecedoresH.Obter)
			forn.PUT("/:id", fornecedoresH.Atualizar)
			forn.DELETE("/:id", fornecedoresH.Remover)
		}

		usuarios := v1.Group("/usuarios", soGerente)
		{
			usuarios.POST("", usuariosH.Criar)
			usuarios.GET("", usuariosH.Listar)
			usuarios.PUT("/:id", usuariosH.Atualizar)
			usuarios.DELETE("/:id", usuariosH.Remover)
		}

		rel := v1.Group("/relatorios", soGerente)
		{
			rel.GET("/dashboard", relatoriosH.Dashboard)
			rel.GET("/vendas.csv", relatoriosH.ExportarVendasCSV)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
