package http

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jmacedo/pca-api/internal/application/anexo"
	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/auth"
	"github.com/jmacedo/pca-api/internal/application/demanda"
	"github.com/jmacedo/pca-api/internal/application/fornecedor"
	"github.com/jmacedo/pca-api/internal/application/item"
	"github.com/jmacedo/pca-api/internal/application/pca"
	"github.com/jmacedo/pca-api/internal/application/preco"
	"github.com/jmacedo/pca-api/internal/application/relatorio"
)

// RouterDeps dependências para o router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	PcaUC        *pca.UseCase
	DemandaUC    *demanda.UseCase
	ItemUC       *item.UseCase
	PrecoUC      *preco.UseCase
	FornecedorUC *fornecedor.UseCase
	AnexoUC      *anexo.UseCase
	AuditoriaUC  *auditoria.ConsultaUseCase
	RelatorioUC  *relatorio.UseCase
	JWTSecret    string
	Metrics      bool
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if deps.Metrics {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rotas protegidas (exigem Bearer Token). Leitura é liberada a qualquer
	// perfil autenticado; mutações exigem admin ou gestor.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	gestao := RequirePerfil("admin", "gestor")

	// Planos anuais (protegido)
	pcas := protected.Group("/pcas")
	pcaHandler := NewPcaHandler(deps.PcaUC, deps.RelatorioUC)
	pcas.Post("/", gestao, pcaHandler.Create)
	pcas.Get("/", pcaHandler.List)
	pcas.Get("/:id", pcaHandler.GetByID)
	pcas.Patch("/:id/situacao", gestao, pcaHandler.MudarSituacao)
	pcas.Post("/:id/versoes", gestao, pcaHandler.NovaVersao)
	pcas.Delete("/:id", gestao, pcaHandler.Delete)
	pcas.Get("/:id/planilha", pcaHandler.Planilha)

	// Demandas (protegido)
	demandas := protected.Group("/demandas")
	demandaHandler := NewDemandaHandler(deps.DemandaUC, deps.RelatorioUC)
	demandas.Post("/", gestao, demandaHandler.Create)
	demandas.Get("/", demandaHandler.ListByPca)
	demandas.Get("/:id", demandaHandler.GetByID)
	demandas.Put("/:id", gestao, demandaHandler.Update)
	demandas.Patch("/:id/status", gestao, demandaHandler.MudarStatus)
	demandas.Post("/:id/contratacao", gestao, demandaHandler.IniciarContratacao)
	demandas.Post("/:id/contrato", gestao, demandaHandler.FinalizarContrato)
	demandas.Delete("/:id", gestao, demandaHandler.Delete)
	demandas.Get("/:id/relatorio", demandaHandler.Relatorio)

	// Itens (protegido)
	itens := protected.Group("/itens")
	itemHandler := NewItemHandler(deps.ItemUC, deps.PrecoUC)
	itens.Post("/", gestao, itemHandler.Create)
	itens.Get("/", itemHandler.ListByDemanda)
	itens.Get("/:id", itemHandler.GetByID)
	itens.Put("/:id", gestao, itemHandler.Update)
	itens.Delete("/:id", gestao, itemHandler.Delete)
	itens.Get("/:id/precos", itemHandler.ListPrecos)
	itens.Get("/:id/estatisticas", itemHandler.Estatisticas)

	// Preços coletados (protegido)
	precos := protected.Group("/precos")
	precoHandler := NewPrecoHandler(deps.PrecoUC)
	precos.Post("/", gestao, precoHandler.Create)
	precos.Post("/lote", gestao, precoHandler.CreateLote)
	precos.Put("/:id", gestao, precoHandler.Update)
	precos.Delete("/:id", gestao, precoHandler.Delete)

	// Fornecedores (protegido)
	fornecedores := protected.Group("/fornecedores")
	fornecedorHandler := NewFornecedorHandler(deps.FornecedorUC)
	fornecedores.Post("/", gestao, fornecedorHandler.Create)
	fornecedores.Get("/", fornecedorHandler.List)
	fornecedores.Get("/:id", fornecedorHandler.GetByID)
	fornecedores.Put("/:id", gestao, fornecedorHandler.Update)
	fornecedores.Delete("/:id", gestao, fornecedorHandler.Delete)

	// Anexos (protegido)
	anexos := protected.Group("/anexos")
	anexoHandler := NewAnexoHandler(deps.AnexoUC)
	anexos.Post("/", gestao, anexoHandler.Upload)
	anexos.Get("/", anexoHandler.ListByEntidade)
	anexos.Get("/:id", anexoHandler.Download)
	anexos.Delete("/:id", gestao, anexoHandler.Delete)

	// Auditoria (protegido, somente leitura)
	auditoriaHandler := NewAuditoriaHandler(deps.AuditoriaUC)
	protected.Get("/auditoria", auditoriaHandler.ListByEntidade)
}
