package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	_ "github.com/jackc/pgx/v5/stdlib" // driver "pgx" para as migrações
	"github.com/pressly/goose/v3"

	"github.com/jmacedo/pca-api/internal/application/anexo"
	"github.com/jmacedo/pca-api/internal/application/auditoria"
	"github.com/jmacedo/pca-api/internal/application/auth"
	"github.com/jmacedo/pca-api/internal/application/demanda"
	"github.com/jmacedo/pca-api/internal/application/fornecedor"
	"github.com/jmacedo/pca-api/internal/application/item"
	"github.com/jmacedo/pca-api/internal/application/pca"
	"github.com/jmacedo/pca-api/internal/application/preco"
	"github.com/jmacedo/pca-api/internal/application/relatorio"
	infraexcel "github.com/jmacedo/pca-api/internal/infrastructure/excel"
	"github.com/jmacedo/pca-api/internal/infrastructure/notification"
	infrapdf "github.com/jmacedo/pca-api/internal/infrastructure/pdf"
	"github.com/jmacedo/pca-api/internal/infrastructure/postgres"
	"github.com/jmacedo/pca-api/internal/infrastructure/storage"
	httpRouter "github.com/jmacedo/pca-api/internal/interfaces/http"
	"github.com/jmacedo/pca-api/pkg/config"
	"github.com/jmacedo/pca-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()

	if cfg.DB.Migrations {
		if err := runMigrations(cfg.DB.ConnectionString()); err != nil {
			log.Fatal().Err(err).Msg("migrações do banco")
		}
		log.Info().Msg("migrações aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	pcaRepo := postgres.NewPcaRepository(pool)
	demandaRepo := postgres.NewDemandaRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)
	precoRepo := postgres.NewPrecoRepository(pool)
	fornecedorRepo := postgres.NewFornecedorRepository(pool)
	anexoRepo := postgres.NewAnexoRepository(pool)
	auditoriaRepo := postgres.NewAuditoriaRepository(pool)
	usuarioRepo := postgres.NewUsuarioRepository(pool)
	txRunner := postgres.NewTxRunner(pool)
	auditSink := postgres.NewAuditSink(auditoriaRepo)

	valorador := preco.NewValorador(precoRepo, itemRepo)
	notifier := notification.NewLogNotifier()
	blobStore := storage.NewLocalBlobStore(cfg.Storage.Dir)

	authUC := auth.NewUseCase(usuarioRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	pcaUC := pca.NewUseCase(pcaRepo, demandaRepo, itemRepo, txRunner, auditSink)
	demandaUC := demanda.NewUseCase(demandaRepo, pcaRepo, itemRepo, notifier, auditSink)
	itemUC := item.NewUseCase(itemRepo, demandaRepo, auditSink)
	precoUC := preco.NewUseCase(precoRepo, itemRepo, fornecedorRepo, txRunner, valorador, auditSink)
	fornecedorUC := fornecedor.NewUseCase(fornecedorRepo, auditSink)
	anexoUC := anexo.NewUseCase(anexoRepo, blobStore, auditSink)
	auditoriaUC := auditoria.NewConsultaUseCase(auditoriaRepo)
	relatorioUC := relatorio.NewUseCase(
		pcaRepo, demandaRepo, itemRepo, precoRepo,
		infrapdf.NewMarotoPDFGenerator(), infraexcel.NewPcaExcelGenerator(),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // uploads de anexo
	})
	app.Use(recover.New())

	// Swagger UI em local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "PCA API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PcaUC:        pcaUC,
		DemandaUC:    demandaUC,
		ItemUC:       itemUC,
		PrecoUC:      precoUC,
		FornecedorUC: fornecedorUC,
		AnexoUC:      anexoUC,
		AuditoriaUC:  auditoriaUC,
		RelatorioUC:  relatorioUC,
		JWTSecret:    cfg.JWT.Secret,
		Metrics:      cfg.HTTP.Metrics,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}

// runMigrations aplica as migrações goose de migrations/ usando o driver
// database/sql do pgx.
func runMigrations(dsn string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, "migrations")
}
