package app

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/shopspring/decimal"
	"github.com/twmb/franz-go/pkg/sr"
	"github.com/zambashope/moz-checkout/config"
	"github.com/zambashope/moz-checkout/internal/adapter"
	"github.com/zambashope/moz-checkout/internal/adapter/httphandler"
	"github.com/zambashope/moz-checkout/internal/adapter/kafka"
	"github.com/zambashope/moz-checkout/internal/adapter/memory"
	"github.com/zambashope/moz-checkout/internal/adapter/storage"
	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
	"github.com/zambashope/moz-checkout/internal/core/service"
	"github.com/zambashope/moz-checkout/pkg/schema"
)

type outbound struct {
	catalog  port.CatalogProvider
	storage  port.CheckoutsStorage
	events   port.CheckoutEventsProducer
	sqldb    *storage.SQLDB
	producer *kafka.CheckoutsProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	formatter  domain.PriceFormatter
	outbound   outbound
	service    service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.formatter = domain.NewPriceFormatter(cfg.Currency.Locale, cfg.Currency.Code)
	app.initStorage()
	app.initEventsProducer()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initStorage() {
	const op = "App.initStorage"

	if app.cfg.SQLDB == "" {
		products, err := catalogFromConfig(app.cfg.Catalog)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.catalog = memory.NewCatalog(products)
		app.outbound.storage = memory.NewCheckoutsStorage()
		slog.Info("using in-memory storage", "op", op, "nProducts", len(products))
		return
	}

	sqldb, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.sqldb = &sqldb
	app.outbound.catalog = storage.NewProductsRepository(sqldb)
	app.outbound.storage = storage.NewCheckoutsRepository(sqldb)
}

func (app *App) initEventsProducer() {
	const op = "App.initEventsProducer"
	log := slog.With("op", op)

	brokerCfg := app.cfg.Broker
	if !brokerCfg.Enabled() {
		log.Info("checkout events are disabled")
		return
	}

	tlsCfg, err := adapter.MakeTLSConfig(
		brokerCfg.TLS.CAFile, brokerCfg.TLS.CertFile, brokerCfg.TLS.KeyFile,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	serde := app.initSerde(brokerCfg.SchemaRegistryURLs, tlsCfg)

	producer, err := kafka.NewCheckoutsProducer(
		kafka.ProducerClientOpt(
			app.ctx, brokerCfg.SeedBrokers, brokerCfg.Topics.CheckoutsSaved, tlsCfg,
		),
		kafka.ProducerEncoderOpt(serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.producer = &producer
	app.outbound.events = producer
}

func (app *App) initSerde(urls []string, tlsCfg *tls.Config) schema.Serde {
	const op = "App.initSerde"

	srOpts := []sr.ClientOpt{sr.URLs(urls...)}
	if tlsCfg != nil {
		srOpts = append(srOpts, sr.DialTLSConfig(tlsCfg))
	}
	srClient, err := sr.NewClient(srOpts...)
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CheckoutsSaved + "-value"
	serde, err := schema.NewSerdeCheckoutV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewSchemaCreater(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	return serde
}

func (app *App) initCoreService() {
	app.service = service.New(
		app.outbound.catalog,
		app.outbound.storage,
		app.outbound.events,
		app.formatter,
	)
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, app.service, app.formatter)
	httphandler.RegisterCheckouts(mux, app.service, app.formatter)

	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, mux)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.outbound.producer != nil {
		app.outbound.producer.Close()
	}
	if app.outbound.sqldb != nil {
		app.outbound.sqldb.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}

func catalogFromConfig(ps []config.CatalogProduct) ([]domain.Product, error) {
	const op = "catalogFromConfig"

	products := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		price, err := decimal.NewFromString(p.Price)
		if err != nil {
			return nil, fmt.Errorf("%s: product %q: %w", op, p.ProductID, err)
		}
		products = append(products, domain.Product{
			ProductID:   p.ProductID,
			Title:       p.Title,
			Description: p.Description,
			Price:       price,
			CoverImage:  p.CoverImage,
		})
	}

	if err := domain.ValidateCatalog(products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}
