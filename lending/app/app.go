package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/lending-service/lending/config"
	"github.com/Astemirdum/lending-service/lending/internal/handler"
	"github.com/Astemirdum/lending-service/lending/internal/model"
	"github.com/Astemirdum/lending-service/lending/internal/repository"
	"github.com/Astemirdum/lending-service/lending/internal/repository/memory"
	"github.com/Astemirdum/lending-service/lending/internal/server"
	"github.com/Astemirdum/lending-service/lending/internal/service"
	"github.com/Astemirdum/lending-service/lending/migrations"
	"github.com/Astemirdum/lending-service/pkg/circuit_breaker"
	"github.com/Astemirdum/lending-service/pkg/kafka"
	"github.com/Astemirdum/lending-service/pkg/logger"
	"github.com/Astemirdum/lending-service/pkg/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Services is the wired service layer shared by the HTTP server and the CLI commands.
type Services struct {
	Loans     *service.LoanService
	Audit     *service.AuditRecorder
	Sequences *service.SequenceAllocator

	closers []func() error
}

func NewServices(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Services, error) {
	s := &Services{}

	repo, err := newStore(ctx, cfg, log, s)
	if err != nil {
		s.Close(log)
		return nil, err
	}

	opts := []service.Option{
		service.WithDefaultLoanDays(cfg.Lending.DefaultLoanDays),
		service.WithSequenceFormat(model.SequenceLoan, cfg.Lending.LoanFormat),
		service.WithSequenceFormat(model.SequenceCatalog, cfg.Lending.CatalogFormat),
		service.WithSequenceFormat(model.SequenceMembership, cfg.Lending.MembershipFormat),
	}
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			s.Close(log)
			return nil, errors.Wrap(err, "kafka.NewProducer")
		}
		q := kafka.NewEnqueuer(producer, circuit_breaker.New(cfg.Kafka.Breaker))
		s.closers = append(s.closers, q.Close)
		opts = append(opts, service.WithPublisher(service.NewKafkaPublisher(q, cfg.Kafka.Topic)))
	}

	s.Sequences = service.NewSequenceAllocator(repo, log, opts...)
	s.Audit = service.NewAuditRecorder(repo, log, opts...)
	s.Loans = service.NewLoanService(repo, s.Sequences, log, append(opts, service.WithAuditor(s.Audit))...)
	return s, nil
}

func newStore(ctx context.Context, cfg *config.Config, log *zap.Logger, s *Services) (repository.Repository, error) {
	if cfg.Lending.Storage == config.StorageMemory {
		store := memory.New()
		if cfg.Lending.SeedFile != "" {
			f, err := os.Open(cfg.Lending.SeedFile)
			if err != nil {
				return nil, errors.Wrap(err, "open seed file")
			}
			defer f.Close()
			seed, err := store.LoadSeed(f)
			if err != nil {
				return nil, err
			}
			log.Info("memory store seeded",
				zap.Int("items", len(seed.Items)),
				zap.Int("patrons", len(seed.Patrons)))
		}
		return store, nil
	}

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return nil, errors.Wrap(err, "db init")
	}
	s.closers = append(s.closers, db.Close)
	return repository.NewRepository(db, log)
}

// Close releases connections in reverse order of creation.
func (s *Services) Close(log *zap.Logger) {
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			log.Warn("close", zap.Error(err))
		}
	}
	s.closers = nil
}

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "lending")
	svc, err := NewServices(context.Background(), cfg, log)
	if err != nil {
		log.Fatal("services init", zap.Error(err))
	}

	h := handler.New(svc.Loans, svc.Audit, svc.Sequences, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)),
		zap.String("storage", cfg.Lending.Storage))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.DPanic("srv.Stop", zap.Error(err))
	}
	svc.Close(log)
	log.Info("Graceful shutdown finished")
}

// AuditEvent is the audit event type handed to TailAudit callbacks.
type AuditEvent = model.AuditEvent

// TailAudit follows the audit topic and hands every event to handle until ctx is done.
func TailAudit(ctx context.Context, cfg *config.Config, log *zap.Logger, handle func(context.Context, model.AuditEvent) error) error {
	if !cfg.Kafka.Enabled() {
		return errors.New("kafka brokers are not configured (KAFKA_ADDRS)")
	}
	consumer, err := kafka.NewConsumer(cfg.Kafka, kafka.AuditConsumerGroup)
	if err != nil {
		return errors.Wrap(err, "kafka.NewConsumer")
	}
	defer consumer.Close()

	return kafka.Consume(ctx, consumer, handler.NewAuditConsumer(handle, log), cfg.Kafka.Topic)
}
