package app

import (
	"context"
	"fmt"
	"time"

	"github.com/Leopold1975/feedback_board/internal/feedback/api/server"
	fr "github.com/Leopold1975/feedback_board/internal/feedback/repository/feedbackrepo/postgres"
	"github.com/Leopold1975/feedback_board/internal/feedback/repository/memrepo"
	ss "github.com/Leopold1975/feedback_board/internal/feedback/repository/sessionstore/redis"
	ur "github.com/Leopold1975/feedback_board/internal/feedback/repository/userrepo/postgres"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/credentials"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/feedbackservice"
	"github.com/Leopold1975/feedback_board/internal/feedback/services/userservice"
	"github.com/Leopold1975/feedback_board/internal/pkg/config"
	"github.com/Leopold1975/feedback_board/internal/pkg/pgtools"
	"github.com/Leopold1975/feedback_board/internal/pkg/redistools"
	"github.com/Leopold1975/feedback_board/pkg/logger"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

type Server interface {
	Start(context.Context) error
	Shutdown(context.Context) error
}

type FeedbackApp struct {
	s   Server
	db  *pgxpool.Pool
	rdb *redis.Client
	lg  logger.Logger
	cfg config.Config
}

type repositories struct {
	users    userservice.Repository
	lister   userservice.FeedbackLister
	feedback feedbackservice.Repository
}

func New(ctx context.Context, cfg config.Config) (FeedbackApp, error) {
	lg, err := logger.New(cfg.Logger)
	if err != nil {
		return FeedbackApp{}, fmt.Errorf("can't get logger error: %w", err)
	}

	var (
		db    *pgxpool.Pool
		repos repositories
	)

	switch cfg.PostgresDB.Storage {
	case config.StorageMemory:
		store := memrepo.New()
		repos = repositories{users: store, lister: store, feedback: store}

		lg.Warnf("using in-memory storage, data is lost on restart")
	default:
		db, err = pgtools.New(ctx, cfg.PostgresDB)
		if err != nil {
			return FeedbackApp{}, fmt.Errorf("postgres initializing error: %w", err)
		}

		feedbackRepo := fr.New(db)
		repos = repositories{users: ur.New(db), lister: feedbackRepo, feedback: feedbackRepo}
	}

	rdb, err := redistools.NewClient(ctx, cfg.Sessions)
	if err != nil {
		if db != nil {
			db.Close()
		}

		return FeedbackApp{}, fmt.Errorf("redis session store initializing error: %w", err)
	}

	userService := userservice.New(repos.users, repos.lister, credentials.New(cfg.Auth.BcryptCost), lg)
	feedbackService := feedbackservice.New(repos.feedback, lg)

	s, err := server.New(cfg.Server, cfg.Auth, userService, feedbackService, ss.New(rdb, cfg.Auth.TTL), lg)
	if err != nil {
		rdb.Close()

		if db != nil {
			db.Close()
		}

		return FeedbackApp{}, fmt.Errorf("server initializing error: %w", err)
	}

	return FeedbackApp{
		s:   s,
		db:  db,
		rdb: rdb,
		lg:  lg,
		cfg: cfg,
	}, nil
}

func (fa *FeedbackApp) Run(ctx context.Context) {
	fa.lg.Infof("STARTED SERVER ON %s", fa.cfg.Server.Addr)

	go func() {
		if err := fa.s.Start(ctx); err != nil {
			fa.lg.Errorf("server start error: %s", err.Error())

			return
		}
	}()

	<-ctx.Done()

	ctxS, cancel := context.WithTimeout(context.Background(), time.Second*5) //nolint:gomnd
	defer cancel()

	if err := fa.Stop(ctxS); err != nil { //nolint:contextcheck
		fa.lg.Errorf("server shutdown error: %s", err.Error())
	}
}

func (fa *FeedbackApp) Stop(ctx context.Context) error {
	if err := fa.s.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}

	if err := fa.rdb.Close(); err != nil {
		return fmt.Errorf("redis close error: %w", err)
	}

	if fa.db != nil {
		fa.db.Close()
	}

	fa.lg.Info("Shutdowned successfully")

	return nil
}
