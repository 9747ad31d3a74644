package app

import (
	"context"
	"log"
	"time"

	"jobtracker/internal/bls"
	"jobtracker/internal/config"
	"jobtracker/internal/database"
	"jobtracker/internal/database/migration"
	dbpostgres "jobtracker/internal/database/postgres"
	"jobtracker/internal/index"
	"jobtracker/internal/infrastructure/cache"
	"jobtracker/internal/onet"
	"jobtracker/internal/pipeline"
	"jobtracker/internal/repository"
	"jobtracker/internal/usecase"
	"jobtracker/internal/ws"
)

// Container owns every long-lived dependency: database, cache, search
// index, source clients, pipeline engine and the usecases on top.
type Container struct {
	Config config.Config
	Logger *log.Logger

	DB    database.DB
	Cache *cache.Redis
	Index *index.Loader
	Hub   *ws.Hub

	Runs    repository.SyncRunRepository
	Markers repository.SourceMarkerRepository

	BLS    *bls.Client
	ONet   *onet.Client
	Engine *pipeline.Engine

	Occupations usecase.OccupationUsecase
	Wages       usecase.WageUsecase
	Skills      usecase.SkillUsecase
	Status      usecase.StatusUsecase
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	c := &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Cache:  cache.NewRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.TTL, logger),
		Index:  index.NewLoader(cfg.Typesense, logger),
		Hub:    ws.NewHub(logger),
	}

	c.Runs = repository.NewPostgresSyncRunRepository(db)
	c.Markers = repository.NewPostgresSourceMarkerRepository(db)

	c.BLS = bls.NewClient(cfg.BLS, logger)
	c.ONet = onet.NewClient(cfg.ONet, logger)
	c.Engine = pipeline.NewEngine(cfg.Data, c.BLS, c.ONet, c.Index, c.Runs, c.Markers, c.Cache, c.Hub, logger)

	c.Occupations = usecase.NewOccupationUsecase(c.Index, c.Cache, logger)
	c.Wages = usecase.NewWageUsecase(c.Index, c.Cache, logger)
	c.Skills = usecase.NewSkillUsecase(c.Index, c.Cache, logger)
	c.Status = usecase.NewStatusUsecase(c.Index, c.Runs, c.Markers, c.Engine, logger)

	return c, nil
}

// RunMigrations applies pending SQL migrations from the given
// directory.
func (c *Container) RunMigrations(ctx context.Context, dir string) error {
	r := migration.Runner{Dir: dir}
	return r.Run(ctx, c.DB.SQLDB())
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
	if c.DB != nil {
		return c.DB.Close()
	}
	return nil
}
