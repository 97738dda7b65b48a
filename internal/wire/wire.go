package wire

import (
	"MindGarden/internal/api"
	"MindGarden/internal/api/config"
	"MindGarden/internal/api/handler"
	"MindGarden/internal/job"
	"MindGarden/internal/pkg/cron"
	"MindGarden/internal/pkg/database"
	"MindGarden/internal/pkg/kafka"
	"MindGarden/internal/pkg/minio"
	"MindGarden/internal/pkg/redis"
	"MindGarden/internal/repository"
	"MindGarden/internal/service"
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer holds the top-level components the process runs.
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	CronMgr      *cron.Manager
	KafkaManager *kafka.ConsumerManager // nil when the checkin consumer is disabled
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	redisStore := redis.NewStore()
	objectStore := minio.NewStore()

	userRepo := repository.NewUserRepo(db)
	habitRepo := repository.NewHabitRepo(db)
	checkinRepo := repository.NewCheckinRepo(db)
	insightRepo := repository.NewInsightRepo(db)
	repos := repository.NewRepos(db)
	transactor := repository.NewTransactor(db)

	habitService := service.NewHabitService(userRepo, habitRepo)
	checkinService := service.NewCheckinService(userRepo, habitRepo, checkinRepo, insightRepo, redisStore)
	insightService := service.NewInsightService(transactor, repos, redisStore)
	exportService := service.NewExportService(checkinRepo, objectStore, time.Duration(cfg.MinIO.PresignMinute)*time.Minute)

	handlers := &api.HandlersGroup{
		HabitHandler:   handler.NewHabitHandler(habitService),
		CheckinHandler: handler.NewCheckinHandler(checkinService),
		InsightHandler: handler.NewInsightHandler(insightService),
		ExportHandler:  handler.NewExportHandler(exportService),
		HealthHandler: handler.NewHealthHandler(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
		RateCounter: redisStore,
		RateLimit:   cfg.RateLimit,
		Log:         cfg.Log,
	}

	router := api.SetupRouter(handlers)

	recomputeJob := job.NewInsightRecomputeJob(redisStore, insightService)
	cronMgr := cron.NewCronManager(recomputeJob, cfg.Job.InsightRecomputeSpec)

	var kafkaMgr *kafka.ConsumerManager
	if cfg.KafkaCheckinConsumer.Enable {
		var err error
		kafkaMgr, err = kafka.NewConsumerManager(cfg, redisStore)
		if err != nil {
			return nil, err
		}
	}

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		CronMgr:      cronMgr,
		KafkaManager: kafkaMgr,
	}, nil
}
