// Command seed fills the configured block store with sample maintenance blocks for local testing.
package main

import (
	"context"
	"flag"
	"math/rand"
	"time"

	"clinicblocks/config"
	"clinicblocks/database"
	blocksRepo "clinicblocks/database/repository/blocks"
	"clinicblocks/models"
	"clinicblocks/services/blocks"
	"clinicblocks/utils"

	"go.uber.org/zap"
)

var sampleReasons = []string{
	"Mantenimiento preventivo",
	"Calibración del equipo",
	"Cambio de tubo de rayos X",
	"Limpieza y desinfección",
	"Actualización de software",
}

func openRepo(ctx context.Context) blocksRepo.BlockRepository {
	switch config.AppConfig.BlockStore {
	case "redis":
		return blocksRepo.NewRedisBlockRepo(ctx, utils.GetCacheClient())
	case "mongo":
		database.InitDB()
		repo := blocksRepo.NewMongoBlockRepo(database.Database())
		if err := blocksRepo.EnsureIndexes(ctx, repo); err != nil {
			utils.GetLogger().Fatal("failed to create block indexes", zap.Error(err))
		}
		return repo
	default:
		return blocksRepo.NewFileBlockRepo(ctx, config.AppConfig.BlockStoreFile)
	}
}

func main() {
	count := flag.Int("n", 10, "number of blocks to create")
	reset := flag.Bool("clear", false, "remove existing blocks first")
	flag.Parse()

	config.LoadConfig()
	logger := utils.GetLogger()
	if err := utils.SetVenueLocation(config.AppConfig.VenueTimezone); err != nil {
		logger.Fatal("invalid VENUE_TIMEZONE", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer database.CloseDB(ctx)

	svc := blocks.NewBlockService(openRepo(ctx), nil)
	if *reset {
		if err := svc.ClearBlocks(ctx); err != nil {
			logger.Fatal("failed to clear blocks", zap.Error(err))
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := utils.LocalDate(time.Now())
	recurrences := []models.Recurrence{models.RecurrenceNone, models.RecurrenceNone, models.RecurrenceWeekly, models.RecurrenceMonthly}

	for i := 0; i < *count; i++ {
		res := models.ResourceCatalog[rng.Intn(len(models.ResourceCatalog))].ID
		start := today.AddDate(0, 0, rng.Intn(30))
		end := start.AddDate(0, 0, rng.Intn(3))
		fromHour := 7 + rng.Intn(9)

		in := models.ResourceBlockInput{
			Resources:  []models.ResourceID{res},
			StartDate:  utils.FormatLocalDate(start),
			EndDate:    utils.FormatLocalDate(end),
			StartTime:  time.Date(0, 1, 1, fromHour, 0, 0, 0, time.UTC).Format("15:04"),
			EndTime:    time.Date(0, 1, 1, fromHour+1+rng.Intn(3), 0, 0, 0, time.UTC).Format("15:04"),
			Reason:     sampleReasons[rng.Intn(len(sampleReasons))],
			Recurrence: recurrences[rng.Intn(len(recurrences))],
		}
		if in.Recurrence.Recurs() {
			in.RecurrenceEndDate = utils.FormatLocalDate(start.AddDate(0, 3, 0))
		}

		block, err := svc.CreateBlock(ctx, in, "seed")
		if err != nil {
			logger.Warn("skipping sample block", zap.Error(err))
			continue
		}
		logger.Info("created block", zap.String("id", block.ID), zap.String("resource", string(res)),
			zap.String("startDate", block.StartDate), zap.String("recurrence", string(block.Recurrence)))
	}
}
