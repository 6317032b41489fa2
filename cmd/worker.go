package cmd

import (
	"cash/worker"
	"cash/worker/pricesync"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "cash background worker",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())
		log := logger.FromContext(ctx)

		database := provideDatabase()
		defer database.Close()

		system := provideSystem()

		jobs := []worker.IJob{
			pricesync.New(
				cfg.Location,
				database,
				provideCollateralStore(database),
				providePriceStore(database),
				provideOracleService(database, system),
				providePropertyStore(database),
			),
		}

		for _, job := range jobs {
			if err := job.Start(); err != nil {
				log.WithError(err).Fatalln("job start failed")
			}
		}

		<-ctx.Done()

		for _, job := range jobs {
			if err := job.Stop(); err != nil {
				log.WithError(err).Errorln("job stop failed")
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
