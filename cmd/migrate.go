package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	"github.com/spf13/cobra"

	"fileserver/internal/web/files/model"
	"fileserver/library/db/postgres"
	"fileserver/library/log"
)

var migrateCMD = &cobra.Command{
	Use:   "migrate",
	Short: "migrate",
	Long:  `migrate db`,
	Args:  gcmd.NoExtraArgs,
	PreRun: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		if err := initialize(ctx, cmd); err != nil {
			log.Logger.Panic("init", zap.Error(err))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		db, err := postgres.New(ctx, postgres.DialInfo{
			RWDSN: gconfig.Shared.GetString("settings.db.rw_dsn"),
		})
		if err != nil {
			log.Logger.Panic("connect database", zap.Error(err))
		}
		defer db.Close()

		if err = model.Migrate(ctx, db.RW(), nil); err != nil {
			log.Logger.Panic("migrate", zap.Error(err))
		}
	},
}

func init() {
	rootCMD.AddCommand(migrateCMD)
}
