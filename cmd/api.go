package cmd

import (
	"context"

	gconfig "github.com/Laisky/go-config/v2"
	gcmd "github.com/Laisky/go-utils/v6/cmd"
	"github.com/Laisky/zap"
	redisLib "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"fileserver/internal/web"
	"fileserver/internal/web/files/controller"
	"fileserver/internal/web/files/dao"
	"fileserver/internal/web/files/model"
	"fileserver/internal/web/files/service"
	"fileserver/library/db/postgres"
	"fileserver/library/db/redis"
	"fileserver/library/jwt"
	"fileserver/library/log"
)

var apiCMD = &cobra.Command{
	Use:   "api",
	Short: "api",
	Long:  `file storage API service`,
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
			RODSN: gconfig.Shared.GetString("settings.db.ro_dsn"),
		})
		if err != nil {
			log.Logger.Panic("connect database", zap.Error(err))
		}
		defer db.Close()

		if err = model.Migrate(ctx, db.RW(), nil); err != nil {
			log.Logger.Panic("migrate", zap.Error(err))
		}

		var cache controller.Cache
		if addr := gconfig.Shared.GetString("settings.redis.addr"); addr != "" {
			rdb := redis.NewDB(&redisLib.Options{
				Addr: addr,
				DB:   gconfig.Shared.GetInt("settings.redis.db"),
			})
			defer rdb.Close()
			cache = rdb
		}

		svc, err := service.New(
			dao.New(db.RW(), db.RO()),
			gconfig.Shared.GetString("settings.static_root"),
			int64(gconfig.Shared.GetInt("settings.max_file_size_kb")),
			nil,
		)
		if err != nil {
			log.Logger.Panic("new service", zap.Error(err))
		}

		tokenizer, err := jwt.New([]byte(gconfig.Shared.GetString("settings.secret")))
		if err != nil {
			log.Logger.Panic("new jwt", zap.Error(err))
		}

		web.RunServer(
			gconfig.Shared.GetString("listen"),
			controller.New(svc, tokenizer, cache),
		)
	},
}

func init() {
	rootCMD.AddCommand(apiCMD)
}
