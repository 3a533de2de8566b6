package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"gcgviz/internal/server"
)

func serveCmd(app *App) *cobra.Command {
	var port int
	var dev bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port > 0 {
				app.Config.Server.Port = port
			}
			if dev {
				app.Config.Server.DevMode = true
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv := server.New(app.Config, app.Store, app.WriteLock, app.Logger)
			return srv.Run(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "服务端口 (覆盖配置文件)")
	cmd.Flags().BoolVar(&dev, "dev", false, "开发模式")
	return cmd
}
