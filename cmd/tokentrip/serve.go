package main

import (
	"net/http"

	"github.com/codegangsta/negroni"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tokentrip-marketplace/config"
	c "tokentrip-marketplace/context"
	"tokentrip-marketplace/logger"
	"tokentrip-marketplace/router"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the marketplace HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		muxRouter := router.Router(ctx)

		n := negroni.New()
		n.UseHandler(muxRouter)

		srv := &http.Server{
			Addr:         viper.GetString(config.Port),
			Handler:      n,
			ReadTimeout:  c.DefaultHttpTimeout,
			WriteTimeout: c.DefaultHttpTimeout,
		}
		logger.Infof(ctx, "serve: listening on %s", srv.Addr)
		return srv.ListenAndServe()
	},
}
