package main

import (
	"fmt"
	"log"
	"os"

	dig_container "github.com/umeedfoundation/console/apps/api/di/dig"
	"github.com/umeedfoundation/console/core"
	"github.com/umeedfoundation/console/core/report"
	"github.com/umeedfoundation/console/core/user"
)

func main() {
	c := dig_container.New()

	var code int
	err := c.Invoke(func(conf *core.Config, logger core.Logger, verifier *user.Verifier, reports report.ServiceInterface) {
		defer func() {
			if s, ok := logger.(interface{ Sync() error }); ok {
				_ = s.Sync()
			}
		}()

		cli, err := newCommandLine(conf, logger, verifier, reports)
		if err != nil {
			logger.Error(fmt.Sprintf("could not start: %v", err), err)
			code = 1
			return
		}
		if err = cli.rootCmd().Execute(); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			code = 1
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}
