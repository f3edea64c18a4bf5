// cmd/api/main.go
package main

import (
	"os"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var version = "dev"

// @title           SMS Guide API
// @version         1.0
// @description     Crowd-sourced reports on SMS verification relay sites.
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	app := cli.NewApp()
	app.Name = path.Base(os.Args[0])
	app.Usage = "smsguide api server and maintenance tasks"
	app.Version = version
	app.Flags = globalFlags()
	app.Before = before
	app.Commands = []*cli.Command{
		serveCommand(),
		migrateCommand(),
		seedCommand(),
		versionCommand(),
	}
	app.CommandNotFound = func(c *cli.Context, command string) {
		logrus.Fatalf("Command %s not found.", command)
	}

	if err := app.Run(os.Args); err != nil {
		logrus.Fatal(err)
	}
}
