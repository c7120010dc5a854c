package main

import (
	"log"
	"os"

	"github.com/mitchellh/cli"
	"github.com/yusufsyaifudin/appkeeper/assets"
	"github.com/yusufsyaifudin/appkeeper/cmd/apidoc"
	"github.com/yusufsyaifudin/appkeeper/cmd/server"
)

func main() {
	appName, appVersion := assets.ServiceName, assets.ServiceVersion

	serverCmd := server.NewCmd(appName, appVersion)

	c := cli.NewCLI(appName, appVersion)
	c.Args = os.Args[1:]
	c.Autocomplete = true
	c.Commands = map[string]cli.CommandFactory{
		"":       serverCmd, // default command if no subcommand defined
		"server": serverCmd,
		"apidoc": apidoc.NewCmd,
	}

	exitStatus, err := c.Run()
	if err != nil {
		log.Println(err)
	}

	os.Exit(exitStatus)
}
