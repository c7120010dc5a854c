package server

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mitchellh/cli"
	"github.com/yusufsyaifudin/appkeeper/container"
	"github.com/yusufsyaifudin/appkeeper/extd"
	"github.com/yusufsyaifudin/appkeeper/pkg/logger"
)

const (
	ExitSuccess = 0
	ExitErr     = 1
)

type Cmd struct {
	flags      *flag.FlagSet
	appName    string
	appVersion string
	configFile string
}

var _ cli.Command = (*Cmd)(nil)
var _ cli.CommandFactory = NewCmd("", "")

func NewCmd(appName, appVersion string) func() (cli.Command, error) {
	return func() (cli.Command, error) {
		cmd := &Cmd{
			appName:    appName,
			appVersion: appVersion,
		}
		err := cmd.init()
		return cmd, err
	}
}

func (c *Cmd) init() error {
	c.flags = flag.NewFlagSet("server", flag.ContinueOnError)
	c.flags.StringVar(&c.configFile, "config", "config.yml",
		"Config file to load, defaults are used when the file does not exist")
	c.flags.StringVar(&c.configFile, "c", "config.yml",
		"Alias for config file to load")
	return nil
}

func (c *Cmd) Help() string {
	return strings.TrimSpace(fmt.Sprintf(`
Usage: %s server [-config config.yml]

  Start the HTTP server of %s %s.
`, c.appName, c.appName, c.appVersion))
}

func (c *Cmd) Synopsis() string {
	return "Start the HTTP server"
}

func (c *Cmd) loadConfig() (container.Config, error) {
	cfg, err := container.LoadConfig(c.configFile)
	if errors.Is(err, os.ErrNotExist) {
		log.Printf("config %s not found, using defaults", c.configFile)
		return container.DefaultConfig(), nil
	}

	return cfg, err
}

func (c *Cmd) Run(args []string) int {
	err := c.flags.Parse(args)
	if err != nil {
		log.Printf("error parsing config argument: %s", err)
		return ExitErr
	}

	cfg, err := c.loadConfig()
	if err != nil {
		log.Printf("error load config: %s", err)
		return ExitErr
	}

	ctx, closeLog, err := extd.SetupLog(context.Background(), cfg.Log)
	if err != nil {
		log.Printf("error setup logger: %s", err)
		return ExitErr
	}

	defer func() {
		if _err := closeLog(); _err != nil {
			log.Printf("error close logger: %s", _err)
		}
	}()

	logger.Info(ctx, "~ logger already prepared", logger.KV("version", c.appVersion))

	err = extd.RunServer(ctx, cfg)
	if err != nil {
		return ExitErr
	}

	return ExitSuccess
}
