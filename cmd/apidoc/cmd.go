package apidoc

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mitchellh/cli"
	"github.com/yusufsyaifudin/appkeeper/transport/restapi/apidoc"
)

type Cmd struct {
	flags  *flag.FlagSet
	outDir string
}

var _ cli.Command = (*Cmd)(nil)

func NewCmd() (cli.Command, error) {
	cmd := &Cmd{}
	cmd.flags = flag.NewFlagSet("apidoc", flag.ContinueOnError)
	cmd.flags.StringVar(&cmd.outDir, "out", "docs", "Directory openapi.json and openapi.yaml are written to")
	return cmd, nil
}

func (a *Cmd) Help() string {
	return "Usage: apidoc [-out docs]\n\n  Generate the OpenAPI 3 document as openapi.json and openapi.yaml."
}

func (a *Cmd) Synopsis() string {
	return "generate apidoc json and yaml"
}

func (a *Cmd) Run(args []string) int {
	if err := a.flags.Parse(args); err != nil {
		log.Println(err)
		return 1
	}

	if err := Generate(context.Background(), a.outDir); err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

// Generate writes openapi.json and openapi.yaml into dir, overwriting previous files.
func Generate(ctx context.Context, dir string) error {
	doc, err := apidoc.Build(ctx)
	if err != nil {
		return err
	}

	j, err := apidoc.JSON(doc)
	if err != nil {
		return err
	}

	y, err := apidoc.YAML(doc)
	if err != nil {
		return err
	}

	err = os.MkdirAll(dir, os.ModePerm)
	if err != nil {
		return fmt.Errorf("cannot create directory %s: %w", dir, err)
	}

	err = WriteFile(j, filepath.Join(dir, "openapi.json"))
	if err != nil {
		return err
	}

	return WriteFile(y, filepath.Join(dir, "openapi.yaml"))
}

func WriteFile(content []byte, fileName string) (err error) {
	file, err := os.OpenFile(fileName, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		err = fmt.Errorf("cannot open file %s: %w", fileName, err)
		return
	}

	defer func() {
		if _err := file.Close(); _err != nil && err == nil {
			err = fmt.Errorf("cannot close file: %s: %w", fileName, _err)
		}
	}()

	_, err = file.Write(content)
	if err != nil {
		err = fmt.Errorf("cannot overwrite file %s: %w", fileName, err)
		return
	}

	return
}
