package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/ConcordiaPaulaLagoTeaching/file-sharing-server-team-hs/filesystem"
	"github.com/ConcordiaPaulaLagoTeaching/file-sharing-server-team-hs/server"
)

func main() {
	app := cli.App{
		Name:        "fileserver",
		Description: "a fixed-capacity block file store behind a line-protocol TCP server",
		Commands: []*cli.Command{{
			Name:        "serve",
			Description: "mount the disk image and serve clients",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "addr",
					Usage: "listen address (host:port)",
				},
				&cli.StringFlag{
					Name:  "disk",
					Usage: "path of the backing disk image",
				},
			},
			Action: serve,
		}, {
			Name:        "format",
			Description: "initialize a fresh disk image without serving",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "disk",
					Usage: "path of the backing disk image",
				},
			},
			Action: format,
		}},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(ctx *cli.Context) (*Config, error) {
	c, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	if addr := ctx.String("addr"); addr != "" {
		c.Addr = addr
	}
	if disk := ctx.String("disk"); disk != "" {
		c.Disk = disk
	}
	if c.Debug {
		log.SetLevel(log.DebugLevel)
	}
	return c, nil
}

func serve(ctx *cli.Context) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	fs, err := filesystem.Mount(c.Disk, filesystem.DefaultGeometry)
	if err != nil {
		return err
	}
	defer fs.Close()
	return server.New(fs).ListenAndServe(c.Addr)
}

func format(ctx *cli.Context) error {
	c, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	if _, err := os.Stat(c.Disk); err == nil {
		if err := os.Remove(c.Disk); err != nil {
			return err
		}
	}
	fs, err := filesystem.Mount(c.Disk, filesystem.DefaultGeometry)
	if err != nil {
		return err
	}
	return fs.Close()
}
