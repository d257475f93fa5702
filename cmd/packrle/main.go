package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func newApp() *cli.App {
	containerFlag := &cli.StringFlag{
		Name:    "container",
		Aliases: []string{"c"},
		Usage:   "outer compression around the block stream: none, gzip, or lz4",
		Value:   "gzip",
	}

	return &cli.App{
		Name:  "packrle",
		Usage: "Run-length encode and decode files with a PackBits-style codec",
		Commands: []*cli.Command{
			{
				Name:      "compress",
				Usage:     "Encode a file",
				Action:    compressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags:     []cli.Flag{containerFlag},
			},
			{
				Name:      "decompress",
				Usage:     "Decode a file produced by `compress`",
				Action:    decompressFile,
				ArgsUsage: "INPUT_FILE  OUTPUT_FILE",
				Flags:     []cli.Flag{containerFlag},
			},
			{
				Name:      "inspect",
				Usage:     "Print a CSV manifest of the blocks in an encoded file",
				Action:    inspectFile,
				ArgsUsage: "INPUT_FILE",
				Flags:     []cli.Flag{containerFlag},
			},
		},
	}
}
