package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dargueta/packrle"
	"github.com/dargueta/packrle/utilities/compression"
	"github.com/urfave/cli/v2"
)

func containerFromFlags(context *cli.Context) (compression.Container, error) {
	return compression.ParseContainer(context.String("container"))
}

// openFiles opens the first argument for reading and creates the second. The
// caller must close both.
func openFiles(context *cli.Context) (*os.File, *os.File, error) {
	if context.NArg() != 2 {
		return nil, nil, packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("expected 2 arguments, got %d", context.NArg()))
	}

	sourceFilePath := context.Args().Get(0)
	outputFilePath := context.Args().Get(1)

	sourceFile, err := os.Open(sourceFilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open `%s` for reading: %w", sourceFilePath, err)
	}

	outFile, err := os.Create(outputFilePath)
	if err != nil {
		sourceFile.Close()
		return nil, nil, fmt.Errorf("failed to open `%s` for writing: %w", outputFilePath, err)
	}
	return sourceFile, outFile, nil
}

// closeOutput closes the file being written. Data may only reach the disk on
// close, so a failure there fails the command. An earlier error takes
// precedence.
func closeOutput(outFile io.Closer, err error) error {
	closeErr := outFile.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return packrle.ErrSinkWrite.Wrap(closeErr)
	}
	return nil
}

func compressFile(context *cli.Context) error {
	container, err := containerFromFlags(context)
	if err != nil {
		return err
	}

	sourceFile, outFile, err := openFiles(context)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	nWritten, err := compression.Pack(sourceFile, outFile, container)
	err = closeOutput(outFile, err)
	if err != nil {
		return fmt.Errorf("error compressing file: %w", err)
	}

	fmt.Fprintf(
		context.App.ErrWriter,
		"Encoded input file to %d bytes before %s.\n",
		nWritten,
		container,
	)
	return nil
}

func decompressFile(context *cli.Context) error {
	container, err := containerFromFlags(context)
	if err != nil {
		return err
	}

	sourceFile, outFile, err := openFiles(context)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	nWritten, err := compression.Unpack(sourceFile, outFile, container)
	err = closeOutput(outFile, err)
	if err != nil {
		return fmt.Errorf("error expanding file: %w", err)
	}

	fmt.Fprintf(context.App.ErrWriter, "Decompressed input file to %d bytes.\n", nWritten)
	return nil
}

func inspectFile(context *cli.Context) error {
	container, err := containerFromFlags(context)
	if err != nil {
		return err
	}
	if context.NArg() != 1 {
		return packrle.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("expected 1 argument, got %d", context.NArg()))
	}

	sourceFile, err := os.Open(context.Args().First())
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	wire, err := compression.NewContainerReader(sourceFile, container)
	if err != nil {
		return err
	}
	defer wire.Close()

	blocks, err := compression.ReadBlocks(wire)
	if err != nil {
		return err
	}

	err = compression.WriteManifest(context.App.Writer, blocks)
	if err != nil {
		return err
	}

	stats := compression.Analyze(blocks)
	fmt.Fprintf(
		context.App.ErrWriter,
		"%d blocks (%d runs, %d literals), %d -> %d bytes (%.1f%%), %d distinct run bytes\n",
		stats.Blocks,
		stats.RunBlocks,
		stats.LiteralBlocks,
		stats.DecodedSize,
		stats.EncodedSize,
		stats.Ratio()*100,
		stats.DistinctRunSymbols(),
	)
	return nil
}
