package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"

	"grdthumb/pkg/config"
	"grdthumb/pkg/pipeline"
)

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <input.tif> <0-1|-1-1|0-255> <maxWidth> <maxHeight> <output.png>\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "       %s [flags] <input.tif> <output.png>\n\n", os.Args[0])
	fmt.Fprintln(os.Stderr, "Reads a GRD raster, normalizes and calibrates it to decibel backscatter,")
	fmt.Fprintln(os.Stderr, "downsamples it to fit the given bounds and writes an 8-bit grayscale PNG.")
	fmt.Fprintln(os.Stderr, "The short form takes the format and bounds from the configuration file.")
	fmt.Fprintln(os.Stderr, "\nFlags:")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "grdthumb.yaml", "Path to the YAML configuration file")
	flag.Usage = usage
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	params := &pipeline.Params{
		Format:    cfg.Normalization.Format,
		MaxWidth:  cfg.Thumbnail.MaxWidth,
		MaxHeight: cfg.Thumbnail.MaxHeight,
		Verbose:   cfg.Output.Verbose,
	}

	switch flag.NArg() {
	case 2:
		params.InputPath = flag.Arg(0)
		params.OutputPath = flag.Arg(1)
	case 5:
		params.InputPath = flag.Arg(0)
		params.Format = flag.Arg(1)
		params.MaxWidth, err = strconv.Atoi(flag.Arg(2))
		if err != nil {
			log.Fatalf("Invalid max width %q: %v", flag.Arg(2), err)
		}
		params.MaxHeight, err = strconv.Atoi(flag.Arg(3))
		if err != nil {
			log.Fatalf("Invalid max height %q: %v", flag.Arg(3), err)
		}
		params.OutputPath = flag.Arg(4)
	default:
		flag.Usage()
		os.Exit(1)
	}

	img, err := pipeline.New(params).Run()
	if err != nil {
		log.Fatalf("Error in execution: %v", err)
	}

	log.Printf("Image ID: %s, Timestamp: %s", img.ProductID, img.Timestamp.Format("2006-01-02T15:04:05"))
	log.Printf("Thumbnail saved to: %s (%dx%d)", params.OutputPath, img.Grid.Width, img.Grid.Height)
}
