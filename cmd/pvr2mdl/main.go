package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"pvr2mdl/internal/config"
	"pvr2mdl/internal/convert"
	"pvr2mdl/internal/mdl"
)

const version = "1.0"

const usage = `How to use:
  pvr2mdl <model.mdl>           convert PVR textures to 8-bit bitmaps in place
  pvr2mdl extract <model.mdl>   write every texture to <model.mdl>-textures/
  pvr2mdl inject <model.mdl>    put edited bitmaps from <model.mdl>-textures/ back

The original model is kept as <model>-backup.mdl.
Settings are read from pvr2mdl.json next to the program or in the working directory.`

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{
		Out:          os.Stdout,
		PartsExclude: []string{zerolog.TimestampFieldName},
	})

	fmt.Printf("\nPVR2MDL v%s\n\n", version)
	os.Exit(run(os.Args[1:], log))
}

func run(args []string, log zerolog.Logger) int {
	var mode, path string
	switch {
	case len(args) == 0:
		fmt.Println(usage)
		return 0
	case len(args) == 1:
		mode, path = "repack", args[0]
	case len(args) == 2 && (args[0] == "extract" || args[0] == "inject"):
		mode, path = args[0], args[1]
	default:
		fmt.Println("Can't recognise arguments.")
		return 0
	}

	log.Info().Str("file", path).Msg("Processing file")
	if !strings.EqualFold(filepath.Ext(path), ".mdl") {
		fmt.Println("Wrong file extension.")
		return 0
	}

	cfg, cfgPath, err := config.Discover()
	if err != nil {
		log.Error().Err(err).Msg("Error loading config")
		return 1
	}
	if cfgPath != "" {
		log.Debug().Str("config", cfgPath).Msg("Loaded config")
	}
	opts, err := convert.NewOptions(cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("Invalid config")
		return 1
	}

	variant, err := convert.Identify(path)
	if err != nil {
		log.Error().Err(err).Msg("Can't open model file")
		return 1
	}
	switch variant {
	case mdl.Normal:
	case mdl.NoTextures, mdl.SequenceOnly, mdl.Dummy:
		fmt.Println("Can't find texture data ...")
		return 0
	default:
		fmt.Println("Can't recognise model file ...")
		return 0
	}

	var reports []convert.TextureReport
	switch mode {
	case "repack":
		reports, err = convert.Repack(path, opts)
	case "extract":
		reports, err = convert.Extract(path, opts)
	case "inject":
		reports, err = convert.Inject(path, opts)
	}
	return report(log, mode, reports, err)
}

func report(log zerolog.Logger, mode string, reports []convert.TextureReport, err error) int {
	switch {
	case err == nil:
		log.Info().Str("mode", mode).Int("textures", len(reports)).Msg("Done!")
		return 0
	case errors.Is(err, convert.ErrAlreadyConverted):
		log.Info().Err(err).Msg("Model is already converted, nothing to do")
		return 0
	case errors.Is(err, convert.ErrNoChanges):
		log.Info().Err(err).Msg("No bitmaps found, model left unchanged")
		return 0
	case errors.Is(err, mdl.ErrMalformed):
		log.Warn().Err(err).Msg("Can't process model file")
		return 0
	default:
		log.Error().Err(err).Str("mode", mode).Msg("Failed")
		return 1
	}
}
