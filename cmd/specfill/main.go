package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/natefinch/lumberjack"
	"github.com/openits/specfill"
	"github.com/rs/zerolog"
)

var (
	routesGeoJSON    = flag.String("routes-geojson", "", "Optional file to dump resolved leg geometries as a GeoJSON FeatureCollection")
	logFile          = flag.String("log-file", "", "Optional rotated log file; console logging stays on")
	debug            = flag.Bool("debug", false, "Enable debug logging")
	strictContinuity = flag.Bool("strict-continuity", false, "Fail on discontinuous relation segments instead of trusting member order")
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] in_spec_file out_spec_file\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(1)
	}
	inSpecFile := flag.Arg(0)
	outSpecFile := flag.Arg(1)

	_ = godotenv.Load()

	writers := []io.Writer{zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}}
	if *logFile != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   *logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	log := zerolog.New(io.MultiWriter(writers...)).With().Timestamp().Logger()
	if !*debug {
		log = log.Level(zerolog.InfoLevel)
	}

	configs, err := specfill.LoadSensingConfigs(getenvDefault("SENSING_CONFIGS_FILE", "sensing_regimes.all.specs.json"))
	if err != nil {
		log.Fatal().Err(err).Msg("can not load sensing configs")
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	osmSource := specfill.NewOSMAPIClient(
		specfill.WithOSMBaseURL(getenvDefault("OSM_API_URL", specfill.DefaultOSMAPIURL)),
		specfill.WithOSMHTTPClient(httpClient),
	)
	routeService := specfill.NewOSRMClient(
		specfill.WithOSRMBaseURL(getenvDefault("OSRM_URL", specfill.DefaultOSRMURL)),
		specfill.WithOSRMHTTPClient(httpClient),
	)
	resolver := specfill.NewRouteResolver(osmSource, routeService,
		specfill.WithStrictContinuity(*strictContinuity),
		specfill.WithLogger(log),
	)
	filler := specfill.NewSpecFiller(resolver, configs, specfill.WithFillerLogger(log))

	log.Info().Str("file", inSpecFile).Msg("reading input spec")
	spec, err := specfill.ReadSpecFromFile(inSpecFile)
	if err != nil {
		log.Fatal().Err(err).Msg("can not read input spec")
	}

	filled, err := filler.Fill(context.Background(), spec)
	if err != nil {
		log.Fatal().Err(err).Msg("spec enrichment failed")
	}

	log.Info().Str("file", outSpecFile).Msg("writing output spec")
	if err := filled.WriteToFile(outSpecFile); err != nil {
		log.Fatal().Err(err).Msg("can not write output spec")
	}

	if *routesGeoJSON != "" {
		data, err := specfill.PrepareGeoJSONRoutes(filled)
		if err != nil {
			log.Fatal().Err(err).Msg("can not build routes geojson")
		}
		if err := os.WriteFile(*routesGeoJSON, data, 0644); err != nil {
			log.Fatal().Err(err).Msg("can not write routes geojson")
		}
		log.Info().Str("file", *routesGeoJSON).Msg("routes geojson written")
	}
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
