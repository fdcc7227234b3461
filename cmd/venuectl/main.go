package main

import (
	"context"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"partyplanner/internal/config"
	"partyplanner/internal/places"
	"partyplanner/internal/service"
	"partyplanner/internal/weather"
)

var (
	Version = "dev"

	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "venuectl",
	Short:         "Resolve and search birthday party venues from the command line",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := log.WarnLevel
		if verbose {
			level = log.DebugLevel
		}
		log.DefaultLogger = log.Logger{
			Level:  level,
			Writer: &log.ConsoleWriter{Writer: os.Stderr, ColorOutput: true},
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline details to stderr")
	rootCmd.AddCommand(venuesCmd, lookupCmd, weatherCmd)
}

// deps are the clients shared by every command
type deps struct {
	cfg     *config.Config
	places  *places.Client
	weather *weather.Client
	llm     service.TextGenerator
}

func setup(ctx context.Context, needPlaces bool) (*deps, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if needPlaces {
		if err := cfg.RequirePlaces(); err != nil {
			return nil, err
		}
	}

	p := places.NewClient(cfg.Places)
	d := &deps{
		cfg:     cfg,
		places:  p,
		weather: weather.NewClient(cfg.Weather, weather.WithGeocoder(p)),
	}
	d.llm, err = service.NewTextGenerator(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("❌ Command failed")
		os.Exit(1)
	}
}
