package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"partyplanner/internal/model"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup [name] [city]",
	Short: "Look up one venue by name",
	Long:  `Find the best matching place for a venue name in a city and print its details.`,
	Args:  cobra.ExactArgs(2),
	RunE:  runLookup,
}

func runLookup(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := setup(ctx, true)
	if err != nil {
		return err
	}

	name, city := args[0], args[1]
	var bias *model.Coordinate
	if c, err := d.places.Geocode(ctx, city); err == nil {
		bias = c
	}

	placeID, err := d.places.FindPlaceID(ctx, name+" "+city, bias, d.cfg.Venue.ResolveRadiusM)
	if err != nil {
		return fmt.Errorf("no place found for %q in %s: %w", name, city, err)
	}
	rec, err := d.places.Details(ctx, placeID)
	if err != nil {
		return fmt.Errorf("failed to get details for %s: %w", placeID, err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s\n", rec.Name)
	fmt.Fprintf(out, "  id:       %s\n", rec.PlaceID)
	fmt.Fprintf(out, "  address:  %s\n", rec.FormattedAddress)
	if rec.Rating != nil {
		fmt.Fprintf(out, "  rating:   %.1f\n", *rec.Rating)
	}
	if p := rec.PriceText(); p != "" {
		fmt.Fprintf(out, "  price:    %s\n", p)
	}
	if len(rec.Types) > 0 {
		fmt.Fprintf(out, "  types:    %s\n", strings.Join(rec.Types, ", "))
	}
	if rec.Website != "" {
		fmt.Fprintf(out, "  website:  %s\n", rec.Website)
	}
	fmt.Fprintf(out, "  maps:     %s\n", rec.MapsURL)
	return nil
}
