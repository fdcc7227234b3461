package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"partyplanner/internal/model"
	"partyplanner/internal/service"
)

var venuesCmd = &cobra.Command{
	Use:   "venues [city]",
	Short: "Run the venue pipeline for a city",
	Long:  `Ask the model for venues, verify them against Google Places and fall back to category search when none can be verified.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runVenues,
}

var (
	venueType     string
	venueAudience string
	venueCuisine  string
	venueGuests   int
	venueBudget   float64
	venueDate     string
	venueJSON     bool
)

func init() {
	venuesCmd.Flags().StringVarP(&venueType, "type", "t", model.VenueTypeIndoor, "Venue type: indoor, outdoor or hybrid")
	venuesCmd.Flags().StringVar(&venueAudience, "audience", "adults", "Audience, e.g. kids, teens, adults")
	venuesCmd.Flags().StringVarP(&venueCuisine, "cuisine", "c", "", "Cuisine category, ignored for outdoor venues")
	venuesCmd.Flags().IntVarP(&venueGuests, "guests", "g", 10, "Number of guests")
	venuesCmd.Flags().Float64VarP(&venueBudget, "budget", "b", 0, "Venue budget in TL")
	venuesCmd.Flags().StringVarP(&venueDate, "date", "d", "", "Event date, YYYY-MM-DD")
	venuesCmd.Flags().BoolVar(&venueJSON, "json", false, "Print the full result as JSON")
}

func runVenues(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	d, err := setup(ctx, true)
	if err != nil {
		return err
	}

	svc := service.NewVenueService(d.llm, d.places, d.weather, nil, d.cfg.Venue, d.cfg.Weather.TargetHour)
	res := svc.Process(ctx, model.RequestContext{
		City:       args[0],
		VenueType:  venueType,
		Audience:   venueAudience,
		GuestCount: venueGuests,
		Budget:     venueBudget,
		Cuisine:    venueCuisine,
		EventDate:  venueDate,
	})

	if venueJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(res)
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Display)
	return nil
}
