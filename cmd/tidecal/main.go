// Package main provides the tidecal batch generator: a NOAA annual tide
// prediction file in, a fully populated calendar JSON out.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/saltline/tidecal/internal/adapter/ephem"
	"github.com/saltline/tidecal/internal/adapter/store/noaa"
	"github.com/saltline/tidecal/internal/config"
	"github.com/saltline/tidecal/internal/usecase"
)

const version = "0.1.0"

func main() {
	input := flag.String("input", "", "Path to a NOAA annual tide prediction file (required)")
	configPath := flag.String("config", "tidecal.yaml", "Path to the YAML config file")
	output := flag.String("out", "", "Calendar JSON output path (overrides config)")
	stationInfo := flag.String("station-info", "", "Station metadata CSV path (overrides config)")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tidecal version %s\n", version)
		return
	}

	if *input == "" {
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *output != "" {
		cfg.Output = *output
	}
	if *stationInfo != "" {
		cfg.StationInfo = *stationInfo
	}

	log.Printf("Reading tide predictions from %s", *input)
	station, events, year, err := noaa.LoadRun(*input, cfg.StationInfo)
	if err != nil {
		log.Fatalf("Failed to load tide data: %v", err)
	}
	log.Printf("Station: %s, %s (%s, %s)", station.Name, station.State, station.ID, station.Type)
	log.Printf("Loaded %d tide events for %d", len(events), year)

	oracle := ephem.NewCached(ephem.NewOracle(station.Latitude, station.Longitude))
	uc := usecase.NewCalendarUseCase(oracle)

	response, err := uc.Execute(usecase.CalendarRequest{
		Station:    station,
		Events:     events,
		Year:       year,
		TideStep:   cfg.TideStep(),
		TideMargin: cfg.TideMargin(),
	})
	if err != nil {
		log.Fatalf("Calendar generation failed: %v", err)
	}
	for _, w := range response.Warnings {
		log.Printf("Warning: %s", w)
	}
	log.Printf("Calendar complete: %d days", len(response.Days))

	data, err := json.MarshalIndent(response, "", "  ")
	if err != nil {
		log.Fatalf("Failed to encode calendar: %v", err)
	}
	if err := os.WriteFile(cfg.Output, data, 0o644); err != nil { //nolint:gosec // G306: shared output artifact.
		log.Fatalf("Failed to write %s: %v", cfg.Output, err)
	}
	log.Printf("Wrote %s", cfg.Output)
}

// printUsage prints usage information.
func printUsage() {
	fmt.Printf("tidecal v%s - tide and sky calendar generator\n\n", version)
	fmt.Println("USAGE:")
	fmt.Println("  tidecal -input <noaa_annual_file.txt> [flags]")
	fmt.Println()
	fmt.Println("FLAGS:")
	fmt.Println("  -input         Path to a NOAA annual tide prediction file (required)")
	fmt.Println("  -config        YAML config path (default: tidecal.yaml)")
	fmt.Println("  -out           Calendar JSON output path (overrides config)")
	fmt.Println("  -station-info  Station metadata CSV path (overrides config)")
	fmt.Println("  -version       Show version information")
	fmt.Println()
	fmt.Println("EXAMPLES:")
	fmt.Println("  # Generate a calendar for a Santa Cruz annual prediction file")
	fmt.Println("  tidecal -input 9413745_annual.txt -out santacruz_2015.json")
	fmt.Println()
}
