// Package main provides the tidecal HTTP server: it generates the calendar
// for one station's annual prediction file at startup and serves it.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/saltline/tidecal/internal/adapter/ephem"
	"github.com/saltline/tidecal/internal/adapter/store/noaa"
	"github.com/saltline/tidecal/internal/config"
	httpHandler "github.com/saltline/tidecal/internal/http"
	"github.com/saltline/tidecal/internal/usecase"
)

const version = "0.1.0"

func main() {
	input := flag.String("input", "", "Path to a NOAA annual tide prediction file (required)")
	configPath := flag.String("config", "tidecal.yaml", "Path to the YAML config file")
	showVersion := flag.Bool("version", false, "Show version information")
	flag.Parse()

	if *showVersion {
		fmt.Printf("tidecal-server version %s\n", version)
		return
	}

	if *input == "" {
		fmt.Println("USAGE: tidecal-server -input <noaa_annual_file.txt> [-config tidecal.yaml]")
		fmt.Println()
		fmt.Println("ENVIRONMENT VARIABLES:")
		fmt.Println("  PORT                    Server port (overrides config listen address)")
		fmt.Println("  CORS_ALLOWED_ORIGINS    Comma-separated list of allowed origins (default: all origins)")
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	log.Printf("Starting tidecal server...")
	log.Printf("Reading tide predictions from %s", *input)

	station, events, year, err := noaa.LoadRun(*input, cfg.StationInfo)
	if err != nil {
		log.Fatalf("Failed to load tide data: %v", err)
	}
	log.Printf("Station: %s, %s (%s)", station.Name, station.State, station.ID)

	oracle := ephem.NewCached(ephem.NewOracle(station.Latitude, station.Longitude))
	uc := usecase.NewCalendarUseCase(oracle)

	calendar, err := uc.Execute(usecase.CalendarRequest{
		Station:    station,
		Events:     events,
		Year:       year,
		TideStep:   cfg.TideStep(),
		TideMargin: cfg.TideMargin(),
	})
	if err != nil {
		log.Fatalf("Calendar generation failed: %v", err)
	}
	for _, w := range calendar.Warnings {
		log.Printf("Warning: %s", w)
	}
	log.Printf("Calendar ready: %d days for %d", len(calendar.Days), calendar.Year)

	router := httpHandler.SetupRouter(calendar)

	addr := cfg.Listen
	if port := os.Getenv("PORT"); port != "" {
		addr = fmt.Sprintf(":%s", port)
	}
	log.Printf("Server listening on %s", addr)
	log.Printf("API endpoints:")
	log.Printf("  - GET /health")
	log.Printf("  - GET /v1/station")
	log.Printf("  - GET /v1/calendar")
	log.Printf("  - GET /v1/calendar/:date")

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
