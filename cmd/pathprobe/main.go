package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"route-view-service/internal/adapters/routing"
	"route-view-service/internal/domain"
)

// pathprobe fetches one road path from the routing provider and prints
// the geometry, which makes provider issues diagnosable without the
// server in the way.
//
//	pathprobe -base https://router.project-osrm.org 35.0,139.0 35.1,139.1
func main() {
	base := flag.String("base", "https://router.project-osrm.org", "routing provider base URL")
	profile := flag.String("profile", "driving", "routing profile")
	flag.Parse()

	if flag.NArg() < 2 {
		log.Fatal("need at least two lat,lng waypoints")
	}

	waypoints := make([]domain.Coordinates, 0, flag.NArg())
	for _, arg := range flag.Args() {
		c, err := parseCoord(arg)
		if err != nil {
			log.Fatalf("bad waypoint %q: %v", arg, err)
		}
		waypoints = append(waypoints, c)
	}

	provider, err := routing.NewOSRMRouteProvider(*base, *profile, nil)
	if err != nil {
		log.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	path, err := provider.FetchRoutePath(ctx, waypoints)
	if err != nil {
		log.Fatalf("fetch route path: %v", err)
	}

	fmt.Printf("points=%d\n", len(path))
	for _, c := range path {
		fmt.Printf("%.6f,%.6f\n", c.Lat, c.Lng)
	}
}

func parseCoord(s string) (domain.Coordinates, error) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return domain.Coordinates{}, fmt.Errorf("expected lat,lng")
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lat: %w", err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("parse lng: %w", err)
	}

	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
