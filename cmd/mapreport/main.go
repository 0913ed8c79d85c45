package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/Garsondee/Symbol-Sense/internal/config"
	"github.com/Garsondee/Symbol-Sense/internal/logging"
	"github.com/Garsondee/Symbol-Sense/internal/mapfile"
	"github.com/Garsondee/Symbol-Sense/internal/symbol"
)

type mapStats struct {
	units  int
	arrows int

	byFrame       map[string]int
	byAffiliation map[string]int
	perOrigin     map[string]int
	dangling      []string

	hasBounds bool
	min, max  symbol.Vec2
}

func main() {
	fs := pflag.NewFlagSet("mapreport", pflag.ExitOnError)
	cfgPath := fs.String("config", "", "config file (json, yaml or toml)")
	mapName := fs.String("map", "", "map file, relative to the save directory")
	geoOut := fs.String("geojson", "", "also write the map as a GeoJSON feature collection to this path")
	withProfile := fs.Bool("profile", false, "write a CPU profile to the working directory")
	_ = fs.Parse(os.Args[1:])

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}
	log := logging.Component(logging.New(cfg.LogLevel, os.Stderr), "mapreport")

	if *mapName == "" {
		fmt.Println("error: --map is required")
		os.Exit(2)
	}
	if *withProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	}

	path := mapfile.ResolvePath(cfg.Saves.Dir, *mapName)
	doc, err := mapfile.Load(path)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("load failed")
		os.Exit(1)
	}

	fmt.Printf("=== Map Report ===\n")
	fmt.Printf("map=%s\n\n", path)
	printStats(os.Stdout, summarize(doc))

	if *geoOut != "" {
		if err := writeGeoJSON(*geoOut, doc, log); err != nil {
			log.Error().Err(err).Str("path", *geoOut).Msg("geojson export failed")
			os.Exit(1)
		}
	}
}

func writeGeoJSON(path string, doc mapfile.Document, log zerolog.Logger) error {
	bz, err := mapfile.ExportGeoJSON(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, bz, 0o644); err != nil {
		return err
	}
	log.Info().Str("path", path).Int("bytes", len(bz)).Msg("geojson written")
	return nil
}

func summarize(doc mapfile.Document) mapStats {
	st := mapStats{
		units:         len(doc.Units),
		arrows:        len(doc.Arrows),
		byFrame:       make(map[string]int),
		byAffiliation: make(map[string]int),
		perOrigin:     make(map[string]int),
	}
	ids := make(map[string]struct{}, len(doc.Units))
	for _, u := range doc.Units {
		ids[u.ID] = struct{}{}
		st.byFrame[strings.ToLower(u.FrameType)]++
		st.byAffiliation[symbol.Affiliation(u.Affiliation).String()]++
		st.grow(u.WorldPos)
	}
	for _, a := range doc.Arrows {
		st.perOrigin[a.FromUnitID]++
		if _, ok := ids[a.FromUnitID]; !ok {
			st.dangling = append(st.dangling, a.FromUnitID)
		}
		st.grow(a.From)
		st.grow(a.To)
	}
	sort.Strings(st.dangling)
	return st
}

func (st *mapStats) grow(p symbol.Vec2) {
	if !st.hasBounds {
		st.min, st.max, st.hasBounds = p, p, true
		return
	}
	st.min = symbol.V(math.Min(st.min.X, p.X), math.Min(st.min.Y, p.Y))
	st.max = symbol.V(math.Max(st.max.X, p.X), math.Max(st.max.Y, p.Y))
}

func printStats(w io.Writer, st mapStats) {
	fmt.Fprintf(w, "units=%d arrows=%d\n", st.units, st.arrows)
	fmt.Fprintf(w, "  by frame:       %s\n", formatCounts(st.byFrame))
	fmt.Fprintf(w, "  by affiliation: %s\n", formatCounts(st.byAffiliation))
	fmt.Fprintf(w, "  arrows/origin:  %s\n", formatCounts(st.perOrigin))
	if len(st.dangling) > 0 {
		fmt.Fprintf(w, "  dangling:       %d (%s)\n", len(st.dangling), strings.Join(st.dangling, ", "))
	} else {
		fmt.Fprintf(w, "  dangling:       0\n")
	}
	if st.hasBounds {
		fmt.Fprintf(w, "  bounds:         (%.2f,%.2f)-(%.2f,%.2f) size %.2fx%.2f\n",
			st.min.X, st.min.Y, st.max.X, st.max.Y, st.max.X-st.min.X, st.max.Y-st.min.Y)
	} else {
		fmt.Fprintf(w, "  bounds:         -\n")
	}
}

func formatCounts(m map[string]int) string {
	if len(m) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, m[k]))
	}
	return strings.Join(parts, " ")
}
