// rgptool records relative guide placements against a reference mesh
// and repositions guides when the mesh changes proportions.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/mgear-dev/mgear/internal/config"
	"github.com/mgear-dev/mgear/internal/logger"
	"github.com/mgear-dev/mgear/internal/mesh"
	"github.com/mgear-dev/mgear/internal/session"
	mgmath "github.com/mgear-dev/mgear/pkg/math"
	"github.com/mgear-dev/mgear/pkg/placement"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "record":
		cmdRecord(args)
	case "reposition":
		cmdReposition(args)
	case "info":
		cmdInfo(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`rgptool - relative guide placement utility

Usage:
  rgptool <command> [options]

Commands:
  record     -mesh ref.obj -guides guides.json [-o placement.json] [-samples N]
             Record guide placements relative to the reference mesh
  reposition -mesh new.obj -placement placement.json [-o guides_out.json]
             Recompute guide transforms against a deformed mesh
  info       <placement.json>
             Summarize a placement file

Examples:
  rgptool record -mesh skin_geo.obj -guides guides.json -o placement.json
  rgptool reposition -mesh skin_geo_v2.obj -placement placement.json -o updated.json
  rgptool info placement.json`)
}

func setup(fs *flag.FlagSet) (cfgPath, logLevel *string) {
	cfgPath = fs.String("config", "", "Path to config file")
	logLevel = fs.String("log-level", "", "Override log level")
	return
}

func loadConfig(cfgPath, logLevel string) *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger.Init(cfg.Logging.Level, cfg.Logging.LogFile)
	return cfg
}

func cmdRecord(args []string) {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	meshPath := fs.String("mesh", "", "Reference mesh (OBJ)")
	guidesPath := fs.String("guides", "", "Guide transforms (JSON)")
	outPath := fs.String("o", "placement.json", "Output placement file")
	samples := fs.Int("samples", 0, "Vertices sampled per guide (0 = config default)")
	cfgPath, logLevel := setup(fs)
	fs.Parse(args)

	if *meshPath == "" || *guidesPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: rgptool record -mesh ref.obj -guides guides.json [-o placement.json]")
		os.Exit(1)
	}
	cfg := loadConfig(*cfgPath, *logLevel)
	defer logger.Sync()

	sampleCount := cfg.Recording.SampleCount
	if *samples > 0 {
		sampleCount = *samples
	}

	m, err := mesh.Load(*meshPath)
	if err != nil {
		fatal(err)
	}
	guides, err := session.LoadGuides(*guidesPath)
	if err != nil {
		fatal(err)
	}
	logger.Info("recording guide placements",
		zap.Int("guides", len(guides)),
		zap.Int("verts", m.NumVerts()),
		zap.Int("faces", m.NumFaces()),
		zap.Int("samples", sampleCount))

	names := make([]string, len(guides))
	positions := make([]float64, 0, len(guides)*3)
	matrices := make([]float64, 0, len(guides)*16)
	seedIDs := []int{}
	seedOffsets := make([]int, 1, len(guides)+1)
	for i, g := range guides {
		names[i] = g.Name
		p := g.Position()
		positions = append(positions, p.X, p.Y, p.Z)
		matrices = append(matrices, g.Matrix...)
		seedIDs = append(seedIDs, m.SeedVertices(p)...)
		seedOffsets = append(seedOffsets, len(seedIDs))
	}

	data := m.Data()
	topo := data.Topology()
	progress := placement.ProgressFunc(func(current, total int) {
		logger.Debug("recorded guide", zap.Int("current", current), zap.Int("total", total))
	})

	primary := placement.RecordPrimaryWithTopology(positions, matrices,
		seedIDs, seedOffsets, sampleCount, data, topo, progress)

	// Seeds for the mirror side come from the reflected positions.
	mrSeedIDs := []int{}
	mrSeedOffsets := make([]int, 1, len(guides)+1)
	for g := range guides {
		pos := positionAt(primary.MirrorPositions, g)
		mrSeedIDs = append(mrSeedIDs, m.SeedVertices(pos)...)
		mrSeedOffsets = append(mrSeedOffsets, len(mrSeedIDs))
	}
	mirror := placement.RecordMirrorWithTopology(mrSeedIDs, mrSeedOffsets,
		sampleCount, data, primary.MirrorPositions, topo, progress)

	p := session.FromResults(names, matrices, primary, mirror, sampleCount)
	if err := session.Save(*outPath, p); err != nil {
		fatal(err)
	}
	logger.Info("placement exported", zap.String("path", *outPath))
}

func cmdReposition(args []string) {
	fs := flag.NewFlagSet("reposition", flag.ExitOnError)
	meshPath := fs.String("mesh", "", "Deformed mesh (OBJ, same topology)")
	placementPath := fs.String("placement", "", "Recorded placement file")
	outPath := fs.String("o", "guides_out.json", "Output guide transforms (JSON)")
	cfgPath, logLevel := setup(fs)
	fs.Parse(args)

	if *meshPath == "" || *placementPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: rgptool reposition -mesh new.obj -placement placement.json [-o guides_out.json]")
		os.Exit(1)
	}
	loadConfig(*cfgPath, *logLevel)
	defer logger.Sync()

	m, err := mesh.Load(*meshPath)
	if err != nil {
		fatal(err)
	}
	p, err := session.Load(*placementPath)
	if err != nil {
		fatal(err)
	}
	logger.Info("repositioning guides",
		zap.Int("guides", len(p.Guides)),
		zap.Int("verts", m.NumVerts()))

	nodeMats, refMats, mrRefMats, vertIDs, mrVertIDs := p.Flatten()
	out := placement.RepositionAllGuides(nodeMats, refMats, mrRefMats,
		vertIDs, mrVertIDs, p.SampleCount, m.Points,
		placement.ProgressFunc(func(current, total int) {
			logger.Debug("repositioned guide", zap.Int("current", current), zap.Int("total", total))
		}))

	guides := make([]session.Guide, len(p.Guides))
	for g := range p.Guides {
		guides[g] = session.Guide{
			Name:   p.Guides[g].Name,
			Matrix: out[g*16 : (g+1)*16],
		}
	}
	if err := session.SaveGuides(*outPath, guides); err != nil {
		fatal(err)
	}
	logger.Info("guides repositioned", zap.String("path", *outPath))
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: rgptool info <placement.json>")
		os.Exit(1)
	}

	p, err := session.Load(args[0])
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Placement:    %s\n", args[0])
	fmt.Printf("Version:      %d\n", p.Version)
	fmt.Printf("Sample count: %d\n", p.SampleCount)
	fmt.Printf("Guides:       %d\n", len(p.Guides))
	for _, rec := range p.Guides {
		t := rec.NodeMatrix
		fmt.Printf("  %-32s (%.3f, %.3f, %.3f)\n", rec.Name, t[12], t[13], t[14])
	}
}

func positionAt(flat []float64, g int) mgmath.Vec3 {
	return mgmath.Vec3{X: flat[g*3], Y: flat[g*3+1], Z: flat[g*3+2]}
}

func fatal(err error) {
	logger.Error("fatal", zap.Error(err))
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
