// Command analyze prints quick, human-readable heuristics about scene
// configurations and persisted sessions. For configs it summarizes charge
// budgets, platform patrol paths, and carousel coverage, and highlights
// chargeables that are out of targeting range at rest. For sessions it
// tallies event history by action and outcome.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"chargearm-server/game/engine"
)

// ConfigAnalysis summarizes a single scene configuration.
type ConfigAnalysis struct {
	Name             string
	ObjectCount      int
	ChargeableCount  int
	ChargedCount     int
	UnchargedCount   int
	MoveableCount    int
	StartingCharges  int
	MaxCharges       int
	TargetRange      float64
	ChargeBudget     int // starting charges plus charges held by objects
	ChargeDeficit    int // uncharged objects that can never all be charged at once
	OutOfRangeAtRest []string
	Platforms        []PlatformAnalysis
	Carousel         *CarouselAnalysis
}

// PlatformAnalysis summarizes one patrol platform's path.
type PlatformAnalysis struct {
	Waypoints  int
	Mode       string
	PathLength float64 // one full cycle, in world units
	CycleTicks int     // estimated ticks per cycle including pauses
	Carries    []string
}

// CarouselAnalysis summarizes carousel coverage relative to the arm.
type CarouselAnalysis struct {
	Count          int
	Radius         float64
	MinArmDistance float64 // closest approach of the ring to the arm
	InRange        bool
}

// SessionAnalysis tallies a persisted session's event history.
type SessionAnalysis struct {
	ID             string
	ConfigName     string
	Tick           int
	EffectFires    int
	Exchanges      int
	ExchangesMoved int
	ActionCounts   map[string]int
	OutcomeCounts  map[string]int
}

// sessionFile is the subset of the persisted session JSON that analysis reads.
type sessionFile struct {
	ID         string `json:"id"`
	ConfigName string `json:"config_name"`
	SceneState struct {
		Tick        int                 `json:"tick"`
		EffectFires int                 `json:"effect_fires"`
		History     []engine.EventEntry `json:"history"`
	} `json:"scene_state"`
}

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "Analyze scene configurations and persisted sessions",
		Commands: []*cli.Command{
			{
				Name:  "configs",
				Usage: "Summarize scene configuration files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "configs",
						Usage: "Directory containing scene configuration JSON files",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runConfigs(cmd.String("dir"))
				},
			},
			{
				Name:  "sessions",
				Usage: "Tally event history of persisted sessions",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "dir",
						Value: "sessions",
						Usage: "Directory containing persisted session JSON files",
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runSessions(cmd.String("dir"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runConfigs(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no config files found in %s", dir)
	}

	for _, file := range files {
		fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
		analysis, err := analyzeSceneConfig(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printConfigAnalysis(analysis)
	}
	return nil
}

func runSessions(dir string) error {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no session files found in %s", dir)
	}

	for _, file := range files {
		fmt.Printf("\n=== Session %s ===\n", strings.TrimSuffix(filepath.Base(file), ".json"))
		analysis, err := analyzeSessionFile(file)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printSessionAnalysis(analysis)
	}
	return nil
}

// analyzeSceneConfig loads a scene configuration and computes its summary.
func analyzeSceneConfig(path string) (*ConfigAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var config engine.SceneConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}

	targetRange := config.TargetRange
	if targetRange <= 0 {
		targetRange = engine.DefaultTargetRange
	}

	analysis := &ConfigAnalysis{
		Name:            config.Name,
		ObjectCount:     len(config.Objects),
		StartingCharges: config.StartingCharges,
		MaxCharges:      config.MaxCharges,
		TargetRange:     targetRange,
	}

	for _, oc := range config.Objects {
		if oc.Moveable != nil {
			analysis.MoveableCount++
		}
		if oc.Chargeable == nil {
			continue
		}
		analysis.ChargeableCount++
		if oc.Chargeable.Charged {
			analysis.ChargedCount++
		} else {
			analysis.UnchargedCount++
		}
		if config.ArmPosition.DistanceTo(oc.Position) > targetRange {
			analysis.OutOfRangeAtRest = append(analysis.OutOfRangeAtRest, oc.ID)
		}
	}

	// Charges are conserved, so the budget bounds how many uncharged
	// objects can ever be charged simultaneously
	analysis.ChargeBudget = analysis.StartingCharges + analysis.ChargedCount
	if analysis.UnchargedCount > analysis.ChargeBudget {
		analysis.ChargeDeficit = analysis.UnchargedCount - analysis.ChargeBudget
	}

	for _, pc := range config.Platforms {
		analysis.Platforms = append(analysis.Platforms, analyzePlatform(pc))
	}

	if config.Carousel != nil {
		analysis.Carousel = analyzeCarousel(config.Carousel, config.ArmPosition, targetRange)
	}

	return analysis, nil
}

// analyzePlatform computes one full patrol cycle's length and an estimated
// tick count. Loop mode closes the path back to the first waypoint; pingpong
// traverses the path out and back.
func analyzePlatform(pc engine.PlatformConfig) PlatformAnalysis {
	mode := string(pc.Mode)
	if mode == "" {
		mode = string(engine.PatrolLoop)
	}

	oneWay := 0.0
	for i := 1; i < len(pc.Waypoints); i++ {
		oneWay += pc.Waypoints[i-1].DistanceTo(pc.Waypoints[i])
	}

	var cycle float64
	var pauses int
	if mode == string(engine.PatrolPingPong) {
		cycle = 2 * oneWay
		pauses = 2*len(pc.Waypoints) - 2
	} else {
		cycle = oneWay
		if len(pc.Waypoints) > 1 {
			cycle += pc.Waypoints[len(pc.Waypoints)-1].DistanceTo(pc.Waypoints[0])
		}
		pauses = len(pc.Waypoints)
	}

	cycleTicks := 0
	if pc.Speed > 0 {
		cycleTicks = int(math.Ceil(cycle/pc.Speed)) + pauses*pc.PauseTicks
	}

	return PlatformAnalysis{
		Waypoints:  len(pc.Waypoints),
		Mode:       mode,
		PathLength: cycle,
		CycleTicks: cycleTicks,
		Carries:    pc.Carries,
	}
}

// analyzeCarousel computes the closest approach of the carousel ring to the
// arm. The ring lies at center height plus the configured platform height.
func analyzeCarousel(cc *engine.CarouselConfig, arm engine.Vec3, targetRange float64) *CarouselAnalysis {
	dx := arm.X - cc.Center.X
	dz := arm.Z - cc.Center.Z
	horizontal := math.Sqrt(dx*dx + dz*dz)
	vertical := arm.Y - (cc.Center.Y + cc.Height)
	minDist := math.Sqrt((horizontal-cc.Radius)*(horizontal-cc.Radius) + vertical*vertical)

	return &CarouselAnalysis{
		Count:          cc.Count,
		Radius:         cc.Radius,
		MinArmDistance: minDist,
		InRange:        minDist <= targetRange,
	}
}

func printConfigAnalysis(a *ConfigAnalysis) {
	fmt.Printf("Name: %s\n", a.Name)
	fmt.Printf("Objects: %d (%d chargeable, %d moveable)\n", a.ObjectCount, a.ChargeableCount, a.MoveableCount)
	fmt.Printf("Charges: %d/%d starting, %d held by objects\n", a.StartingCharges, a.MaxCharges, a.ChargedCount)
	fmt.Printf("Target Range: %.1f\n", a.TargetRange)

	if a.ChargeDeficit > 0 {
		fmt.Printf("⚠️  Charge budget %d cannot cover %d uncharged objects (deficit %d)\n", a.ChargeBudget, a.UnchargedCount, a.ChargeDeficit)
	} else {
		fmt.Printf("✅ Charge budget %d covers all %d uncharged objects\n", a.ChargeBudget, a.UnchargedCount)
	}

	if len(a.OutOfRangeAtRest) > 0 {
		fmt.Printf("⚠️  %d chargeable(s) out of range at rest (need platform timing): %s\n", len(a.OutOfRangeAtRest), strings.Join(a.OutOfRangeAtRest, ", "))
	} else {
		fmt.Printf("✅ All chargeables within range at rest\n")
	}

	for i, p := range a.Platforms {
		line := fmt.Sprintf("Platform %d: %d waypoints, %s, cycle %.1f units (~%d ticks)", i+1, p.Waypoints, p.Mode, p.PathLength, p.CycleTicks)
		if len(p.Carries) > 0 {
			line += fmt.Sprintf(", carries %s", strings.Join(p.Carries, ", "))
		}
		fmt.Println(line)
	}

	if a.Carousel != nil {
		status := "out of range"
		if a.Carousel.InRange {
			status = "in range"
		}
		fmt.Printf("Carousel: %d platforms, radius %.1f, closest approach %.1f (%s)\n", a.Carousel.Count, a.Carousel.Radius, a.Carousel.MinArmDistance, status)
	}
}

// analyzeSessionFile reads a persisted session and tallies its history.
func analyzeSessionFile(path string) (*SessionAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sf sessionFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return nil, err
	}

	analysis := &SessionAnalysis{
		ID:            sf.ID,
		ConfigName:    sf.ConfigName,
		Tick:          sf.SceneState.Tick,
		EffectFires:   sf.SceneState.EffectFires,
		ActionCounts:  make(map[string]int),
		OutcomeCounts: make(map[string]int),
	}

	for _, event := range sf.SceneState.History {
		analysis.ActionCounts[event.Action]++
		if event.Outcome != "" {
			analysis.OutcomeCounts[string(event.Outcome)]++
		}
		if event.Action == "exchange" {
			analysis.Exchanges++
			if event.ChargesAfter != event.ChargesBefore {
				analysis.ExchangesMoved++
			}
		}
	}

	return analysis, nil
}

func printSessionAnalysis(a *SessionAnalysis) {
	fmt.Printf("Config: %s\n", a.ConfigName)
	fmt.Printf("Tick: %d\n", a.Tick)
	fmt.Printf("Effect fires: %d\n", a.EffectFires)
	fmt.Printf("Exchanges: %d (%d moved a charge)\n", a.Exchanges, a.ExchangesMoved)

	fmt.Printf("Actions:\n")
	for _, key := range sortedKeys(a.ActionCounts) {
		fmt.Printf("  %s: %d\n", key, a.ActionCounts[key])
	}

	if len(a.OutcomeCounts) > 0 {
		fmt.Printf("Outcomes:\n")
		for _, key := range sortedKeys(a.OutcomeCounts) {
			fmt.Printf("  %s: %d\n", key, a.OutcomeCounts[key])
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
