// Command taxonbench drives a synthetic World under a CPU or memory profile,
// replacing the teacher's profile/entities and profile/query mains with a
// workload that exercises pools, reconciliation, and queries together.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/pkg/profile"
	"go.uber.org/zap"

	"github.com/taxonecs/taxonecs"
)

type position struct{ X, Y float64 }
type velocity struct{ X, Y float64 }
type team string

func main() {
	mode := flag.String("mode", "cpu", "profile mode: cpu, mem, or off")
	entityCount := flag.Int("entities", 100000, "number of entities to create")
	ticks := flag.Int("ticks", 60, "number of scheduler ticks to run")
	flag.Parse()

	switch *mode {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg := taxonecs.DefaultConfig()
	cfg.InitialEntityCapacity = *entityCount

	w := taxonecs.NewWorld(cfg, logger)
	positions := taxonecs.NewDataPool[position](w)
	velocities := taxonecs.NewDataPool[velocity](w)
	teams := taxonecs.NewFilterPool[team](w)

	w.AddArchetype(
		[]taxonecs.ComponentType{positions.ComponentType(), velocities.ComponentType()},
		[]taxonecs.ComponentType{teams.ComponentType()},
	)
	w.Initialize()

	for i := 0; i < *entityCount; i++ {
		e := w.CreateEntity()
		positions.Add(e, position{X: float64(i), Y: 0})
		velocities.Add(e, velocity{X: 1, Y: 1})
		if i%2 == 0 {
			teams.Add(e, "red")
		} else {
			teams.Add(e, "blue")
		}
	}
	w.Reconcile()

	sched := taxonecs.NewScheduler(w, cfg, logger)
	sched.Register(taxonecs.SystemSpec{
		Name: "move",
		Kind: taxonecs.SystemFrame,
		Run: func(w *taxonecs.World) {
			q := w.MakeQuery(positions.ComponentType(), velocities.ComponentType())
			for _, t := range q.Taxa {
				ps := positions.Slice(t)
				vs := velocities.Slice(t)
				for i := 0; i < ps.Len(); i++ {
					p := ps.Value(i)
					v := vs.Value(i)
					p.X += v.X
					p.Y += v.Y
				}
			}
		},
	})

	start := time.Now()
	for i := 0; i < *ticks; i++ {
		if err := sched.Tick(16 * time.Millisecond); err != nil {
			logger.Error("tick failed", zap.Error(err))
			break
		}
	}
	fmt.Printf("ran %d ticks over %d entities in %s\n", *ticks, *entityCount, time.Since(start))
}
