package taxonecs

import (
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SystemKind distinguishes the three ways a registered system can run.
type SystemKind uint8

const (
	// SystemPassive runs every Tick, in dependency order, and may re-run
	// within the same Tick while its peers are still producing events.
	SystemPassive SystemKind = iota
	// SystemFrame runs exactly once per Tick, in dependency order, ahead of
	// the passive reaction loop.
	SystemFrame
	// SystemScheduled owns its own priority queue of (entity, deadline)
	// pairs. A host schedules an entity onto it with ScheduleEntity; it only
	// ever runs UpdateEntity for entities whose deadline has elapsed on the
	// scheduler's simulated clock, in dependency order relative to its
	// emitter/listener peers.
	SystemScheduled
)

// SystemFunc is the body a passive or frame system runs against the World.
type SystemFunc func(w *World)

// EntityUpdateFunc is the per-entity body a SystemScheduled system runs once
// an entity's queued deadline has elapsed. t is the deadline that fired, not
// the scheduler's current clock, so self-rescheduling systems can compute
// their next deadline relative to the one they were due at.
type EntityUpdateFunc func(w *World, e Entity, t time.Duration)

// SystemSpec describes one system registration. Emits/Listens are event
// payload types (not instances) used only to infer run order: a system that
// Listens to a type some other system Emits is placed after it, and a
// SystemScheduled listener never advances past an emitter dependency's own
// next deadline within the same Tick.
type SystemSpec struct {
	Name         string
	Kind         SystemKind
	Run          SystemFunc       // SystemPassive, SystemFrame
	UpdateEntity EntityUpdateFunc // SystemScheduled
	Emits        []reflect.Type
	Listens      []reflect.Type
}

// ScheduleHandle identifies a registered system for Unschedule/ScheduleEntity.
type ScheduleHandle uuid.UUID

type systemEntry struct {
	id    uuid.UUID
	spec  SystemSpec
	queue *PriorityQueue[Entity] // SystemScheduled only: this system's own (entity, deadline) queue
}

// Scheduler runs registered systems against a World, ordering passive/frame
// systems by inferred emitter→listener dependency and driving each
// SystemScheduled system off its own PriorityQueue of (entity, deadline)
// pairs. Grounded on DangerosoDavo-ecs's basicScheduler (logger injection,
// "run work, report summary" separation) though the deadline/dependency
// algorithm itself is this engine's own.
type Scheduler struct {
	world  *World
	logger *zap.Logger

	systems    map[uuid.UUID]*systemEntry
	insertion  []uuid.UUID
	named      *Registry[uuid.UUID]
	order      []uuid.UUID
	dependsOn  map[uuid.UUID][]uuid.UUID
	orderDirty bool

	clock time.Duration

	maxIterationsPerUpdate int
}

// NewScheduler creates a Scheduler bound to w. maxIterationsPerUpdate comes
// from cfg.SchedulerMaxIterations, defaulting to 10000 (SPEC_FULL.md's
// resolution of the runaway-iteration Open Question).
func NewScheduler(w *World, cfg Config, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	max := cfg.SchedulerMaxIterations
	if max <= 0 {
		max = 10000
	}
	return &Scheduler{
		world:                  w,
		logger:                 logger,
		systems:                make(map[uuid.UUID]*systemEntry),
		named:                  NewRegistry[uuid.UUID](),
		maxIterationsPerUpdate: max,
	}
}

// Register adds a system and returns its handle. A SystemScheduled system
// starts with an empty (entity, deadline) queue; use ScheduleEntity to put
// work on it.
func (s *Scheduler) Register(spec SystemSpec) ScheduleHandle {
	id := uuid.New()
	entry := &systemEntry{id: id, spec: spec}
	if spec.Kind == SystemScheduled {
		entry.queue = NewPriorityQueue[Entity]()
	}
	s.systems[id] = entry
	s.insertion = append(s.insertion, id)
	if spec.Name != "" {
		s.named.RegisterNamed(spec.Name, id)
	}
	s.orderDirty = true
	return ScheduleHandle(id)
}

// Lookup resolves a system's handle by the name it was registered with.
func (s *Scheduler) Lookup(name string) (ScheduleHandle, error) {
	id, err := s.named.Lookup(name)
	return ScheduleHandle(id), err
}

// Unschedule removes a registered system, along with any entities still
// pending in its deadline queue.
func (s *Scheduler) Unschedule(h ScheduleHandle) error {
	id := uuid.UUID(h)
	if _, ok := s.systems[id]; !ok {
		return ErrScheduleNotFound
	}
	delete(s.systems, id)
	s.orderDirty = true
	return nil
}

// ScheduleEntity enqueues e onto a SystemScheduled system's own
// (entity, deadline) priority queue. No-op if h does not name a registered
// SystemScheduled system.
func (s *Scheduler) ScheduleEntity(h ScheduleHandle, e Entity, deadline time.Duration) {
	entry, ok := s.systems[uuid.UUID(h)]
	if !ok || entry.spec.Kind != SystemScheduled {
		return
	}
	entry.queue.Push(e, float64(deadline))
}

func (s *Scheduler) rebuildOrder() {
	emittersOf := make(map[reflect.Type][]uuid.UUID)
	listenersOf := make(map[reflect.Type][]uuid.UUID)
	for _, id := range s.insertion {
		e, ok := s.systems[id]
		if !ok {
			continue
		}
		for _, t := range e.spec.Emits {
			emittersOf[t] = append(emittersOf[t], id)
		}
		for _, t := range e.spec.Listens {
			listenersOf[t] = append(listenersOf[t], id)
		}
	}

	dependsOn := make(map[uuid.UUID][]uuid.UUID)
	for t, listeners := range listenersOf {
		for _, a := range listeners {
			for _, b := range emittersOf[t] {
				if b != a {
					dependsOn[a] = append(dependsOn[a], b)
				}
			}
		}
	}
	s.dependsOn = dependsOn

	prio := s.computePriorities(dependsOn)

	order := make([]uuid.UUID, 0, len(s.systems))
	for _, id := range s.insertion {
		if _, ok := s.systems[id]; ok {
			order = append(order, id)
		}
	}
	sort.SliceStable(order, func(i, j int) bool { return prio[order[i]] < prio[order[j]] })
	s.order = order
	s.orderDirty = false
}

// computePriorities assigns each system a topological depth via longest-path
// over the dependency graph. A cycle (A listens to what B emits and vice
// versa) is broken arbitrarily by treating the second visit as depth 0
// rather than rejecting the registration.
func (s *Scheduler) computePriorities(dependsOn map[uuid.UUID][]uuid.UUID) map[uuid.UUID]int {
	prio := make(map[uuid.UUID]int)
	state := make(map[uuid.UUID]int) // 0 unvisited, 1 visiting, 2 done

	var visit func(id uuid.UUID) int
	visit = func(id uuid.UUID) int {
		switch state[id] {
		case 2:
			return prio[id]
		case 1:
			return 0
		}
		state[id] = 1
		best := 0
		for _, dep := range dependsOn[id] {
			if p := visit(dep) + 1; p > best {
				best = p
			}
		}
		prio[id] = best
		state[id] = 2
		return best
	}

	for id := range s.systems {
		visit(id)
	}
	return prio
}

func (s *Scheduler) runKind(kind SystemKind) {
	for _, id := range s.order {
		e, ok := s.systems[id]
		if !ok || e.spec.Kind != kind || e.spec.Run == nil {
			continue
		}
		e.spec.Run(s.world)
	}
}

// nextDeadline reports id's own queue's smallest pending deadline, if any.
func (s *Scheduler) nextDeadline(id uuid.UUID) (float64, bool) {
	e, ok := s.systems[id]
	if !ok || e.queue == nil || e.queue.Len() == 0 {
		return 0, false
	}
	return e.queue.TopPriority(), true
}

// runScheduledUpTo drains id's own (entity, deadline) queue while its head
// deadline is at most maxTime, calling UpdateEntity once per due entity.
// maxTime is throttled by the caller to at most the next deadline among id's
// emitter dependencies, so a listener scheduled at the same nominal deadline
// as its emitter never runs ahead of the SwapBuffers that follows the
// emitter's own batch. Returns whether anything ran, and ErrSchedulerRunaway
// if a single call drains more than maxIterationsPerUpdate entries (e.g. an
// UpdateEntity that keeps rescheduling itself at or before maxTime).
func (s *Scheduler) runScheduledUpTo(id uuid.UUID, maxTime time.Duration) (bool, error) {
	e := s.systems[id]
	ran := false
	iterations := 0
	for e.queue.Len() > 0 && time.Duration(e.queue.TopPriority()) <= maxTime {
		if iterations >= s.maxIterationsPerUpdate {
			s.logger.Warn("scheduled system exceeded max iterations in a single update_to",
				zap.String("system", e.spec.Name))
			return ran, ErrSchedulerRunaway
		}
		ent, deadline := e.queue.PopWithPriority()
		e.spec.UpdateEntity(s.world, ent, time.Duration(deadline))
		ran = true
		iterations++
	}
	return ran, nil
}

// runDueScheduled advances every SystemScheduled system whose queue has a
// due entity, in dependency order. Each system's due batch is throttled to
// not outrun its emitter dependencies' own next deadlines, and is followed
// by a Reconcile + SwapBuffers so a dependent listener scheduled at the same
// deadline always observes events the emitter published, in order: emitter
// update_entity calls, then SwapBuffers, then listener update_entity calls —
// never interleaved.
func (s *Scheduler) runDueScheduled() (bool, error) {
	ranAny := false
	for _, id := range s.order {
		e, ok := s.systems[id]
		if !ok || e.spec.Kind != SystemScheduled {
			continue
		}
		maxTime := s.clock
		for _, dep := range s.dependsOn[id] {
			if d, ok := s.nextDeadline(dep); ok && time.Duration(d) < maxTime {
				maxTime = time.Duration(d)
			}
		}
		ran, err := s.runScheduledUpTo(id, maxTime)
		if err != nil {
			return ranAny, err
		}
		if ran {
			ranAny = true
			s.world.Reconcile()
			s.world.Events().SwapBuffers()
		}
	}
	return ranAny, nil
}

// Tick advances the scheduler's simulated clock by dt, runs frame systems
// once, then advances every due SystemScheduled system in dependency order
// (each batch followed by its own Reconcile+SwapBuffers), then drives the
// passive reaction loop: run every passive system, reconcile, swap the event
// bus, and repeat as long as entities are still dirty or events are still
// queued. Returns ErrSchedulerRunaway if either loop exceeds
// maxIterationsPerUpdate (set from Config.SchedulerMaxIterations).
func (s *Scheduler) Tick(dt time.Duration) error {
	s.clock += dt
	if s.orderDirty {
		s.rebuildOrder()
	}

	s.runKind(SystemFrame)
	if _, err := s.runDueScheduled(); err != nil {
		return err
	}

	iterations := 0
	for {
		s.runKind(SystemPassive)
		s.world.Reconcile()
		hadEvents := s.world.Events().Pending() > 0
		s.world.Events().SwapBuffers()
		iterations++
		if !s.world.Pending() && !hadEvents {
			return nil
		}
		if iterations >= s.maxIterationsPerUpdate {
			s.logger.Warn("scheduler exceeded max iterations per update",
				zap.Int("maxIterations", s.maxIterationsPerUpdate))
			return ErrSchedulerRunaway
		}
	}
}
