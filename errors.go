package taxonecs

import "errors"

// Sentinel errors for the categorical failures described in SPEC_FULL.md §7.
// Fatal conditions panic with one of these values; callers should treat the
// world as unusable after one of them. ErrRegistryNameNotFound,
// ErrSchedulerRunaway and ErrScheduleNotFound are returned as ordinary error
// values instead. Query-time misses are NOT among them — those are
// recoverable and surface as an empty Query instead.
var (
	// ErrNotInitialized is the panic value when Initialize has not been called yet.
	ErrNotInitialized = errors.New("taxonecs: world not initialized")
	// ErrAlreadyInitialized is the panic value for AddArchetype, pool creation
	// or a second Initialize after Initialize.
	ErrAlreadyInitialized = errors.New("taxonecs: archetype declared after initialize")
	// ErrPendingReconciliation names a non-empty dirty set at entity creation.
	// CreateEntity does not check the dirty set, and nothing in this package
	// returns or panics with this value.
	ErrPendingReconciliation = errors.New("taxonecs: dirty entities pending, reconcile first")
	// ErrEntityIDSpaceExhausted is returned by the entity allocator when the
	// 31-bit id space is exhausted; CreateEntity and CreatePrototype panic with it.
	ErrEntityIDSpaceExhausted = errors.New("taxonecs: entity id space exhausted")
	// ErrEntityDead names an operation on a non-existent entity. No operation
	// in this package checks entity liveness, and nothing returns or panics
	// with this value.
	ErrEntityDead = errors.New("taxonecs: entity does not exist")
	// ErrComponentAlreadyPresent is the panic value from Add when the entity already has the component.
	ErrComponentAlreadyPresent = errors.New("taxonecs: component already present on entity")
	// ErrComponentMissing is the panic value from operations that require an existing component record.
	ErrComponentMissing = errors.New("taxonecs: component not present on entity")
	// ErrPrototypeTaxonMigration is the panic value when UpdateTaxon targets a prototype entity.
	ErrPrototypeTaxonMigration = errors.New("taxonecs: cannot migrate a prototype's taxon")
	// ErrRegistryNameNotFound is returned by Registry.Lookup when no fallback loader is set.
	ErrRegistryNameNotFound = errors.New("taxonecs: name not found in registry")
	// ErrEmptyPriorityQueue is the panic value from Peek/Pop/TopPriority on an empty queue.
	ErrEmptyPriorityQueue = errors.New("taxonecs: priority queue is empty")
	// ErrSchedulerRunaway is returned when update_to exceeds the configured iteration bound.
	ErrSchedulerRunaway = errors.New("taxonecs: scheduled system exceeded max iterations per update")
	// ErrTooManyEventTypes is the panic value when an EventBus exceeds MaxEventTypes.
	ErrTooManyEventTypes = errors.New("taxonecs: too many event types registered on bus")
	// ErrScheduleNotFound is returned by Scheduler.Unschedule for an unknown handle.
	ErrScheduleNotFound = errors.New("taxonecs: schedule handle not found")
)
