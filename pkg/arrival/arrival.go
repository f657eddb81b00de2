// Package arrival implements the per-side piece arrival queues and pools
// that feed Saktris's placement mechanic (spec.md §3, §4.2).
package arrival

import (
	"fmt"
	"math/rand"

	"github.com/tomgun/saktris/pkg/piece"
)

// Mode selects how each side's pieces are ordered and offered.
type Mode uint8

const (
	// Fixed delivers pieces in a canonical order.
	Fixed Mode = iota
	// Selectable lets the player draw any type from their remaining pool.
	Selectable
	// RandomSame shuffles one order and shares it between both sides.
	RandomSame
	// RandomDifferent shuffles an independent order per side.
	RandomDifferent
)

// ErrNoSuchType is returned by SelectFromPool when the chosen kind is not
// in the pool. It is a genuine error: an illegal request by the caller.
var ErrNoSuchType = fmt.Errorf("arrival: no such type in pool")

// ErrQueueEmpty is returned by QueueNextPiece when no types remain. This is
// not an error condition in the "something went wrong" sense — it simply
// means arrivals have stopped for that side (spec.md §4.2).
var ErrQueueEmpty = fmt.Errorf("arrival: queue empty")

// canonicalOrder is the Fixed-mode arrival order.
var canonicalOrder = []piece.Kind{
	piece.Pawn, piece.Pawn, piece.Pawn, piece.Pawn,
	piece.Knight, piece.Bishop, piece.Rook,
	piece.Pawn, piece.Pawn, piece.Pawn, piece.Pawn,
	piece.Knight, piece.Bishop, piece.Rook,
	piece.Queen, piece.King,
}

type side struct {
	queue   []piece.Kind
	pool    []piece.Kind
	current *piece.Kind

	piecesGiven int
	movesMade   int
}

// Manager owns both sides' queues, pools and current-piece slots.
type Manager struct {
	mode      Mode
	frequency int
	rng       *rand.Rand
	sides     [piece.NumSide]*side
}

// Initialize builds fresh queues/pools for both sides per mode (spec.md
// §4.2). Random-Same shares one shuffled order between sides; Random-
// Different shuffles independently. The rng is seeded deterministically so
// a fixed seed reproduces the same arrivals turn-for-turn (spec.md §5).
func Initialize(mode Mode, frequency int, seed int64) *Manager {
	if frequency < 1 {
		frequency = 1
	}
	m := &Manager{
		mode:      mode,
		frequency: frequency,
		rng:       rand.New(rand.NewSource(seed)),
	}

	switch mode {
	case Selectable:
		// No queue: the player draws directly from the pool, so the pool
		// alone carries the side's remaining supply.
		m.sides[piece.White] = newSide(nil, true)
		m.sides[piece.Black] = newSide(nil, true)
	case RandomSame:
		order := shuffledOrder(m.rng)
		m.sides[piece.White] = newSide(order, false)
		m.sides[piece.Black] = newSide(append([]piece.Kind(nil), order...), false)
	case RandomDifferent:
		m.sides[piece.White] = newSide(shuffledOrder(m.rng), false)
		m.sides[piece.Black] = newSide(shuffledOrder(m.rng), false)
	default: // Fixed
		m.sides[piece.White] = newSide(append([]piece.Kind(nil), canonicalOrder...), false)
		m.sides[piece.Black] = newSide(append([]piece.Kind(nil), canonicalOrder...), false)
	}
	return m
}

// newSide builds a side's queue/pool. Only Selectable mode populates the
// pool — it is the side's only remaining-supply tracker there. Other modes
// track supply purely via the queue, so board+queue+current == 16 holds
// without double-counting (spec.md §3 budget invariant).
func newSide(order []piece.Kind, withPool bool) *side {
	s := &side{queue: order}
	if withPool {
		for k, n := range piece.Allotment() {
			for i := 0; i < n; i++ {
				s.pool = append(s.pool, k)
			}
		}
	}
	return s
}

func shuffledOrder(rng *rand.Rand) []piece.Kind {
	var order []piece.Kind
	for k, n := range piece.Allotment() {
		for i := 0; i < n; i++ {
			order = append(order, k)
		}
	}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
	return order
}

// ShouldPieceArrive reports whether the side receives its next piece now:
// moves_made >= pieces_given * frequency. The first piece thus arrives
// before the side's first move (spec.md §4.2).
func (m *Manager) ShouldPieceArrive(s piece.Side) bool {
	sd := m.sides[s]
	if sd.current != nil {
		return false
	}
	return sd.movesMade >= sd.piecesGiven*m.frequency
}

// QueueNextPiece moves the queue head into the current slot and removes it
// from the pool. In Selectable mode, current stays empty until the player
// calls SelectFromPool, and the queue itself is not consulted.
func (m *Manager) QueueNextPiece(s piece.Side) error {
	sd := m.sides[s]
	if sd.current != nil {
		return nil
	}
	if m.mode == Selectable {
		sd.piecesGiven++
		return nil // current stays nil until SelectFromPool
	}
	if len(sd.queue) == 0 {
		return ErrQueueEmpty
	}
	k := sd.queue[0]
	sd.queue = sd.queue[1:]
	sd.removeFromPool(k)
	sd.current = &k
	sd.piecesGiven++
	return nil
}

// SelectFromPool is used in Selectable mode: the player chooses which
// pooled type arrives next.
func (m *Manager) SelectFromPool(s piece.Side, k piece.Kind) error {
	sd := m.sides[s]
	if !sd.removeFromPool(k) {
		return ErrNoSuchType
	}
	sd.current = &k
	return nil
}

func (sd *side) removeFromPool(k piece.Kind) bool {
	for i, p := range sd.pool {
		if p == k {
			sd.pool = append(sd.pool[:i], sd.pool[i+1:]...)
			return true
		}
	}
	return false
}

// GetCurrentPiece returns the side's piece awaiting placement, if any.
func (m *Manager) GetCurrentPiece(s piece.Side) (piece.Kind, bool) {
	sd := m.sides[s]
	if sd.current == nil {
		return piece.NoKind, false
	}
	return *sd.current, true
}

// PiecePlaced clears the current slot after a successful placement.
func (m *Manager) PiecePlaced(s piece.Side) {
	m.sides[s].current = nil
}

// RecordMove increments the side's move counter; it drives the next
// ShouldPieceArrive check.
func (m *Manager) RecordMove(s piece.Side) {
	m.sides[s].movesMade++
}

// Pool returns the side's remaining selectable pool. Only Selectable mode
// fills it; in the other modes it is empty and the queue alone tracks the
// side's remaining supply.
func (m *Manager) Pool(s piece.Side) []piece.Kind {
	return append([]piece.Kind(nil), m.sides[s].pool...)
}

func (m *Manager) Queue(s piece.Side) []piece.Kind {
	return append([]piece.Kind(nil), m.sides[s].queue...)
}

func (m *Manager) PiecesGiven(s piece.Side) int { return m.sides[s].piecesGiven }
func (m *Manager) MovesMade(s piece.Side) int   { return m.sides[s].movesMade }

// HasPendingArrivals reports whether the side still has queue entries,
// pool entries, or a pending current piece — used to suppress
// insufficient-material draws while new material may yet arrive
// (spec.md §4.3).
func (m *Manager) HasPendingArrivals(s piece.Side) bool {
	sd := m.sides[s]
	return len(sd.queue) > 0 || len(sd.pool) > 0 || sd.current != nil
}

func (m *Manager) Mode() Mode { return m.mode }

func (m *Manager) Frequency() int { return m.frequency }

// SideState is the full per-side arrival state a persisted snapshot must
// round-trip (spec.md §6): queue, pool, current piece and both counters.
type SideState struct {
	Queue       []piece.Kind
	Pool        []piece.Kind
	Current     piece.Kind
	HasCurrent  bool
	PiecesGiven int
	MovesMade   int
}

// State captures a Manager's mode, frequency and per-side queues, pools,
// current pieces and counters. The RNG stream is not captured: rngState is
// always nil, and Restore reseeds a fresh generator instead.
func (m *Manager) State() (mode Mode, frequency int, rngState []byte, sides [2]SideState) {
	for s := piece.White; s < piece.NumSide; s++ {
		sd := m.sides[s]
		var cur piece.Kind
		hasCur := sd.current != nil
		if hasCur {
			cur = *sd.current
		}
		sides[s] = SideState{
			Queue:       append([]piece.Kind(nil), sd.queue...),
			Pool:        append([]piece.Kind(nil), sd.pool...),
			Current:     cur,
			HasCurrent:  hasCur,
			PiecesGiven: sd.piecesGiven,
			MovesMade:   sd.movesMade,
		}
	}
	return m.mode, m.frequency, nil, sides
}

// Restore rebuilds a Manager from a prior State() call. The RNG restarts
// fresh from seed rather than mid-stream, since math/rand.Rand does not
// expose a portable serialization of its internal state; this only affects
// arrivals not yet drawn; Fixed/Selectable modes (the persistence-relevant
// ones, since their queues/pools are already captured verbatim) are
// unaffected.
func Restore(mode Mode, frequency int, seed int64, sides [2]SideState) *Manager {
	m := &Manager{
		mode:      mode,
		frequency: frequency,
		rng:       rand.New(rand.NewSource(seed)),
	}
	for s := piece.White; s < piece.NumSide; s++ {
		sd := &side{
			queue:       append([]piece.Kind(nil), sides[s].Queue...),
			pool:        append([]piece.Kind(nil), sides[s].Pool...),
			piecesGiven: sides[s].PiecesGiven,
			movesMade:   sides[s].MovesMade,
		}
		if sides[s].HasCurrent {
			k := sides[s].Current
			sd.current = &k
		}
		m.sides[s] = sd
	}
	return m
}
