package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// NameGen produces fresh node identifiers. The graph re-rolls on collision,
// so implementations only need to make collisions unlikely, not impossible.
type NameGen interface {
	Make(prefix string) string
}

// uuidNameGen derives names from random UUIDs.
type uuidNameGen struct{}

// NewNameGen returns the default UUID-backed name generator.
func NewNameGen() NameGen {
	return uuidNameGen{}
}

func (uuidNameGen) Make(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, uuid.NewString()[:8])
}

// SequentialNameGen numbers names per prefix. Deterministic, for tests.
type SequentialNameGen struct {
	counts map[string]int
}

// NewSequentialNameGen returns a deterministic name generator.
func NewSequentialNameGen() *SequentialNameGen {
	return &SequentialNameGen{counts: make(map[string]int)}
}

// Make returns "<prefix>__<n>" with n increasing per prefix.
func (g *SequentialNameGen) Make(prefix string) string {
	g.counts[prefix]++
	return fmt.Sprintf("%s__%d", prefix, g.counts[prefix])
}
