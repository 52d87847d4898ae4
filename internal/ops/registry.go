// Package ops provides the op-trait registry: structural metadata about
// operation types that matching and rewriting need, without executing any
// operator.
package ops

// Traits describes the structural properties of an operation type.
type Traits struct {
	// Commutative ops produce the same result under any input order.
	Commutative bool
	// PassThrough ops forward their single input unchanged (e.g. Identity);
	// constant resolution looks through them.
	PassThrough bool
	// Constant ops carry an embedded materialized tensor.
	Constant bool
	// Reverse ops flip a sequence axis.
	Reverse bool
}

// Registry maps operation types to their traits.
type Registry struct {
	traits map[string]Traits
}

// NewRegistry creates a registry preloaded with the default trait set.
func NewRegistry() *Registry {
	r := &Registry{
		traits: make(map[string]Traits),
	}

	r.registerArithmetic()
	r.registerStructural()

	return r
}

func (r *Registry) registerArithmetic() {
	r.Register("Add", Traits{Commutative: true})
	r.Register("AddV2", Traits{Commutative: true})
	r.Register("Mul", Traits{Commutative: true})
}

func (r *Registry) registerStructural() {
	r.Register("Identity", Traits{PassThrough: true})
	r.Register("Const", Traits{Constant: true})
	r.Register("ReverseV2", Traits{Reverse: true})
	r.Register("ReverseSequence", Traits{Reverse: true})
}

// Register adds or overrides the traits for an operation type.
func (r *Registry) Register(opType string, t Traits) {
	r.traits[opType] = t
}

// Get returns the traits for an operation type. Unregistered types report
// zero traits.
func (r *Registry) Get(opType string) Traits {
	return r.traits[opType]
}

// IsCommutative reports whether the op's inputs are order-independent.
func (r *Registry) IsCommutative(opType string) bool {
	return r.traits[opType].Commutative
}

// IsPassThrough reports whether the op forwards its input unchanged.
func (r *Registry) IsPassThrough(opType string) bool {
	return r.traits[opType].PassThrough
}

// IsConstant reports whether the op carries an embedded constant tensor.
func (r *Registry) IsConstant(opType string) bool {
	return r.traits[opType].Constant
}

// IsReverse reports whether the op reverses a sequence axis.
func (r *Registry) IsReverse(opType string) bool {
	return r.traits[opType].Reverse
}

// Default is the registry used when a caller does not supply its own.
var Default = NewRegistry()
