package entropy

import (
	"encoding/binary"
	"math/rand/v2"
	"time"
)

// challengeOps is the number of operations issued per challenge.
const challengeOps = 100

// OpKind identifies the kind of a challenge operation.
type OpKind int

// The set of operation kinds a challenge cycles through.
const (
	OpIntegerMul OpKind = iota
	OpIntegerDiv
	OpFloatAdd
	OpMemoryAccess
	OpBranchTest
)

// String implements the fmt.Stringer interface.
func (k OpKind) String() string {
	switch k {
	case OpIntegerMul:
		return "integer_mul"
	case OpIntegerDiv:
		return "integer_div"
	case OpFloatAdd:
		return "float_add"
	case OpMemoryAccess:
		return "memory_access"
	default:
		return "branch_test"
	}
}

// Operation represents one typed operation in a challenge sequence. The
// operand fields used depend on the kind.
type Operation struct {
	Kind     OpKind  `json:"kind"`
	IntArg   uint64  `json:"int_arg,omitempty"`
	FloatArg float64 `json:"float_arg,omitempty"`
	Flag     bool    `json:"flag,omitempty"`
}

// Challenge represents the live-response half of the authenticity check.
// The response must arrive within the stated window, enforced by the caller.
type Challenge struct {
	Nonce             [32]byte    `json:"nonce"`
	Operations        []Operation `json:"operations"`
	ExpectedTimeMinUS uint64      `json:"expected_time_min_us"`
	ExpectedTimeMaxUS uint64      `json:"expected_time_max_us"`
	Timestamp         uint64      `json:"timestamp"`
}

// Challenger generates challenges for hardware to answer. The random source
// is injected so production can seed from a cryptographically secure
// generator while tests use fixed seeds.
type Challenger struct {
	rng *rand.Rand
	now func() time.Time
}

// NewChallenger constructs a challenger from a 32-byte seed.
func NewChallenger(seed [32]byte, now func() time.Time) *Challenger {
	if now == nil {
		now = time.Now
	}

	return &Challenger{
		rng: rand.New(rand.NewChaCha8(seed)),
		now: now,
	}
}

// Generate produces a fresh challenge: a nonce plus a pseudo-random
// sequence of typed operations cycling through the five kinds.
func (c *Challenger) Generate() Challenge {
	var nonce [32]byte
	for i := 0; i < len(nonce); i += 8 {
		binary.BigEndian.PutUint64(nonce[i:], c.rng.Uint64())
	}

	operations := make([]Operation, challengeOps)
	for i := range operations {
		switch OpKind(i % 5) {
		case OpIntegerMul:
			operations[i] = Operation{Kind: OpIntegerMul, IntArg: c.rng.Uint64()}
		case OpIntegerDiv:
			operations[i] = Operation{Kind: OpIntegerDiv, IntArg: 1 + c.rng.Uint64N(999)}
		case OpFloatAdd:
			operations[i] = Operation{Kind: OpFloatAdd, FloatArg: c.rng.Float64()}
		case OpMemoryAccess:
			operations[i] = Operation{Kind: OpMemoryAccess, IntArg: c.rng.Uint64N(1024)}
		case OpBranchTest:
			operations[i] = Operation{Kind: OpBranchTest, Flag: c.rng.Uint64N(2) == 1}
		}
	}

	// 1ms to 100ms depending on hardware.
	return Challenge{
		Nonce:             nonce,
		Operations:        operations,
		ExpectedTimeMinUS: 1_000,
		ExpectedTimeMaxUS: 100_000,
		Timestamp:         uint64(c.now().UTC().Unix()),
	}
}
