package core

import (
	"math"
	"math/big"
	"strconv"
)

// Mode selects the arithmetic used for indicator values.
type Mode uint8

const (
	// ModeUnset is the zero value and is rejected by Policy.Validate.
	ModeUnset Mode = iota
	// ModeExact accumulates on math/big.Rat; results are exact for any
	// finite float64 inputs.
	ModeExact
	// ModeFloat accumulates on float64.
	ModeFloat
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case ModeExact:
		return "exact"
	case ModeFloat:
		return "float"
	case ModeUnset:
		return "unset"
	default:
		return "mode(" + strconv.Itoa(int(m)) + ")"
	}
}

func (m Mode) valid() bool { return m == ModeExact || m == ModeFloat }

// Policy names the arithmetic of an archive: Computation is used while
// accumulating hypervolume sums, Final is the representation of every
// reported indicator. Archives require an explicit Policy; there is no
// package-level mutable default.
type Policy struct {
	Computation Mode
	Final       Mode
}

// Exact returns the all-exact policy. Recommended unless profiling
// shows the rational arithmetic to be the bottleneck.
func Exact() Policy { return Policy{Computation: ModeExact, Final: ModeExact} }

// Floats returns the all-float64 policy.
func Floats() Policy { return Policy{Computation: ModeFloat, Final: ModeFloat} }

// Validate rejects policies with unset or unknown modes.
func (p Policy) Validate() error {
	if !p.Computation.valid() || !p.Final.valid() {
		return ErrPolicy
	}

	return nil
}

// Scalar is an indicator value in a fixed Mode. In ModeExact a finite
// value is held as a *big.Rat; infinities (legal in both modes, e.g.
// the -Inf start value of hypervolume_plus) fall back to the float
// field. The zero Scalar is invalid; obtain values through Mode.Zero,
// Mode.FromFloat or arithmetic on existing Scalars.
type Scalar struct {
	mode Mode
	f    float64
	r    *big.Rat
}

// Zero returns the Scalar 0 in mode m.
func (m Mode) Zero() Scalar { return m.FromFloat(0) }

// NegInf returns the Scalar -Inf in mode m.
func (m Mode) NegInf() Scalar { return m.FromFloat(math.Inf(-1)) }

// FromFloat converts v into a Scalar of mode m. Infinities keep their
// float representation even in ModeExact; NaN is not a legal input.
func (m Mode) FromFloat(v float64) Scalar {
	if m == ModeExact && !math.IsInf(v, 0) {
		return Scalar{mode: ModeExact, r: new(big.Rat).SetFloat64(v)}
	}

	return Scalar{mode: m, f: v}
}

// Diff returns a - b as a Scalar of mode m. Both operands are
// converted before the subtraction; subtracting the float64 values
// first can round, which would make an exact result depend on how a
// volume is decomposed into differences.
func (m Mode) Diff(a, b float64) Scalar {
	return m.FromFloat(a).Sub(m.FromFloat(b))
}

// Mode returns the arithmetic mode of s.
func (s Scalar) Mode() Mode { return s.mode }

// IsInf reports whether s is +Inf (sign > 0), -Inf (sign < 0) or either
// (sign == 0).
func (s Scalar) IsInf(sign int) bool {
	if s.mode == ModeExact && s.r != nil {
		return false
	}

	return math.IsInf(s.f, sign)
}

// Sign returns -1, 0 or +1 according to the sign of s.
func (s Scalar) Sign() int {
	if s.mode == ModeExact && s.r != nil {
		return s.r.Sign()
	}
	switch {
	case s.f > 0:
		return 1
	case s.f < 0:
		return -1
	default:
		return 0
	}
}

// Float64 returns s rounded to the nearest float64.
func (s Scalar) Float64() float64 {
	if s.mode == ModeExact && s.r != nil {
		v, _ := s.r.Float64()

		return v
	}

	return s.f
}

// Rat returns the exact rational value of s, or nil when s is not a
// finite exact value.
func (s Scalar) Rat() *big.Rat {
	if s.mode == ModeExact && s.r != nil {
		return new(big.Rat).Set(s.r)
	}

	return nil
}

// Convert re-expresses s in mode m. Exact-to-float rounds; float-to-
// exact is lossless for every finite float64.
func (s Scalar) Convert(m Mode) Scalar {
	if s.mode == m {
		return s
	}

	return m.FromFloat(s.Float64())
}

// Add returns s + t in the mode of s.
func (s Scalar) Add(t Scalar) Scalar {
	if s.mode == ModeExact {
		if s.r != nil && t.exactFinite() {
			return Scalar{mode: ModeExact, r: new(big.Rat).Add(s.r, t.exactRat())}
		}

		return ModeExact.FromFloat(s.Float64() + t.Float64())
	}

	return Scalar{mode: s.mode, f: s.f + t.Float64()}
}

// Sub returns s - t in the mode of s.
func (s Scalar) Sub(t Scalar) Scalar {
	if s.mode == ModeExact {
		if s.r != nil && t.exactFinite() {
			return Scalar{mode: ModeExact, r: new(big.Rat).Sub(s.r, t.exactRat())}
		}

		return ModeExact.FromFloat(s.Float64() - t.Float64())
	}

	return Scalar{mode: s.mode, f: s.f - t.Float64()}
}

// Mul returns s * t in the mode of s.
func (s Scalar) Mul(t Scalar) Scalar {
	if s.mode == ModeExact {
		if s.r != nil && t.exactFinite() {
			return Scalar{mode: ModeExact, r: new(big.Rat).Mul(s.r, t.exactRat())}
		}

		return ModeExact.FromFloat(s.Float64() * t.Float64())
	}

	return Scalar{mode: s.mode, f: s.f * t.Float64()}
}

// Neg returns -s.
func (s Scalar) Neg() Scalar {
	if s.mode == ModeExact && s.r != nil {
		return Scalar{mode: ModeExact, r: new(big.Rat).Neg(s.r)}
	}

	return Scalar{mode: s.mode, f: -s.f}
}

// Cmp compares s and t: -1 if s < t, 0 if equal, +1 if s > t.
// Comparison is value-based and ignores the operands' modes.
func (s Scalar) Cmp(t Scalar) int {
	if s.exactFiniteStrict() && t.exactFiniteStrict() {
		return s.r.Cmp(t.r)
	}
	a, b := s.Float64(), t.Float64()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// String renders s. Exact finite values print as their decimal float
// approximation; this is a display convenience only.
func (s Scalar) String() string {
	return strconv.FormatFloat(s.Float64(), 'g', -1, 64)
}

// exactFinite reports whether t can participate in rational arithmetic
// without rounding, i.e. it is exact-finite or a finite float.
func (t Scalar) exactFinite() bool {
	if t.mode == ModeExact {
		return t.r != nil
	}

	return !math.IsInf(t.f, 0)
}

func (t Scalar) exactFiniteStrict() bool { return t.mode == ModeExact && t.r != nil }

// exactRat returns the rational value of t; only call after exactFinite.
func (t Scalar) exactRat() *big.Rat {
	if t.r != nil {
		return t.r
	}

	return new(big.Rat).SetFloat64(t.f)
}
