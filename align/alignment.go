// Package align: the Alignment value type and its cost/rendering methods.
package align

import (
	"fmt"
	"strings"
)

// Any is the wildcard operation key in a per-operation cost map: it serves
// every operation that has no explicit entry of its own.
const Any = "*"

// Tuple aligns one position of the left input with one position of the
// right input. Left or Right may be Gap (-1), never both. Op optionally
// names the grammar operation that produced the tuple (ADP kernels only).
type Tuple struct {
	Left  int
	Right int
	Op    string
}

// String renders the tuple as "op: i vs. j" with "-" for gaps.
func (t Tuple) String() string {
	var sb strings.Builder
	if t.Op != "" {
		sb.WriteString(t.Op)
		sb.WriteString(": ")
	}
	if t.Left >= 0 {
		fmt.Fprintf(&sb, "%d", t.Left)
	} else {
		sb.WriteByte('-')
	}
	sb.WriteString(" vs. ")
	if t.Right >= 0 {
		fmt.Fprintf(&sb, "%d", t.Right)
	} else {
		sb.WriteByte('-')
	}

	return sb.String()
}

// Alignment is an ordered sequence of tuples describing how the left input
// maps onto the right input. The zero value is ready to use.
type Alignment []Tuple

// Append adds an unlabeled tuple to the alignment.
func (a *Alignment) Append(left, right int) {
	*a = append(*a, Tuple{Left: left, Right: right})
}

// AppendOp adds a tuple labeled with the operation that produced it.
func (a *Alignment) AppendOp(left, right int, op string) {
	*a = append(*a, Tuple{Left: left, Right: right, Op: op})
}

// Equal reports structural equality of two alignments.
func (a Alignment) Equal(b Alignment) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// String renders the alignment one tuple per line.
func (a Alignment) String() string {
	lines := make([]string, len(a))
	for i, t := range a {
		lines[i] = t.String()
	}

	return strings.Join(lines, "\n")
}

// Validate checks the alignment invariants against inputs of length m and n:
// indices in range, non-negative lefts strictly increasing, likewise rights,
// and never both indices negative.
func (a Alignment) Validate(m, n int) error {
	lastLeft, lastRight := -1, -1
	for k, t := range a {
		if t.Left < 0 && t.Right < 0 {
			return fmt.Errorf("tuple %d is a double gap: %w", k, ErrMalformedTuple)
		}
		if t.Left >= m || t.Right >= n {
			return fmt.Errorf("tuple %d (%s) exceeds input lengths %d/%d: %w", k, t, m, n, ErrOutOfRange)
		}
		if t.Left >= 0 {
			if t.Left <= lastLeft {
				return fmt.Errorf("tuple %d: left index %d not increasing: %w", k, t.Left, ErrMalformedTuple)
			}
			lastLeft = t.Left
		}
		if t.Right >= 0 {
			if t.Right <= lastRight {
				return fmt.Errorf("tuple %d: right index %d not increasing: %w", k, t.Right, ErrMalformedTuple)
			}
			lastRight = t.Right
		}
	}

	return nil
}

// Cost sums delta over all tuples of the alignment, passing nil for gap
// sides. Operation labels are ignored; use CostWithOps for per-operation
// kernels.
// Complexity: O(len(a)) kernel invocations.
func Cost[T any](a Alignment, x, y []T, delta Delta[T]) (float64, error) {
	var total float64
	for k, t := range a {
		left, right, err := operands(t, x, y)
		if err != nil {
			return 0, fmt.Errorf("tuple %d (%s): %w", k, t, err)
		}
		c := delta(left, right)
		if err = checkCost(c); err != nil {
			return 0, fmt.Errorf("tuple %d (%s): %w", k, t, err)
		}
		total += c
	}

	return total, nil
}

// CostWithOps sums per-operation kernels over a labeled alignment. Each
// tuple is priced by deltas[t.Op], falling back to the Any entry; a tuple
// whose operation has neither mapping yields ErrUnknownOperation.
func CostWithOps[T any](a Alignment, x, y []T, deltas map[string]Delta[T]) (float64, error) {
	var total float64
	for k, t := range a {
		delta, ok := deltas[t.Op]
		if !ok {
			delta, ok = deltas[Any]
		}
		if !ok {
			return 0, fmt.Errorf("tuple %d (%s) operation %q: %w", k, t, t.Op, ErrUnknownOperation)
		}
		left, right, err := operands(t, x, y)
		if err != nil {
			return 0, fmt.Errorf("tuple %d (%s): %w", k, t, err)
		}
		c := delta(left, right)
		if err = checkCost(c); err != nil {
			return 0, fmt.Errorf("tuple %d (%s): %w", k, t, err)
		}
		total += c
	}

	return total, nil
}

// Render formats the alignment against its inputs, showing the aligned
// labels instead of bare indices.
func Render[T any](a Alignment, x, y []T) (string, error) {
	lines := make([]string, len(a))
	for k, t := range a {
		left, right, err := operands(t, x, y)
		if err != nil {
			return "", fmt.Errorf("tuple %d (%s): %w", k, t, err)
		}
		var sb strings.Builder
		if t.Op != "" {
			sb.WriteString(t.Op)
			sb.WriteString(": ")
		}
		if left != nil {
			fmt.Fprintf(&sb, "%v", *left)
		} else {
			sb.WriteByte('-')
		}
		sb.WriteString(" vs. ")
		if right != nil {
			fmt.Fprintf(&sb, "%v", *right)
		} else {
			sb.WriteByte('-')
		}
		lines[k] = sb.String()
	}

	return strings.Join(lines, "\n"), nil
}

// operands resolves a tuple to its labels, nil marking the gap side.
func operands[T any](t Tuple, x, y []T) (*T, *T, error) {
	if t.Left < 0 && t.Right < 0 {
		return nil, nil, ErrMalformedTuple
	}
	var left, right *T
	if t.Left >= 0 {
		if t.Left >= len(x) {
			return nil, nil, ErrOutOfRange
		}
		left = &x[t.Left]
	}
	if t.Right >= 0 {
		if t.Right >= len(y) {
			return nil, nil, ErrOutOfRange
		}
		right = &y[t.Right]
	}

	return left, right, nil
}
