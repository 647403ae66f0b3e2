package intcode

// Input supplies values to IN instructions.
// Next returns false when no value is available.
type Input interface {
	Next() (int64, bool)
}

// Queue is a FIFO of pre-supplied input values.
type Queue struct {
	values []int64
}

// NewQueue returns a queue holding values in order.
func NewQueue(values ...int64) *Queue {
	q := &Queue{}
	q.Push(values...)
	return q
}

// Push appends values to the back of the queue.
func (q *Queue) Push(values ...int64) {
	q.values = append(q.values, values...)
}

// Next removes and returns the value at the front of the queue.
func (q *Queue) Next() (int64, bool) {
	if len(q.values) == 0 {
		return 0, false
	}
	v := q.values[0]
	q.values = q.values[1:]
	return v, true
}

// Len returns the number of queued values.
func (q *Queue) Len() int {
	return len(q.values)
}

// Values returns a copy of the values still queued.
func (q *Queue) Values() []int64 {
	out := make([]int64, len(q.values))
	copy(out, q.values)
	return out
}

// InputFunc adapts a function to the Input interface. The function is
// called synchronously each time an IN instruction executes.
type InputFunc func() (int64, bool)

// Next calls f.
func (f InputFunc) Next() (int64, bool) {
	return f()
}

// noInput is used when a machine is created without an input source.
type noInput struct{}

func (noInput) Next() (int64, bool) { return 0, false }
