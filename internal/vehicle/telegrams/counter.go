package telegrams

const Uint16MaxValue = 65535

// BoundedCounter hands out values in [min, max] and wraps back to min after max.
// It is not safe for concurrent use; callers serialize access.
type BoundedCounter struct {
	min   uint16
	max   uint16
	value uint16
}

func NewBoundedCounter(min, max uint16) *BoundedCounter {
	if min > max {
		min, max = max, min
	}
	return &BoundedCounter{min: min, max: max, value: min}
}

// NewRequestCounter covers the whole request id range.
func NewRequestCounter() *BoundedCounter {
	return NewBoundedCounter(0, Uint16MaxValue)
}

// NewOrderCounter skips 0, the "no order finished" value reported by the vehicle.
func NewOrderCounter() *BoundedCounter {
	return NewBoundedCounter(1, Uint16MaxValue)
}

// NewBoundedCounterAt starts the counter at value instead of min.
func NewBoundedCounterAt(min, max, value uint16) *BoundedCounter {
	c := NewBoundedCounter(min, max)
	if value >= c.min && value <= c.max {
		c.value = value
	}
	return c
}

// Next returns the current value and advances the counter.
func (c *BoundedCounter) Next() uint16 {
	current := c.value
	if c.value == c.max {
		c.value = c.min
	} else {
		c.value++
	}
	return current
}

// Peek returns the value the next call to Next will return.
func (c *BoundedCounter) Peek() uint16 {
	return c.value
}
