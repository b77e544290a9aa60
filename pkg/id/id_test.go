package id

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestTraceIDs(t *testing.T) {
	assert.Equal(t, true, IsTraceID(GenTraceID()))
	assert.NotEqual(t, GenTraceID(), GenTraceID())

	a := TraceIDFrom("mint:alice")
	assert.Equal(t, a, TraceIDFrom("mint:alice"))
	assert.Equal(t, true, IsTraceID(a))

	op := GenTraceID()
	assert.Equal(t, EventTraceID(op, 0), EventTraceID(op, 0))
	assert.NotEqual(t, EventTraceID(op, 0), EventTraceID(op, 1))
	assert.Equal(t, true, IsTraceID(UUIDByName("not a uuid", "x")))
	assert.Equal(t, false, IsTraceID("not a uuid"))
}
