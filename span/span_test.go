package span_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/span"
)

func TestNoneIsNone(t *testing.T) {
	require.True(t, span.None().IsNone())
	require.False(t, span.Span{Begin: 0, End: 3}.IsNone())
}

func TestJoin(t *testing.T) {
	tests := []struct {
		name string
		a, b span.Span
		want span.Span
	}{
		{"both none", span.None(), span.None(), span.None()},
		{"a none", span.None(), span.Span{Begin: 2, End: 5}, span.Span{Begin: 2, End: 5}},
		{"b none", span.Span{Begin: 2, End: 5}, span.None(), span.Span{Begin: 2, End: 5}},
		{"disjoint", span.Span{Begin: 0, End: 3}, span.Span{Begin: 10, End: 12}, span.Span{Begin: 0, End: 12}},
		{"overlapping", span.Span{Begin: 5, End: 10}, span.Span{Begin: 2, End: 7}, span.Span{Begin: 2, End: 10}},
		{"nested", span.Span{Begin: 0, End: 20}, span.Span{Begin: 5, End: 8}, span.Span{Begin: 0, End: 20}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, span.Join(tc.a, tc.b))
		})
	}
}

func TestSpannedConstructors(t *testing.T) {
	s := span.New(42, span.Span{Begin: 1, End: 2})
	assert.Equal(t, 42, s.Node)
	assert.False(t, s.Span.IsNone())

	u := span.Unspanned("x")
	assert.Equal(t, "x", u.Node)
	assert.True(t, u.Span.IsNone())
}

func TestString(t *testing.T) {
	assert.Equal(t, "<no span>", span.None().String())
	assert.Equal(t, "3..7", span.Span{Begin: 3, End: 7}.String())
}
