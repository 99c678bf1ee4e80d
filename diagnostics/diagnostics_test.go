package diagnostics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/cparse/diagnostics"
)

func TestParseErrorMessage(t *testing.T) {
	err := diagnostics.New(10, 2, 3)
	assert.Equal(t, "parse error at offset 10", err.Error())

	withExpected := diagnostics.New(10, 2, 3, "identifier", ";")
	assert.Equal(t, "parse error at offset 10: expected identifier or ;", withExpected.Error())
}

func TestSinkKeepsFurthestOffset(t *testing.T) {
	sink := &diagnostics.Sink{}
	sink.Record(diagnostics.New(5, 1, 6, "a"))
	sink.Record(diagnostics.New(12, 1, 13, "b"))
	sink.Record(diagnostics.New(3, 1, 4, "c"))

	got := sink.Furthest()
	require.NotNil(t, got)
	assert.Equal(t, 12, got.Offset)
	assert.Equal(t, []string{"b"}, got.Expected)
}

func TestSinkMergesExpectedOnTie(t *testing.T) {
	sink := &diagnostics.Sink{}
	sink.Record(diagnostics.New(5, 1, 6, "identifier"))
	sink.Record(diagnostics.New(5, 1, 6, ";"))
	sink.Record(diagnostics.New(5, 1, 6, "identifier"))

	got := sink.Furthest()
	require.NotNil(t, got)
	assert.Equal(t, []string{"identifier", ";"}, got.Expected)
}

func TestSinkIgnoresNil(t *testing.T) {
	sink := &diagnostics.Sink{}
	sink.Record(nil)
	assert.Nil(t, sink.Furthest())
}
