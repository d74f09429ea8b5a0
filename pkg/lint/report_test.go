package lint

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector_Dedup(t *testing.T) {
	c := NewCollector()
	v := Violation{Module: "m", Rule: "LATCH", Message: "x", Line: 3}

	assert.True(t, c.Add(v))
	assert.False(t, c.Add(v))
	assert.True(t, c.Add(Violation{Module: "m", Rule: "LATCH", Message: "x", Line: 4}))
	assert.True(t, c.Raise("m", CaseDefault, 9, nil))
	assert.False(t, c.Raise("m", CaseDefault, 9, nil))

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, v, c.Violations()[0])
}

func TestCollector_ZeroValue(t *testing.T) {
	var c Collector
	assert.True(t, c.Add(Violation{Rule: "X"}))
	assert.False(t, c.Add(Violation{Rule: "X"}))
}

func TestSort(t *testing.T) {
	vs := []Violation{
		{Module: "b", Rule: "LATCH", Line: 1},
		{Module: "a", Rule: "XPROP", Line: 5},
		{Module: "a", Rule: "LATCH", Line: 5},
		{Module: "", Rule: "NOMODULE", Line: 99},
		{Module: "a", Rule: "BLKSEQ", Line: 2},
	}
	Sort(vs)

	var got []string
	for _, v := range vs {
		got = append(got, v.Module+":"+v.Rule)
	}
	assert.Equal(t, []string{":NOMODULE", "a:BLKSEQ", "a:LATCH", "a:XPROP", "b:LATCH"}, got)
}

func TestWriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, nil))
	assert.Empty(t, buf.String())

	require.NoError(t, WriteReport(&buf, []Violation{
		{Module: "alu", Rule: "CASEDEFAULT", Message: "Case statement lacks a 'default' case.", Line: 12},
	}))
	assert.Equal(t,
		"Found 1 violation(s):\n  - Module 'alu': [CASEDEFAULT] Case statement lacks a 'default' case. (line 12)\n",
		buf.String())
}
