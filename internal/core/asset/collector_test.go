package asset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCollector_RecordsAreCopied tests that the collector hands out copies
func TestCollector_RecordsAreCopied(t *testing.T) {
	c := NewCollector()
	c.Add(CSS("a.css"), JS("b.js"))

	records := c.Records()
	records[0] = Inline("tampered()")

	assert.Equal(t, 2, c.Len())
	require.NotNil(t, c.Records()[0].Type)
	assert.Equal(t, TypeCSS, *c.Records()[0].Type)
}

// TestCollector_KeepsSubmissionOrder tests that records come back in the order they were added
func TestCollector_KeepsSubmissionOrder(t *testing.T) {
	c := NewCollector()
	assert.Equal(t, 0, c.Len())
	assert.Empty(t, c.Records())

	c.Add(CSS("a.css"))
	c.Add(JS("b.js"), Inline("c()"))

	records := c.Records()
	require.Len(t, records, 3)
	assert.Equal(t, "a.css", *records[0].Source)
	assert.Equal(t, "b.js", *records[1].Source)
	assert.Equal(t, "c()", *records[2].Source)
}
