package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeChangesAddedAndModified(t *testing.T) {
	before := DatasetSnapshot{
		TotalSize: "1.00 MB",
		FileCount: 2,
		Files:     []string{"gauge.csv", "reservoir.csv"},
		RowCounts: map[string]int{"gauge.csv": 10, "reservoir.csv": 20},
	}
	after := DatasetSnapshot{
		TotalSize: "1.20 MB",
		FileCount: 3,
		Files:     []string{"reservoir.csv", "pluviometer.csv", "gauge.csv"},
		RowCounts: map[string]int{"gauge.csv": 10, "reservoir.csv": 25, "pluviometer.csv": 5},
	}

	changes := ComputeChanges(before, after)

	assert.Equal(t, []string{"pluviometer.csv"}, changes.AddedFiles)
	assert.Equal(t, []string{"reservoir.csv"}, changes.ModifiedFiles)
	require.NotNil(t, changes.CurrentInfo)
	assert.Equal(t, "1.20 MB", changes.CurrentInfo.TotalSize)
	assert.Empty(t, changes.SizeChange)
}

func TestComputeChangesSortsOutput(t *testing.T) {
	after := DatasetSnapshot{Files: []string{"c.csv", "a.csv", "b.csv"}}

	changes := ComputeChanges(DatasetSnapshot{}, after)

	assert.Equal(t, []string{"a.csv", "b.csv", "c.csv"}, changes.AddedFiles)
	assert.Empty(t, changes.ModifiedFiles)
}

func TestComputeChangesNoRowCountsMeansNoModified(t *testing.T) {
	before := DatasetSnapshot{Files: []string{"a.csv"}}
	after := DatasetSnapshot{Files: []string{"a.csv"}}

	changes := ComputeChanges(before, after)

	assert.True(t, changes.IsEmpty())
}

func TestComputeChangesEmptyInputs(t *testing.T) {
	changes := ComputeChanges(DatasetSnapshot{}, DatasetSnapshot{})

	assert.Empty(t, changes.AddedFiles)
	assert.Empty(t, changes.ModifiedFiles)
	assert.True(t, changes.IsEmpty())
}

func TestSnapshotIsZero(t *testing.T) {
	assert.True(t, DatasetSnapshot{}.IsZero())
	assert.False(t, DatasetSnapshot{TotalSize: "0.00 MB", Files: []string{}}.IsZero())
}
