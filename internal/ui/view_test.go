package ui

import (
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hydroboard/internal/domain"
)

func TestRenderChangesAddedOnly(t *testing.T) {
	changes := domain.DatasetChangeSet{
		SizeChange:    "+12 KB",
		AddedFiles:    []string{"a.csv", "b.csv"},
		ModifiedFiles: []string{},
	}

	rendered := renderChanges(changes)

	assert.Contains(t, rendered, "Size change: +12 KB")
	assert.Contains(t, rendered, "Added Files")
	assert.Equal(t, 2, strings.Count(rendered, "  + "))
	assert.Contains(t, rendered, "a.csv")
	assert.Contains(t, rendered, "b.csv")
	assert.NotContains(t, rendered, "Modified Files")
	assert.NotContains(t, rendered, "Current Output")
}

func TestRenderChangesModifiedAndCurrentInfo(t *testing.T) {
	current := domain.DatasetSnapshot{TotalSize: "3.40 MB", FileCount: 7}
	changes := domain.DatasetChangeSet{
		ModifiedFiles: []string{"reservoir.csv"},
		CurrentInfo:   &current,
	}

	rendered := renderChanges(changes)

	assert.NotContains(t, rendered, "Added Files")
	assert.Contains(t, rendered, "Modified Files")
	assert.Contains(t, rendered, "  ~ reservoir.csv")
	assert.Contains(t, rendered, "Current Output")
	assert.Contains(t, rendered, "3.40 MB")
}

func TestRenderChangesEmpty(t *testing.T) {
	rendered := renderChanges(domain.DatasetChangeSet{})
	assert.Contains(t, rendered, "No changes")
}

func TestRenderFileListEmptySnapshot(t *testing.T) {
	snapshot := domain.DatasetSnapshot{TotalSize: "0 B", FileCount: 0, Files: []string{}}
	assert.Equal(t, "No files", renderFileList(snapshot, true))
}

func TestRenderFileListNotLoaded(t *testing.T) {
	assert.Contains(t, renderFileList(domain.DatasetSnapshot{}, false), "Not loaded")
}

func TestRenderFileListShowsRowCounts(t *testing.T) {
	snapshot := domain.DatasetSnapshot{
		FileCount: 2,
		Files:     []string{"gauge.csv", "metadata/sensors.csv"},
		RowCounts: map[string]int{"gauge.csv": 42},
	}

	rendered := renderFileList(snapshot, true)
	lines := strings.Split(rendered, "\n")

	require.Len(t, lines, 2)
	assert.Equal(t, "gauge.csv (42 rows)", lines[0])
	assert.Equal(t, "metadata/sensors.csv", lines[1])
}

func TestRenderFileListCountMismatchRendersListLength(t *testing.T) {
	snapshot := domain.DatasetSnapshot{
		FileCount: 5,
		Files:     []string{"a.csv", "b.csv"},
	}

	rendered := renderFileList(snapshot, true)
	assert.Len(t, strings.Split(rendered, "\n"), 2)

	summary := snapshotSummary(snapshot, true)
	assert.Contains(t, strings.Join(summary, "\n"), "Files: 5")
	assert.Contains(t, strings.Join(summary, "\n"), "Listed: 2")
}

func TestViewRendersWithoutData(t *testing.T) {
	model, _ := newTestModel(&fakeBackend{})

	rendered := model.View()

	assert.Contains(t, rendered, "Hydroboard")
	assert.Contains(t, rendered, "not loaded")
}

func TestViewRendersSnapshotAndNarrowWidth(t *testing.T) {
	model, workflow := newTestModel(&fakeBackend{})
	workflow.Preload(domain.TargetRaw, domain.DatasetSnapshot{
		TotalSize: "12.30 MB",
		FileCount: 2,
		Files:     []string{"gauge.csv", "reservoir.csv"},
	})

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model = asModel(t, updated)
	rendered := model.View()
	assert.Contains(t, rendered, "12.30 MB")
	assert.Contains(t, rendered, "gauge.csv")

	updated, _ = model.Update(tea.WindowSizeMsg{Width: 40, Height: 20})
	model = asModel(t, updated)
	assert.NotEmpty(t, model.View())
}

func TestHelpView(t *testing.T) {
	model, _ := newTestModel(&fakeBackend{})

	updated, _ := model.Update(keyPress('?'))
	model = asModel(t, updated)

	rendered := model.View()
	assert.Contains(t, rendered, "Hydroboard Help")
	assert.Contains(t, rendered, "update data")
}

func TestTrimStatusKeepsMultiByteRunesIntact(t *testing.T) {
	message := strings.Repeat("réservoir à", 10)

	trimmed := trimStatus(message, 24)

	assert.True(t, utf8.ValidString(trimmed))
	assert.True(t, strings.HasSuffix(trimmed, "..."))
	assert.Len(t, []rune(trimmed), 23)
}

func TestTrimStatusLeavesShortMessages(t *testing.T) {
	assert.Equal(t, "ready", trimStatus("ready", 40))
	assert.Equal(t, "ready", trimStatus("ready", 0))
}
