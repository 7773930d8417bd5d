package domain

type Target string

const (
	TargetRaw       Target = "raw"
	TargetProcessed Target = "processed"
)

// DatasetSnapshot describes a dataset directory at a point in time. The
// backend pre-formats TotalSize; it is display text, never parsed.
type DatasetSnapshot struct {
	TotalSize string         `json:"total_size"`
	FileCount int            `json:"file_count"`
	Files     []string       `json:"files"`
	RowCounts map[string]int `json:"row_counts,omitempty"`
}

func (snapshot DatasetSnapshot) IsZero() bool {
	return snapshot.TotalSize == "" && snapshot.FileCount == 0 && len(snapshot.Files) == 0
}

// DatasetChangeSet is the delta between two snapshots of the processed
// output directory.
type DatasetChangeSet struct {
	SizeChange    string           `json:"size_change"`
	AddedFiles    []string         `json:"added_files"`
	ModifiedFiles []string         `json:"modified_files"`
	CurrentInfo   *DatasetSnapshot `json:"current_info,omitempty"`
}

func (changes DatasetChangeSet) IsEmpty() bool {
	return len(changes.AddedFiles) == 0 && len(changes.ModifiedFiles) == 0
}
