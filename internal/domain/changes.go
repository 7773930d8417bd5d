package domain

import "sort"

// ComputeChanges diffs two snapshots of the same directory. It is the
// fallback for backends that expose no changes endpoint: added files appear
// only in after, modified files appear in both with differing row counts.
// SizeChange is left empty because sizes arrive pre-formatted.
func ComputeChanges(before, after DatasetSnapshot) DatasetChangeSet {
	known := make(map[string]bool, len(before.Files))
	for _, name := range before.Files {
		known[name] = true
	}

	added := []string{}
	modified := []string{}
	for _, name := range after.Files {
		if !known[name] {
			added = append(added, name)
			continue
		}
		beforeRows, beforeOK := before.RowCounts[name]
		afterRows, afterOK := after.RowCounts[name]
		if beforeOK && afterOK && beforeRows != afterRows {
			modified = append(modified, name)
		}
	}
	sort.Strings(added)
	sort.Strings(modified)

	current := after
	return DatasetChangeSet{
		AddedFiles:    added,
		ModifiedFiles: modified,
		CurrentInfo:   &current,
	}
}
