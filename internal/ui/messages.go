package ui

import "hydroboard/internal/domain"

type refreshRequestMsg struct{}

type snapshotMsg struct {
	target   domain.Target
	seq      int
	snapshot domain.DatasetSnapshot
	err      error
}

type triggerDoneMsg struct {
	err error
}

type changesMsg struct {
	changes domain.DatasetChangeSet
	err     error
}

type clearResultMsg struct {
	gen int
}
