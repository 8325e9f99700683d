package tui

import (
	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/models"
)

type snapshotMsg struct {
	summaries []engine.Summary
	queue     []models.QueueItem
}

type syncDoneMsg struct {
	err error
}

type queueClearedMsg struct {
	resource string
	dropped  int64
	err      error
}

type engineEventMsg struct {
	event engine.Event
}

type copiedMsg struct{}

type copyFailedMsg struct {
	err error
}

type clearStatusMsg struct{}
