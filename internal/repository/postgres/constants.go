package postgres

import "time"

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errStudioNotFound  = "studio not found"
	errAdminNotFound   = "master admin not found"
	errClientNotFound  = "client not found"
	errProjectNotFound = "project not found"
	errTagNotFound     = "deliverable tag not found"
	errTagStillInUse   = "deliverable tag is still in use"
	errNoDeliverables  = "Please select at least one deliverable"
)
