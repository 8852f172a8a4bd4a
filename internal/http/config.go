package http

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Books       BookStore
	Users       UserStore
	Circulation Circulation
	Database    Pinger

	// Optional supporting services; routes are skipped when nil
	Consistency ConsistencyChecker
	Audit       AuditReader
	TaskQueue   TaskQueue
	Schedule    NextRunReporter

	// Reject write requests
	ReadOnly bool

	// Frontend assets served at / and /static
	StaticPath string

	// Application info
	Version string
}
