package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/libraryhub/library/internal/audit"
	"github.com/libraryhub/library/internal/circulation"
	"github.com/libraryhub/library/internal/database"
	"github.com/libraryhub/library/internal/database/books"
	"github.com/libraryhub/library/internal/database/users"
	"github.com/libraryhub/library/internal/http"
	"github.com/libraryhub/library/internal/scheduler"
	"github.com/libraryhub/library/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ http.BookStore = (*books.Repository)(nil)
var _ http.UserStore = (*users.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

// =============================================================================
// Circulation
// =============================================================================

var _ http.Circulation = (*circulation.Manager)(nil)
var _ http.ConsistencyChecker = (*circulation.Manager)(nil)
var _ tasks.ConsistencyChecker = (*circulation.Manager)(nil)

// =============================================================================
// Audit
// =============================================================================

var _ circulation.EventRecorder = (*audit.Service)(nil)
var _ http.AuditReader = (*audit.Service)(nil)
var _ tasks.AuditEventCleaner = (*audit.Service)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ http.TaskQueue = (*tasks.Client)(nil)
var _ scheduler.Enqueuer = (*tasks.Client)(nil)
var _ http.NextRunReporter = (*scheduler.Scheduler)(nil)
