// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - BookStore: Catalogue access (internal/http/stores.go)
//   - UserStore: Member access (internal/http/stores.go)
//   - Pinger: Database liveness for /health (internal/http/stores.go)
//
// ## Circulation Interfaces
//
//   - Circulation: Borrow, Return and borrowing lookups (internal/http/stores.go)
//   - ConsistencyChecker: Availability audit (internal/http/stores.go, internal/tasks)
//   - EventRecorder: Lifecycle notifications (internal/circulation/manager.go)
//
// ## Background Work Interfaces
//
//   - TaskQueue / Enqueuer: Task submission (internal/http, internal/scheduler)
//   - AuditEventCleaner: Audit retention (internal/tasks/cleanup_audit.go)
//   - NextRunReporter: Scheduled job timing (internal/http/stores.go)
//
// # Adding a New Background Task
//
//  1. Define the task and its processor in internal/tasks/
//
//     type ExpireHoldsTask struct {
//         OlderThanDays int `json:"older_than_days"`
//     }
//
//     func (t ExpireHoldsTask) Config() backlite.QueueConfig {
//         return backlite.QueueConfig{Name: "expire_holds", MaxAttempts: 3}
//     }
//
//  2. Register its queue in entrypoint.go and list it in tasks.Types
//
//  3. Optionally schedule it with scheduler.Job
//
// # Adding a New Database Domain
//
//  1. Create sub-package: internal/database/<domain>/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Add the entity to the AutoMigrate list in internal/database
//
//  4. Add compile-time check:
//
//     var _ http.SomeStore = (*Repository)(nil)
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
