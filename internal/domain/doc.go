// Package domain contains shared domain types used across entity sub-packages.
// Entity-specific types live in sub-packages (domain/project, domain/task,
// domain/stage, domain/activity, domain/identity). This root package holds
// sentinel errors, validation types, the optional-field primitive used by
// partial-update payloads, and calendar-date helpers.
package domain
