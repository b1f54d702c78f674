// Package service contains the business logic between HTTP handlers and
// repositories: identifier and timestamp assignment, partial-update
// semantics, soft-delete rules, and parent-existence checks for
// child-resource listings.
package service
