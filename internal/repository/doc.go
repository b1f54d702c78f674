// Package repository contains data-access implementations.
//
// The postgres subpackage holds one repository per entity, each issuing
// hand-written SQL through the shared connection pool. Multi-statement
// reads (the service detail fetch, count+page listings) run inside a
// single read-only transaction.
package repository
