// Package helper provides test helpers shared by the package tests: an in-memory SQLite database
// with the administration and audit schemas, and spies for logging, metrics and tracing.
package helper
