// Package driven defines the interfaces the core depends on: credential
// persistence, the Fitbit data source, and the spreadsheet sink. Adapters
// under internal/adapters/driven implement them.
package driven
