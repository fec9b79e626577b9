// Package domain contains the core types of oxysheet: Fitbit credentials,
// SpO2 samples, and the error kinds shared between the service layer and the
// adapters. It has no dependencies on the adapters.
package domain
