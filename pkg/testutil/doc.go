// Package testutil provides fixtures and collaborators for testing
// model-extract components.
//
// Key components:
//   - TrafficLight / TimedLight: small Kripke structures used across tests
//   - MemoryWriter: an in-memory scope.Writer with error injection
//   - MockRenderer / MockOpener: func-field mocks of the pipeline collaborators
//   - CreateFile / WriteStructureFile: on-disk inputs for end to end tests
//
// All test data is defined inline, not in external files.
package testutil
