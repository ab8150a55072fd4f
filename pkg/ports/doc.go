/*
Package ports defines the driven ports (interfaces) of the analyzer.

These interfaces decouple analysis from where its results live, so the same
workspace can persist reports in memory, on disk, in bbolt or in Redis.

# Key Interfaces

  - ReportStore: persists analysis reports by automaton name.
  - DistributedLocker: serializes work on one automaton name across replicas.

RunReportStoreContract is the shared test suite every ReportStore adapter runs.
*/
package ports
