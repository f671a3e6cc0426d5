// Package config defines the immutable configuration snapshot consumed by
// the solving core.
//
// The core performs no file or network I/O: a Config value is assembled by
// an external collaborator (CLI, YAML loader, test harness) and passed in
// at call time. All fields are plain values; the core treats the snapshot
// as read-only for the duration of a solve call.
//
// Field groups mirror the deployment surface of the framework:
//
//   - TimeLimits  — per-size-category wall-clock limits used to derive a
//     Budget when the caller does not supply an explicit deadline.
//   - Resources   — memory/CPU ceilings enforced cooperatively by the
//     memory optimizer and the algorithm selector.
//   - Performance — solution-quality threshold consumed by retry logic,
//     plus monitoring knobs (MinSuccessRate, MaxConsecutiveFailures) that
//     are carried for the external monitoring collaborator and never read
//     by the core itself.
//   - Sizes       — node-count boundaries between the small/medium/large
//     instance categories.
//   - Partitioning — large-instance parameters: the direct-solve
//     threshold, the target partition size (the tunable invariant — count
//     scales with n, size stays roughly constant), and clustering
//     preferences.
//
// Use Default() as a starting point and override fields as needed;
// Validate() rejects internally inconsistent snapshots.
package config
