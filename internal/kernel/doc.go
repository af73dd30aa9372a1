// Package kernel owns the daemon scheduler and the shared bus.
//
// Ownership boundary:
// - the Bus (pulse sequence, log filter, sim intensity, awareness)
//
// - the Daemon contract and the fixed daemon set (heartbeat, status,
//   ai, sim, command)
//
// - the polling scheduler loop and its panic containment
//
// - organ-state persistence (save/load of the flat text snapshot)
//
// Concurrency model:
// - every daemon tick runs on the single scheduler goroutine, so the
//   Bus needs no lock.
//
// - the topology store and the telemetry snapshot store carry their
//   own guards; ticks hold them only for the read/mutate itself.
//
// - the stdin reader goroutine feeds the command daemon through a
//   channel and never touches shared state directly.
package kernel
