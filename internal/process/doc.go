// Package process spawns and terminates the supervised bot processes.
//
// Each bot is started in its own process group so that an interrupt delivered
// to the supervisor's terminal does not reach the bots directly, and so the
// supervisor can signal a bot together with everything it forked. Full
// process-group termination is only guaranteed on Linux; on macOS the
// semantics are best-effort, and on Windows there are no process groups at
// all, so signals are delivered to the direct child only and any
// grandchildren must be cleaned up separately.
package process
