// Package bridge runs the embedded Neovim process.
//
// NeovimRuntime starts `nvim --embed` with a private --listen address and
// services it from an errgroup: one goroutine forwards stdout chunks to the
// UI loop as window.BackendOutput, one logs stderr, and one waits for the
// process, records its exit status in the RunningTracker and posts
// window.NeovimExited. The RPC protocol spoken over those pipes is handled
// elsewhere.
//
// ShutdownTimeout is the only way to stop the runtime. It closes stdin,
// interrupts the process and waits a bounded time for the goroutines; past
// the deadline it logs and returns, and the process is killed once its wait
// delay expires.
package bridge
