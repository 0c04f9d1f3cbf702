// Package services implements the driving port interfaces.
// Services contain the fragment management state layer and orchestrate
// calls to the engine through driven ports.
//
// # Concurrency
//
// Every user action that talks to the engine runs inside one ActionQueue,
// so actions never interleave and the engine calls of one action are strictly
// sequential. The store snapshot is published with a single pointer swap.
package services
