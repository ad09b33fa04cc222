// Package monitor holds the submission monitor's view state and the pure
// derivation from that state to a render model.
//
// State is mutated only through the fetch and refresh operations, each split
// into a Begin step and a Resolve step so an event loop can run the network
// call between them. Derive never mutates anything.
package monitor
