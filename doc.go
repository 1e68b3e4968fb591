// SPDX-License-Identifier: MIT

// Package htree implements a hierarchical allocator: every allocation is
// attached to a parent allocation, forming a forest of ownership trees.
// Freeing a node recursively frees its entire subtree. Nodes may carry a
// name, a tracked element count, destructors, and change notifiers, and may
// be reparented (Steal) or resized in place.
//
// A Context holds the sentinel root, the pluggable Backend, and the
// per-Context notifier count; construct one with NewContext. Contexts are
// fully independent of each other, so tests can freely construct their own
// without isolating from any shared package state.
package htree
