// Package order contains the Order aggregate and its three status
// dimensions: order status (commercial lifecycle), payment status and
// delivery status. The aggregate is the single write path for all of them;
// legal moves are encoded in an explicit transition table per delivery type
// and every applied change is returned as a Transition record that the
// application layer turns into history rows and notification snapshots.
package order
