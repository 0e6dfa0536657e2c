// Package viz publishes band level snapshots from the audio goroutine to a
// visualization subscriber.
//
// Publication is throttled by a [Limiter] whose frames-per-second cap is
// shared by every producer holding it. Each producer and each [Bus] keeps its
// own [Gate], so the cap bounds both analysis work and delivered traffic.
// Delivery is fire-and-forget: producers never block on subscribers.
package viz
