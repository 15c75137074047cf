// Package order provides domain entities and business logic for takeout order
// management. It implements the Order aggregate root with a forward-only
// status machine and the two conditional writers the just-in-time decision
// engine relies on: the provider-call throttle claim and the one-shot
// preparation trigger.
package order
