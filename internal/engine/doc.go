// Package engine contains the simulation loop and per-tick pet logic.
// This is the heartbeat of Pet Crossing.
//
// ARCHITECTURAL RULE: the Clock does NOT mutate pet state directly. It
// invokes the step callback it was given; the session coordinator owns
// the live Game and serializes every mutation behind its lock.
package engine
