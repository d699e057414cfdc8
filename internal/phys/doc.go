// Package phys provides the shared primitives for the descent simulation:
//
//   - [Vec3]: 3D vector used for position, velocity, and force
//   - domain errors shared by the setter boundaries of the core packages
//
// Coordinates follow the simulation convention: Y is altitude (up positive),
// X and Z span the horizontal plane. All quantities are SI (meters, seconds,
// kilograms, newtons).
package phys
