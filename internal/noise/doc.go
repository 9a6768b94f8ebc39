// Package noise provides exact (or near-exact) pathwise samplers for the
// stochastic processes that drive a random ODE: Wiener, Ornstein-Uhlenbeck,
// geometric Brownian motion, compound Poisson, Poisson step, exponential
// Hawkes, transport, fractional Brownian motion, and products of these.
//
// Every sampler fills a caller-owned buffer with one realization discretized
// on uniformly spaced points over the process's time span, so the same buffer
// can be reused across Monte Carlo iterations without reallocation. Sampling
// is driven by an explicit *rand.Rand so that a fixed seed reproduces the
// exact same path.
package noise
