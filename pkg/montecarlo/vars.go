package montecarlo

import "time"

// Number of rollouts run for every legal move, if not set in the limits
const DefaultSearchesPerMove = 40

// Maximum number of random moves in a single rollout, if not set in the limits
const DefaultDepth = 10

// Root seed generator, used when the limits don't carry a fixed seed.
// Every rollout derives it's own generator from (root seed, task index)
var SeedGeneratorFn SeedGeneratorFnType = func() int64 {
	return time.Now().UnixNano()
}

// Set custom seed generator function for the rollouts' random number generators,
// by default uses current time in nanoseconds
func SetSeedGeneratorFn(f SeedGeneratorFnType) {
	if f != nil {
		SeedGeneratorFn = f
	}
}
