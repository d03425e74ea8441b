package smoothing

import "math"

// snapEpsilon is the distance at which a smoothed value lands exactly on its
// target. Without it a geometric decay towards 0 stalls on the smallest
// denormal and a released voice never becomes silent.
const snapEpsilon = 1e-9

var posInf = math.Inf(1)
