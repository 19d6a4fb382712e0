package mesh

import gomath "math"

func inf() float64 { return gomath.Inf(1) }
