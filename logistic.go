package crowdnet

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// inputs to the logistic function are clamped to this magnitude before exponentiation
const sigmoidClamp float64 = 500

func sigmoid(x float64) float64 {
	x = math.Max(-sigmoidClamp, math.Min(sigmoidClamp, x))
	return 1 / (1 + math.Exp(-x))
}

// derivative of the logistic function, in terms of its output
func sigmoidDeriv(y float64) float64 {
	return y * (1 - y)
}

// applies the logistic function to every element of v, in place
func activate(v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, sigmoid(v.AtVec(i)))
	}
}
