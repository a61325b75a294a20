package crowdnet

import (
	"gonum.org/v1/gonum/mat"
)

// Parameters is the full set of weights and biases of a Network. A *Parameters obtained from a
// Network (through Snapshot or Best) is a private copy: nothing the Network does afterwards will
// change it, and it cannot be used to change the Network.
type Parameters struct {
	// hidden × input
	weightsIH *mat.Dense
	// output × hidden
	weightsHO *mat.Dense

	biasH *mat.VecDense
	biasO *mat.VecDense
}

func newParameters() *Parameters {
	return &Parameters{
		weightsIH: mat.NewDense(HiddenSize, InputSize, nil),
		weightsHO: mat.NewDense(OutputSize, HiddenSize, nil),
		biasH:     mat.NewVecDense(HiddenSize, nil),
		biasO:     mat.NewVecDense(OutputSize, nil),
	}
}

// clone returns a deep copy; no backing storage is shared between p and the result.
func (p *Parameters) clone() *Parameters {
	return &Parameters{
		weightsIH: mat.DenseCopyOf(p.weightsIH),
		weightsHO: mat.DenseCopyOf(p.weightsHO),
		biasH:     mat.VecDenseCopyOf(p.biasH),
		biasO:     mat.VecDenseCopyOf(p.biasO),
	}
}

// WeightIH returns the weight from input j to hidden unit i.
func (p *Parameters) WeightIH(i, j int) float64 {
	return p.weightsIH.At(i, j)
}

// WeightHO returns the weight from hidden unit j to output i.
func (p *Parameters) WeightHO(i, j int) float64 {
	return p.weightsHO.At(i, j)
}

// BiasH returns the bias of hidden unit i.
func (p *Parameters) BiasH(i int) float64 {
	return p.biasH.AtVec(i)
}

// BiasO returns the bias of output i.
func (p *Parameters) BiasO(i int) float64 {
	return p.biasO.AtVec(i)
}

// Equal reports whether every weight and bias of p and q are identical.
func (p *Parameters) Equal(q *Parameters) bool {
	return mat.Equal(p.weightsIH, q.weightsIH) &&
		mat.Equal(p.weightsHO, q.weightsHO) &&
		mat.Equal(p.biasH, q.biasH) &&
		mat.Equal(p.biasO, q.biasO)
}
