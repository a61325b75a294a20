package crowdnet

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"
	"github.com/sharnoff/crowdnet/initializers"
	"gonum.org/v1/gonum/mat"
)

// The topology of every Network is fixed.
const (
	InputSize  int = 4
	HiddenSize int = 8
	OutputSize int = 1
)

const (
	// LearningRate is the step size of every gradient-descent update.
	LearningRate float64 = 0.1

	weightBound float64 = 0.2
	biasBound   float64 = 0.1
)

// Network is a feed-forward network with one hidden layer and the logistic function as the
// activation of every unit. It is trained one sample at a time by Train.
//
// Alongside its live parameters, a Network holds a best checkpoint: a snapshot replaced by
// SaveBestCheckpoint and copied back by RestoreBestCheckpoint. Networks are not safe for
// concurrent use.
type Network struct {
	params *Parameters

	// never mutated; only ever replaced
	best *Parameters
}

// Activations holds the values of every unit after a forward pass.
type Activations struct {
	Hidden []float64
	Output []float64
}

// NewNetwork returns a Network whose weights are drawn uniformly from [-0.2, 0.2) and whose
// biases are drawn from [-0.1, 0.1), using src. Values are drawn in the order: input→hidden
// weights (row-major), hidden→output weights, hidden biases, output biases. The best checkpoint
// starts out equal to these initial parameters.
//
// NewNetwork panics if src is nil.
func NewNetwork(src *rand.Rand) *Network {
	p := newParameters()

	fill(initializers.Uniform(src).Bounds(-weightBound, weightBound),
		p.weightsIH.RawMatrix().Data, p.weightsHO.RawMatrix().Data)
	fill(initializers.Uniform(src).Bounds(-biasBound, biasBound),
		p.biasH.RawVector().Data, p.biasO.RawVector().Data)

	return &Network{params: p, best: p.clone()}
}

// fill sets each slice in turn
func fill(in initializers.Initializer, ws ...[]float64) {
	for _, w := range ws {
		in.Set(w)
	}
}

func checkSize(v []float64, size int, name string) error {
	if len(v) != size {
		return SizeMismatchError{size, len(v), name}
	}
	return nil
}

// forward does the two-stage pass with the given parameters, returning the input, hidden and
// output vectors.
func forward(p *Parameters, inputs []float64) (in, hidden, out *mat.VecDense) {
	in = mat.NewVecDense(InputSize, append([]float64(nil), inputs...))

	hidden = mat.NewVecDense(HiddenSize, nil)
	hidden.MulVec(p.weightsIH, in)
	hidden.AddVec(hidden, p.biasH)
	activate(hidden)

	out = mat.NewVecDense(OutputSize, nil)
	out.MulVec(p.weightsHO, hidden)
	out.AddVec(out, p.biasO)
	activate(out)

	return
}

func values(v *mat.VecDense) []float64 {
	vs := make([]float64, v.Len())
	for i := range vs {
		vs[i] = v.AtVec(i)
	}
	return vs
}

// Predict runs a forward pass on the given inputs, returning the activations of the hidden and
// output units. If len(inputs) != InputSize, a SizeMismatchError is returned.
func (net *Network) Predict(inputs []float64) (Activations, error) {
	if err := checkSize(inputs, InputSize, "inputs"); err != nil {
		return Activations{}, err
	}

	_, hidden, out := forward(net.params, inputs)
	return Activations{Hidden: values(hidden), Output: values(out)}, nil
}

// Train performs a single step of online gradient descent towards the given targets, returning
// the absolute error of the first output before the step.
//
// The hidden errors are backpropagated through the hidden→output weights as they were before
// this step.
func (net *Network) Train(inputs, targets []float64) (float64, error) {
	if err := checkSize(inputs, InputSize, "inputs"); err != nil {
		return 0, err
	} else if err := checkSize(targets, OutputSize, "targets"); err != nil {
		return 0, err
	}

	p := net.params
	in, hidden, out := forward(p, inputs)

	outErrs := mat.NewVecDense(OutputSize, nil)
	outGrads := mat.NewVecDense(OutputSize, nil)
	for i := 0; i < OutputSize; i++ {
		e := targets[i] - out.AtVec(i)
		outErrs.SetVec(i, e)
		outGrads.SetVec(i, e*sigmoidDeriv(out.AtVec(i))*LearningRate)
	}

	hiddenErrs := mat.NewVecDense(HiddenSize, nil)
	hiddenErrs.MulVec(p.weightsHO.T(), outErrs)

	p.weightsHO.RankOne(p.weightsHO, 1, outGrads, hidden)
	p.biasO.AddVec(p.biasO, outGrads)

	hiddenGrads := mat.NewVecDense(HiddenSize, nil)
	for i := 0; i < HiddenSize; i++ {
		h := hidden.AtVec(i)
		hiddenGrads.SetVec(i, hiddenErrs.AtVec(i)*sigmoidDeriv(h)*LearningRate)
	}

	p.weightsIH.RankOne(p.weightsIH, 1, hiddenGrads, in)
	p.biasH.AddVec(p.biasH, hiddenGrads)

	return math.Abs(outErrs.AtVec(0)), nil
}

// Evaluate returns the mean absolute error of the first output over the dataset. The Network is
// not modified. An empty dataset has an error of zero.
func (net *Network) Evaluate(data []Datum) (float64, error) {
	if len(data) == 0 {
		return 0, nil
	}

	var sum float64
	for i, d := range data {
		if !d.Fits() {
			return 0, errors.Errorf("Datum %d does not fit Network (%d inputs, %d outputs)", i, len(d.Inputs), len(d.Outputs))
		}

		_, _, out := forward(net.params, d.Inputs)
		sum += math.Abs(out.AtVec(0) - d.Outputs[0])
	}

	return sum / float64(len(data)), nil
}

// SaveBestCheckpoint replaces the best checkpoint with a copy of the current parameters.
func (net *Network) SaveBestCheckpoint() {
	net.best = net.params.clone()
}

// RestoreBestCheckpoint replaces the current parameters with a copy of the best checkpoint.
// Training afterwards does not affect the checkpoint.
func (net *Network) RestoreBestCheckpoint() {
	net.params = net.best.clone()
}

// Snapshot returns a copy of the current parameters.
func (net *Network) Snapshot() *Parameters {
	return net.params.clone()
}

// Best returns a copy of the best checkpoint.
func (net *Network) Best() *Parameters {
	return net.best.clone()
}
