package crowdnet

// Datum is a simple wrapper used to send samples to the Network, for training or evaluation.
type Datum struct {
	// Inputs must have length InputSize.
	Inputs []float64

	// Outputs is the expected output of the network, given the input. It must have length
	// OutputSize.
	Outputs []float64
}

// Fits indicates whether or not a given Datum's dimensions match those of the Network.
func (d Datum) Fits() bool {
	return len(d.Inputs) == InputSize && len(d.Outputs) == OutputSize
}
