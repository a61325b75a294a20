// Package crowdnet forecasts the crowding level of a transit trip, from 1.0 (empty) to 5.0
// (packed) in steps of 0.5, given its date, the expected temperature and its direction.
//
// # Records
//
// Everything starts from Samples: historical trips, each with a date, a temperature, a Direction
// and the crowding level that was observed. Directions are parsed leniently:
//
//	dir, err := crowdnet.ParseDirection("andata") // Outbound
//
// Invalid user input of any kind is reported as an *InputValidationError, naming the field that
// was rejected.
//
// # The Network
//
// The model itself is a Network with a fixed topology: 4 inputs, 8 hidden units and 1 output,
// all with sigmoid activations, trained one sample at a time by gradient descent with a constant
// learning rate of 0.1:
//
//	net := crowdnet.NewNetwork(rand.New(rand.NewSource(seed)))
//	absErr, err := net.Train(inputs, []float64{target})
//
// The Network keeps a second copy of its parameters, the best checkpoint, so that training can
// return to the parameters that did best on held-out data:
//
//	net.SaveBestCheckpoint()
//	// ... more training ...
//	net.RestoreBestCheckpoint()
//
// # Subpackages
//
// The Network only sees vectors in [0, 1]. Scaling records into those vectors, and splitting a
// corpus into training and test sets, is done by the subpackage "features". The subpackage
// "trainer" ties both together with early stopping, and turns the network output back into a
// rounded crowding level with a confidence. Corpora are loaded by "records", results written by
// "report", and served over HTTP by "server".
package crowdnet
