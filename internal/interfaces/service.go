package interfaces

// Service interface defines the methods that every kind of interface exposing
// the escrow services must be compliant with.
type Service interface {
	Start() error
	Stop()
}
