package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrDeveloperWitnessFailed appears when the method must be
	// called by the registry developer but was not.
	ErrDeveloperWitnessFailed = "developer witness check failed"
	// ErrOwnerWitnessFailed appears when the method must be called
	// by an owner of some parcel but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrWitnessFailed appears when the method must be called
	// using a certain account but was not.
	ErrWitnessFailed = "witness check failed"
)

// CheckDeveloperWitness checks witness of the registry developer.
// It panics with ErrDeveloperWitnessFailed message on fail.
func CheckDeveloperWitness(developer []byte) {
	checkWitnessWithPanic(developer, ErrDeveloperWitnessFailed)
}

// CheckOwnerWitness checks witness of the passed parcel owner.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(owner []byte) {
	checkWitnessWithPanic(owner, ErrOwnerWitnessFailed)
}

// CheckWitness checks witness of the passed caller.
// It panics with ErrWitnessFailed message on fail.
func CheckWitness(caller []byte) {
	checkWitnessWithPanic(caller, ErrWitnessFailed)
}

func checkWitnessWithPanic(caller []byte, panicMsg string) {
	if !runtime.CheckWitness(caller) {
		panic(panicMsg)
	}
}
