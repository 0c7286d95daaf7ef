// Package parcelstate contains Status of a land parcel record.
package parcelstate

// Status is a lifecycle state of a land parcel. It only ever advances
// Pending -> Verified, never regresses.
type Status int

const (
	// None means the parcel record does not exist.
	None Status = iota
	// Pending is the state of a freshly registered parcel that awaits
	// agent verification.
	Pending
	// Verified is the state of a parcel whose ownership has been attested
	// by a verification agent. Only Verified parcels can change hands.
	Verified
)
