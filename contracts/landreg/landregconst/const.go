// Package landregconst contains constants of the Land Registry contract that
// are also useful for off-chain code.
package landregconst

const (
	// RegistrationFee is the exact amount of GAS (in its native precision of
	// 8 decimals) tendered for every parcel registration and forwarded to the
	// registry developer. Payments above or below it are rejected.
	RegistrationFee = 1_0000_0000

	// NotFoundError is returned if the requested parcel is missing.
	NotFoundError = "parcel does not exist"

	// AlreadyExistsError is returned on attempt to register a parcel with an
	// already used certificate.
	AlreadyExistsError = "parcel already exists"

	// NotVerifiedError is returned on attempt to transfer a parcel that has
	// not been verified by an agent yet.
	NotVerifiedError = "parcel is not verified"

	// IncorrectFeeError is returned when the tendered payment differs from
	// RegistrationFee.
	IncorrectFeeError = "incorrect registration fee"

	// NotAgentError is returned when an address expected to be a verification
	// agent is not in the roster.
	NotAgentError = "address is not a verification agent"

	// AlreadyAgentError is returned on attempt to authorize an address that
	// is already in the roster.
	AlreadyAgentError = "address is already a verification agent"

	// FeeTransferError is returned when the GAS transfer of the registration
	// fee to the developer fails; the whole registration is rolled back.
	FeeTransferError = "failed to transfer registration fee, aborting"
)
