package precompute

// Validator stores the pre computation of individual validator's participation records for the
// previous epoch of a state. Pre computing and storing such record lets every reward calculation of
// a request read one consistent view of the state.
type Validator struct {
	// IsSlashed is true if the validator has been slashed.
	IsSlashed bool
	// IsActiveCurrentEpoch is true if the validator was active current epoch.
	IsActiveCurrentEpoch bool
	// IsActivePrevEpoch is true if the validator was active prev epoch.
	IsActivePrevEpoch bool
	// IsEligible is true if the validator takes part in the previous epoch flag accounting.
	IsEligible bool
	// IsPrevEpochSourceAttester is true if the validator attested to source previous epoch.
	IsPrevEpochSourceAttester bool
	// IsPrevEpochTargetAttester is true if the validator attested previous epoch target.
	IsPrevEpochTargetAttester bool
	// IsPrevEpochHeadAttester is true if the validator attested the previous epoch head.
	IsPrevEpochHeadAttester bool
	// CurrentEpochEffectiveBalance is how much effective balance this validator has current epoch.
	CurrentEpochEffectiveBalance uint64
	// InactivityScore of the validator.
	InactivityScore uint64
}

// Balance stores the pre computation of the total participated balances for a given epoch.
// Attested totals only count unslashed validators active in the previous epoch.
type Balance struct {
	// ActiveCurrentEpoch is the total effective balance of all active validators during current epoch.
	ActiveCurrentEpoch uint64
	// ActivePrevEpoch is the total effective balance of all active validators during prev epoch.
	ActivePrevEpoch uint64
	// PrevEpochAttested is the total effective balance of all validators who attested to the source during prev epoch.
	PrevEpochAttested uint64
	// PrevEpochTargetAttested is the total effective balance of all validators who attested
	// for epoch boundary block during prev epoch.
	PrevEpochTargetAttested uint64
	// PrevEpochHeadAttested is the total effective balance of all validators who attested
	// correctly for head block during prev epoch.
	PrevEpochHeadAttested uint64
}
