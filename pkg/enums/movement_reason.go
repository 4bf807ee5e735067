package enums

// Movement reasons are free text on the ledger, but the service applies these
// defaults when the caller leaves the field blank.
const (
	MovementReasonAdjustment = "Adjustment"
	MovementReasonInstall    = "Install"
)
