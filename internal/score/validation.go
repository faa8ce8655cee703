package score

import "github.com/joseph-ayodele/invoice-trust/internal/validate"

// Validation confidence tiers. This is a deliberate policy step function, not
// a smooth curve: "the leaves are right but the roll-up is wrong" is
// meaningfully more trustworthy than leaves that don't add up, which usually
// means the extractor misread a quantity or price.
const (
	validationClean        = 1.0
	validationRollupBroken = 0.5
	validationItemsBroken  = 0.3
)

// ScoreValidation maps a validation outcome to a [0,1] confidence value.
func ScoreValidation(res validate.Result) float64 {
	switch {
	case res.OverallValid:
		return validationClean
	case res.LineItemsValid:
		return validationRollupBroken
	default:
		return validationItemsBroken
	}
}
