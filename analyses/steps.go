package analyses

import "github.com/scottierieh/statistica-frontend-sub010/wizard"

// Steps of the standard wizard shape, in declaration order.
const (
	StepVariables  wizard.Step = 1
	StepParameters wizard.Step = 2
	StepValidation wizard.Step = 3
	StepSummary    wizard.Step = 4
	StepReasoning  wizard.Step = 5
	StepStatistics wizard.Step = 6
)

// StandardSteps is the six-step wizard shape every catalog analysis uses:
// three configuration steps, then the results tier. The Validation step is
// the submit step; Summary is shown first once a result exists.
func StandardSteps() wizard.Config {
	return wizard.Config{
		Steps: []wizard.StepInfo{
			{Title: "Variables", Description: "Choose the columns the method runs on."},
			{Title: "Parameters", Description: "Adjust method settings."},
			{Title: "Validation", Description: "Review the checklist and run the analysis."},
			{Title: "Summary", Description: "Headline metrics from the run.", ResultsTier: true},
			{Title: "Reasoning", Description: "Interpretation of the results.", ResultsTier: true},
			{Title: "Statistics", Description: "Full tables and diagnostics.", ResultsTier: true},
		},
		SubmitStep:  StepValidation,
		ResultsStep: StepSummary,
	}
}
