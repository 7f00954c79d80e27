package analyses

import (
	"fmt"
	"strconv"

	"github.com/scottierieh/statistica-frontend-sub010/wizard"
)

// Shared validation-check builders. Each evaluates one gating predicate over
// the current inputs and reports it with a user-facing label and detail.

// CheckDatasetLoaded requires a dataset to be present.
func CheckDatasetLoaded(in Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Dataset loaded"}
	if in.Dataset == nil {
		check.Detail = "load a CSV dataset first"
		return check
	}
	check.Passed = true
	check.Detail = fmt.Sprintf("%s (%d rows)", in.Dataset.Name, in.Dataset.Rows())
	return check
}

// CheckMinRows requires at least min observations.
func CheckMinRows(in Inputs, min int) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: fmt.Sprintf("At least %d observations", min)}
	if in.Dataset == nil {
		check.Detail = "no dataset"
		return check
	}
	rows := in.Dataset.Rows()
	check.Passed = rows >= min
	check.Detail = fmt.Sprintf("dataset has %d rows", rows)
	return check
}

// CheckTargetSelected requires a target column that exists in the dataset.
func CheckTargetSelected(in Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Target variable selected"}
	if in.Target == "" {
		check.Detail = "choose a target column"
		return check
	}
	if in.Dataset == nil {
		check.Detail = "no dataset"
		return check
	}
	if _, ok := in.Dataset.Column(in.Target); !ok {
		check.Detail = fmt.Sprintf("column %q not in dataset", in.Target)
		return check
	}
	check.Passed = true
	check.Detail = in.Target
	return check
}

// CheckTargetCategorical requires the target column to be non-numeric.
func CheckTargetCategorical(in Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Target is categorical"}
	if in.Dataset == nil || in.Target == "" {
		check.Detail = "choose a target column"
		return check
	}
	col, ok := in.Dataset.Column(in.Target)
	if !ok {
		check.Detail = fmt.Sprintf("column %q not in dataset", in.Target)
		return check
	}
	if col.Numeric {
		check.Detail = fmt.Sprintf("%q is numeric; pick a class column", in.Target)
		return check
	}
	check.Passed = true
	check.Detail = in.Target
	return check
}

// CheckTargetNumeric requires the target column to be numeric.
func CheckTargetNumeric(in Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Target is numeric"}
	if in.Dataset == nil || in.Target == "" {
		check.Detail = "choose a target column"
		return check
	}
	col, ok := in.Dataset.Column(in.Target)
	if !ok {
		check.Detail = fmt.Sprintf("column %q not in dataset", in.Target)
		return check
	}
	if !col.Numeric {
		check.Detail = fmt.Sprintf("%q is not numeric", in.Target)
		return check
	}
	check.Passed = true
	check.Detail = in.Target
	return check
}

// CheckMinSelected requires at least min selected columns, all present in
// the dataset and distinct from the target.
func CheckMinSelected(in Inputs, min int, noun string) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: fmt.Sprintf("At least %d %s selected", min, noun)}
	if in.Dataset == nil {
		check.Detail = "no dataset"
		return check
	}
	count := 0
	for _, name := range in.Selected {
		if name == in.Target {
			check.Detail = fmt.Sprintf("%q is the target; deselect it", name)
			return check
		}
		if _, ok := in.Dataset.Column(name); !ok {
			check.Detail = fmt.Sprintf("column %q not in dataset", name)
			return check
		}
		count++
	}
	if count < min {
		check.Detail = fmt.Sprintf("%d selected", count)
		return check
	}
	check.Passed = true
	check.Detail = fmt.Sprintf("%d selected", count)
	return check
}

// CheckSelectedNumeric requires every selected column to be numeric.
func CheckSelectedNumeric(in Inputs) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: "Selected columns are numeric"}
	if in.Dataset == nil {
		check.Detail = "no dataset"
		return check
	}
	for _, name := range in.Selected {
		col, ok := in.Dataset.Column(name)
		if !ok {
			check.Detail = fmt.Sprintf("column %q not in dataset", name)
			return check
		}
		if !col.Numeric {
			check.Detail = fmt.Sprintf("%q is not numeric", name)
			return check
		}
	}
	check.Passed = true
	return check
}

// CheckParamInt requires the named parameter to be an integer in [min, max].
func CheckParamInt(in Inputs, id, label, def string, min, max int) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: label}
	raw := in.Param(id, def)
	v, err := strconv.Atoi(raw)
	if err != nil {
		check.Detail = fmt.Sprintf("%q is not an integer", raw)
		return check
	}
	if v < min || v > max {
		check.Detail = fmt.Sprintf("%d outside %d..%d", v, min, max)
		return check
	}
	check.Passed = true
	check.Detail = raw
	return check
}

// CheckParamFloat requires the named parameter to be a number in [min, max].
func CheckParamFloat(in Inputs, id, label, def string, min, max float64) wizard.ValidationCheck {
	check := wizard.ValidationCheck{Label: label}
	raw := in.Param(id, def)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		check.Detail = fmt.Sprintf("%q is not a number", raw)
		return check
	}
	if v < min || v > max {
		check.Detail = fmt.Sprintf("%g outside %g..%g", v, min, max)
		return check
	}
	check.Passed = true
	check.Detail = raw
	return check
}
