package godiopts

import (
	"reflect"
	"sort"
)

// PipelineReport summarizes the pipeline registered for one options type.
type PipelineReport struct {
	Type            string
	Creators        int
	Configurers     int
	PostConfigurers int
	Mutators        int
	PostMutators    int
	Validators      int
	CreatorNames    []string
	StartChecks     []string
}

// Report describes every registered pipeline, sorted by type name. Useful
// for composition-root diagnostics; it does not run any descriptor.
func (c *Container) Report() []PipelineReport {
	byType := map[reflect.Type]*PipelineReport{}

	for _, reg := range c.registrations {
		report := byType[reg.typ]
		if report == nil {
			report = &PipelineReport{Type: reg.typ.String()}
			byType[reg.typ] = report
		}

		switch reg.kind {
		case registrationCreator:
			report.Creators++
			if reg.name != nil {
				report.CreatorNames = appendUnique(report.CreatorNames, *reg.name)
			}
		case registrationConfigure:
			report.Configurers++
		case registrationPostConfigure:
			report.PostConfigurers++
		case registrationMutate:
			report.Mutators++
		case registrationPostMutate:
			report.PostMutators++
		case registrationValidate:
			report.Validators++
		case registrationStartCheck:
			if names, ok := reg.fn.([]string); ok {
				report.StartChecks = append(report.StartChecks, names...)
			}
		}
	}

	reports := make([]PipelineReport, 0, len(byType))
	for _, report := range byType {
		reports = append(reports, *report)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Type < reports[j].Type })
	return reports
}

func appendUnique(list []string, value string) []string {
	for _, existing := range list {
		if existing == value {
			return list
		}
	}
	return append(list, value)
}
