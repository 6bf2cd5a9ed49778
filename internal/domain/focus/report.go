package focus

// Report is the outcome of one poll of the status source.
type Report int

const (
	// ReportUnavailable means the status could not be obtained.
	ReportUnavailable Report = iota
	// ReportNotDistracted means the source answered with distracted=false.
	ReportNotDistracted
	// ReportDistracted means the source answered with distracted=true.
	ReportDistracted
)

// ReportFromSignal maps a successfully fetched distraction flag to a report.
func ReportFromSignal(distracted bool) Report {
	if distracted {
		return ReportDistracted
	}

	return ReportNotDistracted
}

// String implements fmt.Stringer.
func (r Report) String() string {
	switch r {
	case ReportDistracted:
		return "distracted"
	case ReportNotDistracted:
		return "not_distracted"
	case ReportUnavailable:
		return "unavailable"
	default:
		return "unknown"
	}
}

// Icon is the icon currently shown to the user.
type Icon int

const (
	// IconNormal is the neutral icon.
	IconNormal Icon = iota
	// IconAlert is the warning icon.
	IconAlert
)

// Flip returns the other icon.
func (i Icon) Flip() Icon {
	if i == IconAlert {
		return IconNormal
	}

	return IconAlert
}

// String implements fmt.Stringer.
func (i Icon) String() string {
	if i == IconAlert {
		return "alert"
	}

	return "normal"
}
