package analysis

import "fmt"

// SortOrder orders the ByFile and ByRule groups. Names always break ties.
type SortOrder string

const (
	// SortCount puts the groups with the most issues first.
	SortCount SortOrder = "count"
	// SortName orders groups by path or rule name.
	SortName SortOrder = "name"
	// SortSeverity puts groups with more errors first, then more warnings.
	SortSeverity SortOrder = "severity"
)

// ParseSortOrder parses a sort order; "" selects SortCount.
func ParseSortOrder(name string) (SortOrder, error) {
	switch order := SortOrder(name); order {
	case "":
		return SortCount, nil
	case SortCount, SortName, SortSeverity:
		return order, nil
	default:
		return "", fmt.Errorf("unknown sort order %q (valid: count, name, severity)", name)
	}
}

// View selects the parts of a Report that Analyze fills in. Totals are
// always computed.
type View uint8

const (
	ViewDiagnostics View = 1 << iota
	ViewByFile
	ViewByRule

	ViewAll = ViewDiagnostics | ViewByFile | ViewByRule
)

// Options configures Analyze. The zero value fills every view sorted by
// count with paths left as given.
type Options struct {
	Views      View
	Sort       SortOrder
	WorkingDir string
}

func (o Options) wants(v View) bool {
	views := o.Views
	if views == 0 {
		views = ViewAll
	}
	return views&v != 0
}
