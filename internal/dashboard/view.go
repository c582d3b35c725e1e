package dashboard

import "fmt"

// View is the panel currently shown. Any view can follow any other.
type View string

const (
	ViewDashboard View = "Dashboard"
	ViewFunnels   View = "Funnels"
	ViewLeads     View = "Leads"
	ViewAnalytics View = "Analytics"
)

// Views lists the panels in sidebar order.
var Views = []View{ViewDashboard, ViewFunnels, ViewLeads, ViewAnalytics}

func ParseView(s string) (View, error) {
	switch v := View(s); v {
	case ViewDashboard, ViewFunnels, ViewLeads, ViewAnalytics:
		return v, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
}

// Title is the sidebar label of the view.
func (v View) Title() string {
	switch v {
	case ViewDashboard:
		return "Sales Engine"
	case ViewFunnels:
		return "Funnel Factory"
	case ViewLeads:
		return "Lead Ops"
	case ViewAnalytics:
		return "Analytics"
	default:
		return string(v)
	}
}
