package lead

import "testing"

func TestFilter_Matches(t *testing.T) {
	l := &Lead{Name: "Sara Ahmed", Email: "sara@northwind.test", Company: "Northwind", Source: SourceReferral, Status: StatusQualified}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"empty filter", Filter{}, true},
		{"all keyword", Filter{Status: FilterAll, Source: FilterAll}, true},
		{"search by name case-insensitive", Filter{Search: "SARA"}, true},
		{"search by email", Filter{Search: "northwind.test"}, true},
		{"search by company", Filter{Search: "wind"}, true},
		{"search miss", Filter{Search: "globex"}, false},
		{"status match", Filter{Status: StatusQualified}, true},
		{"status miss", Filter{Status: StatusLost}, false},
		{"source miss", Filter{Source: SourceWebsite}, false},
		{"combined", Filter{Search: "sara", Status: StatusQualified, Source: SourceReferral}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(l); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}
