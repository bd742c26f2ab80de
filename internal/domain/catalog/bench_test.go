package catalog

import (
	"fmt"
	"testing"

	"github.com/corey/roost/internal/ports"
)

// benchApps builds n apps; every tenth one has "dashboard" in its name.
func benchApps(n int) []ports.App {
	apps := make([]ports.App, n)
	for i := range apps {
		name := fmt.Sprintf("service-%03d", i)
		if i%10 == 0 {
			name = fmt.Sprintf("admin-dashboard-%03d", i)
		}
		apps[i] = ports.App{
			Name:        name,
			Aliases:     []string{fmt.Sprintf("svc_%d", i)},
			Description: "Local dev app",
			Services: []ports.Service{
				{Name: "web"},
				{Name: "worker"},
			},
		}
	}
	return apps
}

func BenchmarkFilter_500Apps(b *testing.B) {
	apps := benchApps(500)
	b.ReportAllocs()
	for b.Loop() {
		if got := Filter(apps, "Admin Dashboard"); len(got) != 50 {
			b.Fatalf("got %d matches", len(got))
		}
	}
}

func BenchmarkFilter_EmptyQuery(b *testing.B) {
	apps := benchApps(500)
	b.ReportAllocs()
	for b.Loop() {
		Filter(apps, "")
	}
}
