package md2page

import (
	"runtime"
	"testing"
)

func TestResolvePoolSize(t *testing.T) {
	t.Parallel()

	gomaxprocs := runtime.GOMAXPROCS(0)

	tests := []struct {
		name    string
		workers int
		want    int
	}{
		{name: "explicit takes priority", workers: 4, want: 4},
		{name: "explicit=1 for sequential", workers: 1, want: 1},
		{name: "explicit can exceed max", workers: MaxPoolSize + 10, want: MaxPoolSize + 10},
		{name: "zero uses auto calculation", workers: 0, want: min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
		{name: "negative uses auto calculation", workers: -3, want: min(max(gomaxprocs, MinPoolSize), MaxPoolSize)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := ResolvePoolSize(tt.workers); got != tt.want {
				t.Errorf("ResolvePoolSize(%d) = %d, want %d", tt.workers, got, tt.want)
			}
		})
	}
}
