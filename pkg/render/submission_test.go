package render_test

import (
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-ebookform/pkg/render"
)

func TestMergeAndSortHiddenFields(t *testing.T) {
	base := map[string]string{
		" existing ": "keep",
		"":           "ignored",
	}

	merged := render.MergeHiddenFields(base,
		render.CSRFToken("_csrf", "token123"),
		render.Hidden("version", 4),
		render.Hidden("  ", "skip"),
	)

	wantMerged := map[string]string{
		"existing": "keep",
		"_csrf":    "token123",
		"version":  "4",
	}
	if diff := cmp.Diff(wantMerged, merged); diff != "" {
		t.Fatalf("merged hidden fields mismatch (-want +got):\n%s", diff)
	}

	sorted := render.SortedHiddenFields(merged)
	wantSorted := []render.HiddenField{
		{Name: "_csrf", Value: "token123"},
		{Name: "existing", Value: "keep"},
		{Name: "version", Value: "4"},
	}
	if diff := cmp.Diff(wantSorted, sorted); diff != "" {
		t.Fatalf("sorted hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestMethodOverride(t *testing.T) {
	tests := []struct {
		name       string
		method     string
		wantMethod string
		wantField  *render.HiddenField
	}{
		{name: "empty defaults to post", method: "", wantMethod: http.MethodPost},
		{name: "post", method: "post", wantMethod: http.MethodPost},
		{name: "get", method: "GET", wantMethod: http.MethodGet},
		{name: "put tunnels", method: " put ", wantMethod: http.MethodPost, wantField: &render.HiddenField{Name: "_method", Value: "PUT"}},
		{name: "delete tunnels", method: "DELETE", wantMethod: http.MethodPost, wantField: &render.HiddenField{Name: "_method", Value: "DELETE"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method, field := render.MethodOverride(tt.method)
			if method != tt.wantMethod {
				t.Fatalf("method = %q, want %q", method, tt.wantMethod)
			}
			if diff := cmp.Diff(tt.wantField, field); diff != "" {
				t.Fatalf("override field mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
