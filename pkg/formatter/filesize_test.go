package formatter_test

import (
	"errors"
	"strconv"
	"testing"

	"github.com/goliatone/go-ebookform/pkg/formatter"
)

func TestToFileSize(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	tests := []struct {
		input *int64
		want  string
	}{
		{input: nil, want: "0B"},
		{input: formatter.Int64(0), want: "0B"},
		{input: formatter.Int64(1), want: "1B"},
		{input: formatter.Int64(2), want: "2B"},
		{input: formatter.Int64(1023), want: "1023B"},
		{input: formatter.Int64(1024), want: "1KB"},
		{input: formatter.Int64(1536), want: "2KB"},
		{input: formatter.Int64(10 * 1024), want: "10KB"},
		{input: formatter.Int64(1048575), want: "1,024KB"},
		{input: formatter.Int64(1048576), want: "1.0M"},
		{input: formatter.Int64(1572864), want: "1.5M"},
		{input: formatter.Int64(1073741823), want: "1,024.0M"},
		{input: formatter.Int64(1073741824), want: "1.0G"},
		{input: formatter.Int64(5 * 1073741824 / 2), want: "2.5G"},
		{input: formatter.Int64(2048 * 1073741824), want: "2,048.0G"},
	}

	for _, tt := range tests {
		got, err := f.ToFileSize(tt.input)
		if err != nil {
			t.Fatalf("ToFileSize: unexpected error %v", err)
		}
		if got != tt.want {
			in := "nil"
			if tt.input != nil {
				in = strconv.FormatInt(*tt.input, 10)
			}
			t.Fatalf("ToFileSize(%s) = %q, want %q", in, got, tt.want)
		}
	}
}

func TestToFileSizeRejectsNegative(t *testing.T) {
	t.Parallel()

	f := formatter.New()
	got, err := f.ToFileSize(formatter.Int64(-1))
	if !errors.Is(err, formatter.ErrNegativeByteCount) {
		t.Fatalf("expected ErrNegativeByteCount, got %v", err)
	}
	if got != "" {
		t.Fatalf("expected empty output on error, got %q", got)
	}
}
