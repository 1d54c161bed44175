package input

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		limit         int64
		want          string
		wantTruncated bool
		wantErr       error
	}{
		{
			name:  "reads everything",
			input: "npm ERR! code ENOENT\nnpm ERR! path package.json\n",
			limit: MaxInputBytes,
			want:  "npm ERR! code ENOENT\nnpm ERR! path package.json\n",
		},
		{
			name:    "empty",
			input:   "",
			limit:   MaxInputBytes,
			wantErr: ErrNoInput,
		},
		{
			name:    "whitespace only",
			input:   " \n\t\r\n",
			limit:   MaxInputBytes,
			wantErr: ErrNoInput,
		},
		{
			name:          "keeps tail from a line boundary",
			input:         "first line\nsecond line\nthird line",
			limit:         15,
			want:          "third line",
			wantTruncated: true,
		},
		{
			name:          "tail without newline is kept whole",
			input:         "abcdefghij",
			limit:         4,
			want:          "ghij",
			wantTruncated: true,
		},
		{
			name:  "zero limit disables truncation",
			input: "abcdefghij",
			limit: 0,
			want:  "abcdefghij",
		},
		{
			name:  "invalid utf-8 is replaced",
			input: "bad \xff byte",
			limit: MaxInputBytes,
			want:  "bad � byte",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Read(strings.NewReader(tt.input), tt.limit)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Read() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read() unexpected error: %v", err)
			}
			if got.Text != tt.want {
				t.Errorf("Read().Text = %q, want %q", got.Text, tt.want)
			}
			if got.Truncated != tt.wantTruncated {
				t.Errorf("Read().Truncated = %v, want %v", got.Truncated, tt.wantTruncated)
			}
		})
	}
}

func TestReadPropagatesReaderError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Read(iotest.ErrReader(boom), MaxInputBytes)
	if !errors.Is(err, boom) {
		t.Errorf("Read() error = %v, want wrapped %v", err, boom)
	}
}
