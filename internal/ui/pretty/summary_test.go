package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gomolar/internal/ui/pretty"
	"github.com/yaklabco/gomolar/pkg/batch"
)

func TestFormatSummaryOneLine(t *testing.T) {
	styles := pretty.NewStyles(false)

	tests := []struct {
		name  string
		stats batch.Stats
		want  string
	}{
		{
			name:  "no formulas",
			stats: batch.Stats{FilesDiscovered: 1},
			want:  "No formulas found (1 file checked)\n",
		},
		{
			name:  "inline only",
			stats: batch.Stats{FormulasTotal: 1, FormulasValid: 1},
			want:  "1 formula (1 valid)\n",
		},
		{
			name:  "mixed",
			stats: batch.Stats{FilesDiscovered: 3, FormulasTotal: 12, FormulasValid: 10, FormulasInvalid: 2},
			want:  "12 formulas (10 valid, 2 invalid), in 3 files\n",
		},
		{
			name:  "unreadable files",
			stats: batch.Stats{FilesDiscovered: 2, FilesErrored: 1, FormulasTotal: 2, FormulasValid: 2},
			want:  "2 formulas (2 valid), in 2 files, 1 unreadable\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
