package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.sr.ht/~vejnar/ProfileAbacus/lib/feature"
)

func TestReferencePointPipeline(t *testing.T) {
	regions := []feature.Interval{{Chrom: "chr1", Start: 1000, End: 1100, Strand: feature.StrandForward}}
	reads := []feature.Interval{{Chrom: "chr1", Start: 1020, End: 1030, Strand: feature.StrandForward}}

	windows, err := feature.ExtendAll(regions, feature.RefCenter, 50, 50)
	require.NoError(t, err)
	require.Equal(t, []feature.Window{{Chrom: "chr1", Start: 1000, End: 1100, Strand: feature.StrandForward}}, windows)
	trees, err := feature.BuildWindowTrees(windows)
	require.NoError(t, err)
	pairs, _ := feature.Intersect(reads, trees)
	require.Len(t, pairs, 1)

	tests := []struct {
		span     SpanMode
		from, to int
	}{
		{SpanInclusive, 20, 31},
		{SpanHalfOpen, 20, 30},
	}
	for _, test := range tests {
		coverage := Accumulate(pairs, 50, 50, test.span)
		require.Len(t, coverage, 100)
		for i, c := range coverage {
			if i >= test.from && i < test.to {
				assert.Equal(t, 1., c, "offset %d", i)
			} else {
				assert.Equal(t, 0., c, "offset %d", i)
			}
		}

		binned, err := Normalize(coverage, float64(len(reads)), len(regions), 10, TailNominal)
		require.NoError(t, err)
		require.Len(t, binned, 10)
		for ib := range binned {
			var binSum float64
			for _, c := range coverage[ib*10 : (ib+1)*10] {
				binSum += c
			}
			assert.InDelta(t, (binSum/10)*(1e6/1), binned[ib], 1e-6, "bin %d", ib)
		}
		assert.InDelta(t, 1e6, binned[2], 1e-6)
	}
}
