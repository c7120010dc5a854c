package metric_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yusufsyaifudin/appkeeper/pkg/metric"
)

func TestNumber_MarshalJSON(t *testing.T) {
	testCases := []struct {
		in   metric.Number
		want string
	}{
		{in: metric.NewInt(4500), want: `4500`},
		{in: metric.NewInt64(-3), want: `-3`},
		{in: metric.NewFloat64(45.678, 2), want: `45.68`},
		{in: metric.Number("1,245.50"), want: `"1,245.50"`},
		{in: metric.Number("true"), want: `true`},
		{in: metric.Number("+12.5"), want: `12.5`},
		{in: metric.Number("n/a"), want: `"n/a"`},
	}

	for _, tc := range testCases {
		t.Run(string(tc.in), func(t *testing.T) {
			b, err := tc.in.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(b))
		})
	}
}

func TestNumber_Float64(t *testing.T) {
	f, err := metric.Number("45,230.75").Float64()
	assert.NoError(t, err)
	assert.Equal(t, 45230.75, f)

	_, err = metric.Number("abc").Float64()
	assert.Error(t, err)
}
