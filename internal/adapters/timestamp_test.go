package adapters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Timestamp_Scan_AcceptsDriverRepresentations(t *testing.T) {
	expected := time.Date(2025, 3, 14, 9, 26, 53, 589793000, time.UTC)

	testCases := []struct {
		name string
		src  any
	}{
		{name: "time.Time", src: expected.In(time.FixedZone("CET", 3600))},
		{name: "RFC3339Nano string", src: "2025-03-14T09:26:53.589793Z"},
		{name: "RFC3339Nano bytes", src: []byte("2025-03-14T09:26:53.589793Z")},
		{name: "space separated", src: "2025-03-14 09:26:53.589793"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var ts Timestamp

			require.NoError(t, ts.Scan(tc.src))
			assert.True(t, expected.Equal(ts.Time))
			assert.Equal(t, time.UTC, ts.Time.Location())
		})
	}
}

func Test_Timestamp_Scan_Nil(t *testing.T) {
	ts := Timestamp{Time: time.Now()}

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.Time.IsZero())
}

func Test_Timestamp_Scan_RejectsGarbage(t *testing.T) {
	var ts Timestamp

	assert.Error(t, ts.Scan("yesterday"))
	assert.Error(t, ts.Scan(42))
}
