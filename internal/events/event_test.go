package events

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordShapes(t *testing.T) {
	assert.Equal(t, []string{"A", "1", "2"}, Accept{UserID: 1, UserOrderID: 2}.Record())
	assert.Equal(t, []string{"R", "1", "2"}, Reject{UserID: 1, UserOrderID: 2}.Record())
	assert.Equal(t, []string{"B", "B", "10", "100"}, BookTop{Side: "B", Price: 10, Quantity: 100}.Record())
	assert.Equal(t, []string{"B", "-", "0", "0"}, EmptyBookTop().Record())
}

func TestWriterProducesHeaderlessCSV(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf)

	require.NoError(t, w.Write(Accept{UserID: 1, UserOrderID: 1}))
	require.NoError(t, w.Write(BookTop{Side: "B", Price: 10, Quantity: 100}))

	assert.Equal(t, "A,1,1\nB,B,10,100\n", buf.String())
}
