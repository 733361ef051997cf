package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/viant/grid/internal/wire"
)

func TestAdvance(t *testing.T) {
	aJob := New(1, "render", 100, 512, 2*time.Second)
	assert.False(t, aJob.Done())

	aJob.Advance(1500 * time.Millisecond)
	assert.False(t, aJob.Done())

	aJob.Advance(500 * time.Millisecond)
	assert.True(t, aJob.Done())
}

func TestDoneWithoutDuration(t *testing.T) {
	aJob := New(2, "daemon", 10, 64, 0)
	aJob.Advance(time.Hour)
	assert.False(t, aJob.Done())
}

func TestEncodeDecode(t *testing.T) {
	aJob := New(9, "transcode", 2048, 1024, 90*time.Second)
	aJob.Advance(12 * time.Second)

	w := wire.NewWriter()
	aJob.Encode(w)

	decoded, err := Decode(wire.NewReader(w.Bytes()))
	assert.NoError(t, err)
	assert.Equal(t, aJob, decoded)
}

func TestDecodeTruncated(t *testing.T) {
	aJob := New(9, "transcode", 2048, 1024, 90*time.Second)
	w := wire.NewWriter()
	aJob.Encode(w)
	payload := w.Bytes()

	for cut := 0; cut < len(payload); cut++ {
		_, err := Decode(wire.NewReader(payload[:cut]))
		assert.Error(t, err, "cut at %d", cut)
	}
}
