package activitylog_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingWriter struct {
	mu      sync.Mutex
	entries []activitylog.Entry
	err     error
	block   chan struct{}
}

func (w *recordingWriter) Write(_ context.Context, e activitylog.Entry) error {
	if w.block != nil {
		<-w.block
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.entries = append(w.entries, e)
	return w.err
}

func (w *recordingWriter) snapshot() []activitylog.Entry {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]activitylog.Entry(nil), w.entries...)
}

func TestAsyncSink_DeliversToAllWriters(t *testing.T) {
	first := &recordingWriter{}
	failing := &recordingWriter{err: errors.New("disk full")}
	sink := activitylog.NewAsyncSink(8, zap.NewNop(), first, failing)

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	sink.Record(ctx, activitylog.Entry{Action: "payroll_run.created", EntityID: "run-1"})
	sink.Record(ctx, activitylog.Entry{Action: "payroll_run.processed", EntityID: "run-1"})

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sink.Close(closeCtx))

	got := first.snapshot()
	assert.Len(t, got, 2)
	assert.Equal(t, "req-1", got[0].RequestID)
	assert.False(t, got[0].OccurredAt.IsZero())
	assert.Len(t, failing.snapshot(), 2)
}

func TestAsyncSink_DropsWhenFullWithoutBlocking(t *testing.T) {
	w := &recordingWriter{block: make(chan struct{})}
	sink := activitylog.NewAsyncSink(1, zap.NewNop(), w)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 50; i++ {
			sink.Record(context.Background(), activitylog.Entry{Action: "retro.created"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked on a full buffer")
	}

	close(w.block)
	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, sink.Close(closeCtx))
	assert.Less(t, len(w.snapshot()), 50)
}

func TestAsyncSink_RecordAfterCloseIsIgnored(t *testing.T) {
	w := &recordingWriter{}
	sink := activitylog.NewAsyncSink(4, zap.NewNop(), w)
	assert.NoError(t, sink.Close(context.Background()))

	assert.NotPanics(t, func() {
		sink.Record(context.Background(), activitylog.Entry{Action: "late"})
	})
	assert.Empty(t, w.snapshot())
}

type fakeMessageWriter struct {
	msgs []kafkago.Message
}

func (f *fakeMessageWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func TestKafkaWriter_Write(t *testing.T) {
	fake := &fakeMessageWriter{}
	w := activitylog.NewKafkaWriter(fake, "payroll.activity.v1")

	err := w.Write(context.Background(), activitylog.Entry{OrganizationID: "org-1", Action: "payslip.locked"})

	assert.NoError(t, err)
	assert.Len(t, fake.msgs, 1)
	assert.Equal(t, "payroll.activity.v1", fake.msgs[0].Topic)
	assert.Equal(t, []byte("org-1"), fake.msgs[0].Key)

	var decoded activitylog.Entry
	assert.NoError(t, json.Unmarshal(fake.msgs[0].Value, &decoded))
	assert.Equal(t, "payslip.locked", decoded.Action)
}
