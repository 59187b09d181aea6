package usecase

import (
	"sync"
	"testing"
	"time"

	"github.com/menuscan/backend/internal/domain"
	"github.com/stretchr/testify/assert"
)

func collect(ch <-chan domain.ProgressEvent) []int {
	var percents []int
	for event := range ch {
		percents = append(percents, event.Percent)
	}
	return percents
}

func TestProgressStream_DeliversToAllSubscribers(t *testing.T) {
	stream := NewProgressStream()
	first := stream.Subscribe()
	second := stream.Subscribe()

	stream.publish(domain.ProgressEvent{Stage: domain.StageEncoded, Percent: 10})
	stream.publish(domain.ProgressEvent{Stage: domain.StageComplete, Percent: 100})
	stream.Close()

	assert.Equal(t, []int{10, 100}, collect(first))
	assert.Equal(t, []int{10, 100}, collect(second))
}

func TestProgressStream_Monotonic(t *testing.T) {
	stream := NewProgressStream()
	ch := stream.Subscribe()

	stream.publish(domain.ProgressEvent{Percent: 30})
	stream.publish(domain.ProgressEvent{Percent: 10})
	stream.publish(domain.ProgressEvent{Percent: 30})
	stream.publish(domain.ProgressEvent{Percent: 50})
	stream.Close()

	assert.Equal(t, []int{30, 50}, collect(ch))
}

func TestProgressStream_SlowSubscriberDoesNotBlock(t *testing.T) {
	stream := NewProgressStream()
	_ = stream.Subscribe() // never read

	done := make(chan struct{})
	go func() {
		for percent := 1; percent <= 100; percent++ {
			stream.publish(domain.ProgressEvent{Percent: percent})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a full subscriber")
	}
	stream.Close()
}

func TestProgressStream_ClosedAndNil(t *testing.T) {
	stream := NewProgressStream()
	stream.Close()
	stream.Close()

	_, open := <-stream.Subscribe()
	assert.False(t, open)

	stream.publish(domain.ProgressEvent{Percent: 10})

	var nilStream *ProgressStream
	assert.NotPanics(t, func() {
		nilStream.publish(domain.ProgressEvent{Percent: 10})
		nilStream.Close()
	})
	_, open = <-nilStream.Subscribe()
	assert.False(t, open)
}

func TestProgressStream_ConcurrentSubscribers(t *testing.T) {
	stream := NewProgressStream()

	var wg sync.WaitGroup
	results := make([][]int, 8)
	for i := range results {
		ch := stream.Subscribe()
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = collect(ch)
		}(i)
	}

	for _, stage := range []domain.ProgressStage{
		domain.StageEncoded,
		domain.StageRequestSent,
		domain.StageResponseReceived,
		domain.StageParsed,
		domain.StageComplete,
	} {
		stream.publish(domain.ProgressEvent{Stage: stage, Percent: domain.StagePercent[stage]})
	}
	stream.Close()
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, []int{10, 30, 50, 80, 100}, got)
	}
}
