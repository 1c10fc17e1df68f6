package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/paddockai/paddock/internal/infrastructure/astra"
	"github.com/stretchr/testify/assert"
)

type fakeSearcher struct {
	docs  []astra.Document
	err   error
	calls int
	limit int
}

func (f *fakeSearcher) SimilaritySearch(ctx context.Context, vector []float32, limit int) ([]astra.Document, error) {
	f.calls++
	f.limit = limit
	return f.docs, f.err
}

func TestRetrieveSkipsSearchForEmptyVector(t *testing.T) {
	searcher := &fakeSearcher{docs: []astra.Document{{Text: "should not appear"}}}
	svc := NewService(searcher)

	assert.Empty(t, svc.Retrieve(context.Background(), nil))
	assert.Empty(t, svc.Retrieve(context.Background(), []float32{}))
	assert.Zero(t, searcher.calls, "empty vector must not reach the store")
}

func TestRetrieveSerializesRankedTexts(t *testing.T) {
	searcher := &fakeSearcher{docs: []astra.Document{
		{Text: "Verstappen clinched the 2023 title in Qatar."},
		{Text: "Red Bull won the constructors' championship."},
	}}
	svc := NewService(searcher)

	blob := svc.Retrieve(context.Background(), []float32{0.1, 0.2})

	assert.JSONEq(t, `["Verstappen clinched the 2023 title in Qatar.","Red Bull won the constructors' championship."]`, blob)
	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 10, searcher.limit)
}

func TestRetrieveDegradesOnSearchFailure(t *testing.T) {
	searcher := &fakeSearcher{err: errors.New("schema mismatch")}
	svc := NewService(searcher)

	assert.Empty(t, svc.Retrieve(context.Background(), []float32{0.5}))
}

func TestRetrieveWithoutStore(t *testing.T) {
	svc := NewService(nil)
	assert.Empty(t, svc.Retrieve(context.Background(), []float32{0.5}))
}

func TestRetrieveEmptyResult(t *testing.T) {
	searcher := &fakeSearcher{}
	svc := NewService(searcher)
	assert.Empty(t, svc.Retrieve(context.Background(), []float32{0.5}))
}
