package calc

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	apperrors "github.com/leylaiskandarli/average-squares/internal/errors"
	"github.com/leylaiskandarli/average-squares/internal/hermes"
	"github.com/leylaiskandarli/average-squares/internal/metrics"
	"github.com/leylaiskandarli/average-squares/internal/store"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type MockHermes struct {
	mock.Mock
}

func (m *MockHermes) Publish(subject string, data interface{}) error {
	args := m.Called(subject, data)
	return args.Error(0)
}

func (m *MockHermes) Close() {}

type failingStore struct {
	*store.MemoryStore
}

func (f failingStore) CreateCalculation(context.Context, *store.Calculation) error {
	return errors.New("disk full")
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(h hermes.Client) (*Service, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return NewService(s, h, metrics.New(prometheus.NewRegistry()), discardLogger()), s
}

func TestCalculateRecordsAndPublishes(t *testing.T) {
	h := new(MockHermes)
	h.On("Publish", mock.MatchedBy(func(s string) bool { return s != "" }), mock.AnythingOfType("hermes.CalculationCompletedEvent")).Return(nil)
	svc, s := newTestService(h)

	out, err := svc.Calculate(context.Background(), Input{
		Numbers: []float64{2, 4},
		Weights: []float64{1, 0.5},
		Source:  store.SourceAPI,
	})
	require.NoError(t, err)
	assert.Equal(t, 6.0, out.Calculation.Result)
	assert.Equal(t, 6.0, out.Breakdown.Total)
	assert.Len(t, out.Breakdown.Terms, 2)
	assert.NotEqual(t, uuid.Nil, out.Calculation.ID)

	stored, err := s.GetCalculation(context.Background(), out.Calculation.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, store.SourceAPI, stored.Source)

	h.AssertNumberOfCalls(t, "Publish", 1)
	event := h.Calls[0].Arguments.Get(1).(hermes.CalculationCompletedEvent)
	assert.Equal(t, hermes.SubjectCalculationCompleted(out.Calculation.ID.String()), h.Calls[0].Arguments.String(0))
	assert.Equal(t, out.Calculation.ID.String(), event.CalculationID)
	assert.True(t, event.Weighted)
	assert.Equal(t, 2, event.Count)
}

func TestCalculateEqualWeighting(t *testing.T) {
	svc, _ := newTestService(nil)

	out, err := svc.Calculate(context.Background(), Input{Numbers: []float64{1, 2, 4}, Source: store.SourceCLI})
	require.NoError(t, err)
	assert.Equal(t, 7.0, out.Calculation.Result)
	assert.Nil(t, out.Calculation.Weights)
}

func TestCalculateEmpty(t *testing.T) {
	svc, _ := newTestService(nil)

	out, err := svc.Calculate(context.Background(), Input{Source: store.SourceCLI})
	require.NoError(t, err)
	assert.Equal(t, 0.0, out.Calculation.Result)
	assert.NotNil(t, out.Calculation.Numbers)
}

func TestCalculateLengthMismatch(t *testing.T) {
	h := new(MockHermes)
	h.On("Publish", hermes.SubjectCalculationRejected("api"), mock.AnythingOfType("hermes.CalculationRejectedEvent")).Return(nil)
	svc, s := newTestService(h)

	_, err := svc.Calculate(context.Background(), Input{
		Numbers: []float64{1, 2, 4},
		Weights: []float64{1, 0.5},
		Source:  store.SourceAPI,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))

	h.AssertExpectations(t)
	event := h.Calls[0].Arguments.Get(1).(hermes.CalculationRejectedEvent)
	assert.Equal(t, "invalid_argument", event.Kind)

	stats, _ := s.GetStats(context.Background())
	assert.Equal(t, 0, stats.TotalCalculations)
}

func TestCalculateRejectsNonFiniteResult(t *testing.T) {
	svc, s := newTestService(nil)

	_, err := svc.Calculate(context.Background(), Input{Numbers: []float64{1e200}, Source: store.SourceAPI})
	require.Error(t, err)
	assert.True(t, apperrors.IsInvalidArgument(err))
	assert.Equal(t, NotFinite, err.Error())

	stats, _ := s.GetStats(context.Background())
	assert.Equal(t, 0, stats.TotalCalculations)
}

func TestCalculatePublishFailureIsNotFatal(t *testing.T) {
	h := new(MockHermes)
	h.On("Publish", mock.Anything, mock.Anything).Return(errors.New("nats down"))
	svc, _ := newTestService(h)

	out, err := svc.Calculate(context.Background(), Input{Numbers: []float64{3}, Source: store.SourceCLI})
	require.NoError(t, err)
	assert.Equal(t, 9.0, out.Calculation.Result)
}

func TestCalculateStoreFailure(t *testing.T) {
	svc := NewService(failingStore{store.NewMemoryStore()}, nil, metrics.New(prometheus.NewRegistry()), discardLogger())

	_, err := svc.Calculate(context.Background(), Input{Numbers: []float64{1}, Source: store.SourceCLI})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record calculation")
}

func TestResolve(t *testing.T) {
	got, err := Resolve([]float64{1}, []string{"2 3"})
	require.NoError(t, err)
	assert.Equal(t, []float64{1}, got)

	got, err = Resolve(nil, []string{"2 3", "4"})
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 4}, got)

	got, err = Resolve(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, got)

	_, err = Resolve(nil, []string{"x"})
	assert.True(t, apperrors.IsFormat(err))
}

func TestHandleRequest(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	t.Run("tokens", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{"tokens":["1 2","4"]}`)).(hermes.CalculationReply)
		assert.Empty(t, reply.Error)
		assert.Equal(t, 7.0, reply.Result)
		assert.NotEmpty(t, reply.CalculationID)
	})

	t.Run("values win over tokens", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{"numbers":[2,4],"weights":[1,0.5],"tokens":["100"]}`)).(hermes.CalculationReply)
		assert.Equal(t, 6.0, reply.Result)
	})

	t.Run("format error", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{"tokens":["1 two"]}`)).(hermes.CalculationReply)
		assert.Equal(t, "format", reply.Kind)
		assert.Contains(t, reply.Error, `"two"`)
	})

	t.Run("mismatch", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{"numbers":[1,2,4],"weight_tokens":["1 0.5"]}`)).(hermes.CalculationReply)
		assert.Equal(t, "invalid_argument", reply.Kind)
		assert.Equal(t, "weights and numbers must have same length", reply.Error)
	})

	t.Run("bad json", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{`)).(hermes.CalculationReply)
		assert.Equal(t, "invalid_argument", reply.Kind)
	})

	t.Run("reply marshals", func(t *testing.T) {
		reply := svc.HandleRequest(ctx, []byte(`{"numbers":[3]}`))
		data, err := json.Marshal(reply)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"result":9`)
	})
}
