package tracing

import (
	"context"
	"errors"
	"testing"

	. "github.com/onsi/gomega"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDatabaseSpanWrapper(t *testing.T) {
	RegisterTestingT(t)

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(previous)

	var traceID string

	err := DatabaseSpanWrapper(context.Background(), "postgresql", "users", "list", "SELECT 1", func(ctx context.Context) error {
		traceID = GetTraceID(ctx)
		Expect(GetSpanID(ctx)).ToNot(BeEmpty())
		return errors.New("boom")
	})

	Expect(err).To(MatchError("boom"))
	Expect(traceID).ToNot(BeEmpty())

	spans := recorder.Ended()
	Expect(spans).To(HaveLen(1))
	Expect(spans[0].Name()).To(Equal("db.users.list"))
	Expect(spans[0].Status().Code).To(Equal(codes.Error))
}

func TestGetTraceID_NoSpan(t *testing.T) {
	RegisterTestingT(t)

	Expect(GetTraceID(context.Background())).To(BeEmpty())
	Expect(GetSpanID(context.Background())).To(BeEmpty())
}
