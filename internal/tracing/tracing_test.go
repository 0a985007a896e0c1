package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takhmino/takhmino/internal/config"
)

func TestInitWithoutEndpoint(t *testing.T) {
	conf := config.Default().Tracing

	p, err := Init(context.Background(), conf, "test", nil)
	require.NoError(t, err)

	_, span := p.Tracer("test").Start(context.Background(), "span")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}
