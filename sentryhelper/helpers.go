// Package sentryhelper provides utilities for Sentry transaction and scope management.
// Every MCP tool call runs on its own cloned hub so breadcrumbs and tags never
// leak between concurrent calls.
package sentryhelper

import (
	"context"
	"fmt"

	sentry "github.com/getsentry/sentry-go"
)

type contextKey string

const hubContextKey contextKey = "sentry_hub"

// StartToolTransaction clones the current hub, binds it to ctx and starts a
// transaction named after the tool.
func StartToolTransaction(ctx context.Context, toolName string) (context.Context, *sentry.Span) {
	hub := sentry.CurrentHub().Clone()
	ctx = context.WithValue(ctx, hubContextKey, hub)
	ctx = sentry.SetHubOnContext(ctx, hub)

	transaction := sentry.StartTransaction(ctx, fmt.Sprintf("mcp.tool.%s", toolName),
		sentry.WithOpName("mcp.tool"),
		sentry.WithTransactionSource(sentry.SourceTask),
	)
	transaction.SetTag("tool", toolName)

	hub.Scope().SetSpan(transaction)

	return transaction.Context(), transaction
}

// HubFromContext retrieves the cloned hub from context, falling back to CurrentHub.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub, ok := ctx.Value(hubContextKey).(*sentry.Hub); ok && hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// AddBreadcrumb adds a breadcrumb to the hub in context.
func AddBreadcrumb(ctx context.Context, category, message string) {
	HubFromContext(ctx).AddBreadcrumb(&sentry.Breadcrumb{
		Category: category,
		Message:  message,
		Level:    sentry.LevelInfo,
	}, nil)
}

// CaptureException captures an exception on the hub in context.
func CaptureException(ctx context.Context, err error) *sentry.EventID {
	return HubFromContext(ctx).CaptureException(err)
}

// StartSpan starts a child span attached to the transaction in context.
func StartSpan(ctx context.Context, operation, description string) *sentry.Span {
	span := sentry.StartSpan(ctx, operation)
	span.Description = description
	return span
}
