// Package requestcontext provides HTTP-independent context accessors for request-scoped values.
//
// Middleware sets the values, collectors and page code read them:
//
//	requestID := requestcontext.RequestID(ctx)
//	browser := requestcontext.Browser(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithTime(ctx, fixedTime)
//	ctx = requestcontext.WithSite(ctx, "coaching")
package requestcontext

import (
	"context"
	"time"
)

type (
	visitorIDKey   struct{}
	clientIPKey    struct{}
	userAgentKey   struct{}
	browserKey     struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
	siteKey        struct{}
)

// -----------------------------------------------------------------------------
// Visitor
// -----------------------------------------------------------------------------

// VisitorID retrieves the anonymous visitor identifier (cookie value) from the context.
func VisitorID(ctx context.Context) string {
	if v, ok := ctx.Value(visitorIDKey{}).(string); ok {
		return v
	}
	return ""
}

func WithVisitorID(ctx context.Context, visitorID string) context.Context {
	return context.WithValue(ctx, visitorIDKey{}, visitorID)
}

// -----------------------------------------------------------------------------
// Client metadata (IP, User-Agent, browser)
// -----------------------------------------------------------------------------

func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey{}).(string); ok {
		return ip
	}
	return ""
}

func UserAgent(ctx context.Context) string {
	if ua, ok := ctx.Value(userAgentKey{}).(string); ok {
		return ua
	}
	return ""
}

// Browser retrieves the parsed browser name and version, e.g. "Firefox 128.0".
func Browser(ctx context.Context) string {
	if b, ok := ctx.Value(browserKey{}).(string); ok {
		return b
	}
	return ""
}

// WithClientMetadata injects client IP, User-Agent and browser into a context.
// Useful for unit tests that don't run the full HTTP middleware chain.
func WithClientMetadata(ctx context.Context, clientIP, userAgent, browser string) context.Context {
	ctx = context.WithValue(ctx, clientIPKey{}, clientIP)
	ctx = context.WithValue(ctx, userAgentKey{}, userAgent)
	ctx = context.WithValue(ctx, browserKey{}, browser)
	return ctx
}

// -----------------------------------------------------------------------------
// Request metadata
// -----------------------------------------------------------------------------

func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(requestIDKey{}).(string); ok {
		return reqID
	}
	return ""
}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

// Site retrieves the key of the site serving the request.
func Site(ctx context.Context) string {
	if s, ok := ctx.Value(siteKey{}).(string); ok {
		return s
	}
	return ""
}

func WithSite(ctx context.Context, site string) context.Context {
	return context.WithValue(ctx, siteKey{}, site)
}

// -----------------------------------------------------------------------------
// Request time
// -----------------------------------------------------------------------------

// Now retrieves the request-scoped time from context.
// Falls back to time.Now() if not set (for non-HTTP contexts like tests).
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(requestTimeKey{}).(time.Time); ok {
		return t
	}
	return time.Now()
}

func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, requestTimeKey{}, t)
}
