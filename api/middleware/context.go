package middleware

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	ctxGuestID contextKey = "guest_id"
	ctxPhone   contextKey = "phone_number"
)

// GuestIDFromContext returns the authenticated guest's UUID, or uuid.Nil.
func GuestIDFromContext(ctx context.Context) uuid.UUID {
	if ctx == nil {
		return uuid.Nil
	}
	if v, ok := ctx.Value(ctxGuestID).(uuid.UUID); ok {
		return v
	}
	return uuid.Nil
}

// PhoneNumberFromContext returns the authenticated guest's phone number.
func PhoneNumberFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if v, ok := ctx.Value(ctxPhone).(string); ok {
		return v
	}
	return ""
}

// WithGuestID injects the guest identifier into the context.
func WithGuestID(ctx context.Context, guestID uuid.UUID) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, ctxGuestID, guestID)
}

func withPhoneNumber(ctx context.Context, phone string) context.Context {
	return context.WithValue(ctx, ctxPhone, phone)
}
