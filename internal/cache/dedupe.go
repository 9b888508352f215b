package cache

import (
	"context"
	"strings"
	"time"
)

// signupPrefix is the Redis key prefix for duplicate-signup markers.
const signupPrefix = "waitlist:signup:"

// SeenSignup reports whether the email already has a signup marker.
func (c *Cache) SeenSignup(ctx context.Context, email string) (bool, error) {
	n, err := c.client.Exists(ctx, signupPrefix+hashKey(normalizeEmail(email))).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// MarkSignup records a signup marker for the email, holding the signup
// ID for the given TTL. Returns false if a marker already existed.
func (c *Cache) MarkSignup(ctx context.Context, email, signupID string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, signupPrefix+hashKey(normalizeEmail(email)), signupID, ttl).Result()
}

// normalizeEmail canonicalizes an address before hashing so trivially
// different spellings collapse to one marker.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
