package dto

import "context"

// URLSigner turns a stored object key into a client-facing URL.
type URLSigner interface {
	URL(ctx context.Context, key string) (string, error)
}

func objectURL(ctx context.Context, s URLSigner, key *string) *string {
	if key == nil || *key == "" || s == nil {
		return nil
	}
	u, err := s.URL(ctx, *key)
	if err != nil || u == "" {
		return nil
	}
	return &u
}
