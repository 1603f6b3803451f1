package pubsub

import "errors"

var (
	ErrMissingTopic         = errors.New("missing topic")
	ErrSubscriptionNotFound = errors.New("webhook not found")
	ErrInvalidEndpoint      = errors.New("invalid webhook endpoint, must be a valid URI")
)
