package requests

import "vehicle-bridge/internal/vehicle/usecases"

type MatcherFactory struct{}

var _ usecases.RequestQueueFactory = MatcherFactory{}

func NewMatcherFactory() MatcherFactory {
	return MatcherFactory{}
}

func (MatcherFactory) New(sender usecases.TelegramSender) usecases.RequestQueue {
	return NewMatcher(sender)
}
