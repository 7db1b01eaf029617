package whatsapp

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// DeliveryLog remembers recently handled inbound message ids so webhook
// redeliveries from Meta are answered once.
type DeliveryLog struct {
	seen *cache.Cache
}

// NewDeliveryLog keeps ids for ttl.
func NewDeliveryLog(ttl time.Duration) *DeliveryLog {
	return &DeliveryLog{seen: cache.New(ttl, 2*ttl)}
}

// MarkHandled records id and reports false when it was already recorded.
// Messages without an id are always handled.
func (d *DeliveryLog) MarkHandled(id string) bool {
	if id == "" {
		return true
	}
	return d.seen.Add(id, struct{}{}, cache.DefaultExpiration) == nil
}

// Forget drops id so a redelivery is processed again.
func (d *DeliveryLog) Forget(id string) {
	d.seen.Delete(id)
}
