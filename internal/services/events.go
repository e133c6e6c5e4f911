package services

import (
	"encoding/json"

	"github.com/forevertrendin/user_service/internal/interfaces"
	"go.uber.org/zap"
)

// publishEvent serializes payload and hands it to the broker. Event delivery is
// best effort on the request path; failures are logged, never returned.
func publishEvent(producer interfaces.ProducerHandler, log *zap.Logger, event string, payload interface{}) {
	if producer == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		log.Error("marshal event failed", zap.String("event", event), zap.Error(err))
		return
	}
	if err := producer.PublishMessage([]byte(event), value); err != nil {
		log.Warn("publish event failed", zap.String("event", event), zap.Error(err))
	}
}
