package segmentws

import (
	"context"

	"github.com/park285/voicechess/internal/domain"
)

type WebSocketState string

const (
	WSStateDisconnected WebSocketState = "disconnected"
	WSStateConnecting   WebSocketState = "connecting"
	WSStateConnected    WebSocketState = "connected"
	WSStateReconnecting WebSocketState = "reconnecting"
	WSStateFailed       WebSocketState = "failed"
)

// SegmentCallback receives every decoded segment in arrival order.
type SegmentCallback func(seg domain.Segment)

type StateCallback func(state WebSocketState)

// HeaderProvider injects handshake headers (API keys, app id).
type HeaderProvider func() map[string]string

// Source is the speech input collaborator as seen by the service.
type Source interface {
	Connect(ctx context.Context) error
	OnSegment(cb SegmentCallback) int
	RemoveSegmentCallback(id int)
	OnStateChange(cb StateCallback) int
	Close(ctx context.Context) error
}
