package realtime_test

import "Ripple/internal/realtime"

type MockClient struct {
	connID string
	// RecvChannel 测试侧观察投递结果的队列
	RecvChannel chan realtime.OutboundEvent
}

func newMockClient(connID string) *MockClient {
	return &MockClient{
		connID:      connID,
		RecvChannel: make(chan realtime.OutboundEvent, 16),
	}
}

func (c *MockClient) GetConnID() string {
	return c.connID
}

func (c *MockClient) GetSendChannel() chan<- realtime.OutboundEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	// Not needed for testing
}

func (c *MockClient) received() int {
	return len(c.RecvChannel)
}
