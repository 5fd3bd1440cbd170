package realtime

// Client 是任意连接类型的抽象，屏蔽底层传输机制，
// 使 Hub 可以统一管理不同形态的连接。
type Client interface {
	// GetConnID 返回本连接的唯一标识
	GetConnID() string

	// GetSendChannel 返回 Hub 向该连接投递事件的队列，仅写
	GetSendChannel() chan<- OutboundEvent

	// Run 启动连接的读写泵
	Run()
	// Close 关闭连接并释放相关通道
	Close()
}
