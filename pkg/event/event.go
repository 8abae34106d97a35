// Package event 提供同步事件分发
//
// 模拟核心在事件发生的瞬间调用 Dispatch，订阅者在同一帧内同步收到通知。
// 渲染、音效、存档等外部协作者通过订阅获得离散事件，不直接读写模拟状态。
package event

// EventType 事件类型
type EventType string

const (
	EnemySpawned  EventType = "enemy_spawned"
	EnemyDefeated EventType = "enemy_defeated"
	EnemyArrived  EventType = "enemy_arrived"
	WaveStarted   EventType = "wave_started"
	WaveCleared   EventType = "wave_cleared"
	Victory       EventType = "victory"
	GameOver      EventType = "game_over"
	TowerPlaced   EventType = "tower_placed"
	TowerFired    EventType = "tower_fired"
	TowerCharging EventType = "tower_charging"
	TowerUpgraded EventType = "tower_upgraded"
	TowerSold     EventType = "tower_sold"
	NoticeRaised  EventType = "notice_raised"
)

// Event 事件
type Event struct {
	Type EventType
	Tick uint64      // 事件发生时的逻辑帧
	Data interface{} // 事件数据，见 payloads.go
}

// Listener 订阅者接口
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc 函数适配器
// 函数值不可比较，ListenerFunc 订阅后无法通过 Unsubscribe 移除。
type ListenerFunc func(event Event)

// OnEvent 调用函数本身
func (f ListenerFunc) OnEvent(event Event) {
	f(event)
}

// Dispatcher 事件分发器
// 不是并发安全的：模拟在单个 goroutine 内推进。
type Dispatcher struct {
	listeners map[EventType][]Listener
	wildcard  []Listener
}

// NewDispatcher 创建新的分发器
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe 订阅指定类型的事件
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll 订阅全部事件
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.wildcard = append(d.wildcard, listener)
}

// Unsubscribe 取消订阅
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch 按订阅顺序通知订阅者，先通知指定类型的订阅者，再通知全局订阅者
func (d *Dispatcher) Dispatch(event Event) {
	if d == nil {
		return
	}
	if listeners, exists := d.listeners[event.Type]; exists {
		for _, listener := range listeners {
			listener.OnEvent(event)
		}
	}
	for _, listener := range d.wildcard {
		listener.OnEvent(event)
	}
}

// Recorder 记录收到的全部事件（调试与测试使用）
type Recorder struct {
	Events []Event
}

// OnEvent 追加事件
func (r *Recorder) OnEvent(event Event) {
	r.Events = append(r.Events, event)
}

// OfType 返回指定类型的事件
func (r *Recorder) OfType(eventType EventType) []Event {
	result := make([]Event, 0)
	for _, e := range r.Events {
		if e.Type == eventType {
			result = append(result, e)
		}
	}
	return result
}

// Count 指定类型事件的数量
func (r *Recorder) Count(eventType EventType) int {
	return len(r.OfType(eventType))
}

// Reset 清空记录
func (r *Recorder) Reset() {
	r.Events = r.Events[:0]
}
