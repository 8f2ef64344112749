package kv

// Store 本地键值存储适配器
// key/value 都是字符串，value 约定为 JSON 文本。
// Get 对缺失的 key 返回 ok=false，任何读取层面的故障也按「没有数据」处理，
// 由调用方降级；只有写入才返回 error，供上层记录日志后继续运行。
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
}

// Watchable 支持变更监听的存储后端（目前只有文件后端实现）
// onChange 在任意 key 的值发生变化后被回调，可能重复触发，
// 观察方需要自行重读并以最新读取结果为准。
type Watchable interface {
	Watch(onChange func(key string)) (stop func(), err error)
}
