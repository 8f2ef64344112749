package kvrepo

import "strings"

// 存储命名空间里的固定 key，与历史数据保持一致，不要改名
const (
	KeyActiveChat      = "active_chat_id"
	KeyAllChats        = "all_chat_ids"
	KeySelectedProduct = "selected_product"
	KeyAllProducts     = "all_products"
	KeyOrderDetails    = "current_order_details"
	KeyAuthTimestamp   = "chat_auth_timestamp"

	messageKeyPrefix = "chat_messages_"
	// DefaultMessageKey 解析不出会话 ID 时使用的兜底消息 key
	DefaultMessageKey = "chat_messages_cross_device"
)

// MessageKey 会话 ID 到存储 key 的确定性映射，纯函数
// 空 ID 映射到兜底 key，其他组件可以用同样的规则注册监听。
func MessageKey(chatID string) string {
	if chatID == "" {
		return DefaultMessageKey
	}
	return messageKeyPrefix + chatID
}

// ChatIDFromKey MessageKey 的逆映射，非消息 key 返回 ok=false
// 会话 id 恰好叫 "cross_device" 时会和兜底 key 撞车、反解成空串；
// 实际 id 都是 ULID，不会命中这个名字。
func ChatIDFromKey(key string) (string, bool) {
	if key == DefaultMessageKey {
		return "", true
	}
	if strings.HasPrefix(key, messageKeyPrefix) {
		return strings.TrimPrefix(key, messageKeyPrefix), true
	}
	return "", false
}
