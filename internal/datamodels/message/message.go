package message

// Sender 消息归属角色
type Sender string

const (
	SenderSeller Sender = "seller"
	SenderBuyer  Sender = "buyer"
)

func (s Sender) Valid() bool {
	return s == SenderSeller || s == SenderBuyer
}

// Kind 消息的业务形态：普通消息 / 报价 / 报价已接受（含支付确认）
// 存储层沿用 isOffer / isOfferAccepted 两个布尔字段以保持数据兼容，
// 业务侧统一通过 Kind 读写，避免两个标志位被同时置位。
type Kind int

const (
	KindPlain Kind = iota
	KindOffer
	KindOfferAccepted
)

// ProductInfo 消息内嵌的商品/收货信息快照
// 在消息创建时固化，商品后续被修改或删除不影响历史消息的展示。
type ProductInfo struct {
	Image      string `json:"image,omitempty"`
	Title      string `json:"title,omitempty"`
	Price      string `json:"price,omitempty"`
	Condition  string `json:"condition,omitempty"`
	Address    string `json:"address,omitempty"`
	Street     string `json:"street,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	City       string `json:"city,omitempty"`
	Country    string `json:"country,omitempty"`
}

// Message 聊天消息
// ID 在会话内唯一且一经分配不再变化；Timestamp 为创建时格式化好的 HH:MM 字符串。
type Message struct {
	ID              int64        `json:"id"`
	Text            string       `json:"text"`
	Sender          Sender       `json:"sender"`
	Timestamp       string       `json:"timestamp"`
	IsOffer         bool         `json:"isOffer,omitempty"`
	IsOfferAccepted bool         `json:"isOfferAccepted,omitempty"`
	HasButton       bool         `json:"hasButton,omitempty"`
	ButtonText      string       `json:"buttonText,omitempty"`
	ButtonAction    string       `json:"buttonAction,omitempty"`
	ProductInfo     *ProductInfo `json:"productInfo,omitempty"`
}

// Kind 根据标志位推导消息形态，已接受报价优先
func (m Message) Kind() Kind {
	switch {
	case m.IsOfferAccepted:
		return KindOfferAccepted
	case m.IsOffer:
		return KindOffer
	default:
		return KindPlain
	}
}

// SetKind 按形态写回标志位，保证两者互斥
func (m *Message) SetKind(k Kind) {
	m.IsOffer = k == KindOffer
	m.IsOfferAccepted = k == KindOfferAccepted
}

// Log 消息日志的落盘信封：{messages, lastUpdated}
// lastUpdated 为毫秒时间戳。读取侧另外兼容历史上的裸数组格式。
type Log struct {
	Messages    []Message `json:"messages"`
	LastUpdated int64     `json:"lastUpdated"`
}

// Repository 消息日志仓储接口
// chatID 为空串时按「当前活跃会话 → 固定兜底 key」的顺序解析。
// 读操作对缺失或损坏的数据一律降级为空列表，不向调用方抛错。
type Repository interface {
	List(chatID string) []Message
	Append(chatID string, m Message) ([]Message, error)
	Save(chatID string, msgs []Message) error
	Delete(chatID string) error
	// PatchLast 更新最近一条消息的商品快照（追加后补写的两步写入）
	PatchLast(chatID string, info *ProductInfo) ([]Message, error)
	// StorageKey 返回 chatID 解析后的存储 key：显式 ID > 当前活跃会话 > 兜底 key。
	// 只读不写，供观察方按写入方同样的规则注册监听。
	StorageKey(chatID string) string
}
