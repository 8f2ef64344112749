package service

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/chat"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/message"
	"github.com/ZeroBug404/chat-duo-offers/internal/datamodels/product"
	"github.com/ZeroBug404/chat-duo-offers/internal/notify"
)

// 分享链接里的角色标识，决定落到哪个页面
const (
	RoleAdmin    = "admin"    // 卖家视角，/person-a
	RoleCustomer = "customer" // 买家视角，/person-b
)

// ChatService 聊天服务
// 封装消息读写、会话注册表维护和分享链接生成；
// 每次成功落盘后通过总线发布进程内通知。
type ChatService struct {
	logs     message.Repository
	registry chat.Registry
	notifier *notify.Notifier
	baseURL  string
}

// NewChatService 创建聊天服务，notifier 可以为 nil（不需要通知的场景）
func NewChatService(logs message.Repository, registry chat.Registry, notifier *notify.Notifier, baseURL string) *ChatService {
	return &ChatService{
		logs:     logs,
		registry: registry,
		notifier: notifier,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// AddOptions 追加消息时的可选属性
type AddOptions struct {
	Kind         message.Kind
	HasButton    bool
	ButtonText   string
	ButtonAction string
}

// GetMessages 返回某个会话的消息列表，chatID 为空时按活跃会话解析
func (s *ChatService) GetMessages(chatID string) []message.Message {
	return s.logs.List(chatID)
}

// AddMessage 追加一条消息并返回追加后的完整列表
// ID 与时间戳在这里生成：时间戳是创建时刻格式化好的 HH:MM，之后不再重算。
func (s *ChatService) AddMessage(chatID, text string, sender message.Sender, opts AddOptions) ([]message.Message, error) {
	m := message.Message{
		Text:         text,
		Sender:       sender,
		Timestamp:    time.Now().Format("15:04"),
		HasButton:    opts.HasButton,
		ButtonText:   opts.ButtonText,
		ButtonAction: opts.ButtonAction,
	}
	m.SetKind(opts.Kind)

	msgs, err := s.logs.Append(chatID, m)
	if err != nil {
		return msgs, err
	}
	s.publish(chatID, msgs)
	return msgs, nil
}

// SaveMessages 整体覆盖某个会话的消息列表
func (s *ChatService) SaveMessages(chatID string, msgs []message.Message) error {
	if err := s.logs.Save(chatID, msgs); err != nil {
		return err
	}
	s.publish(chatID, msgs)
	return nil
}

// AttachProductInfo 给最近一条消息补写商品快照（两步写入的第二步）
func (s *ChatService) AttachProductInfo(chatID string, info *message.ProductInfo) ([]message.Message, error) {
	msgs, err := s.logs.PatchLast(chatID, info)
	if err != nil {
		return msgs, err
	}
	s.publish(chatID, msgs)
	return msgs, nil
}

// SetActiveChatID 切换活跃会话（注册表会顺带收录这个 id）
func (s *ChatService) SetActiveChatID(id string) error {
	return s.registry.SetActiveID(id)
}

// ActiveChatID 当前活跃会话 id，未设置时为空串
func (s *ChatService) ActiveChatID() string {
	return s.registry.ActiveID()
}

// AllChatIDs 全部已知会话 id
func (s *ChatService) AllChatIDs() []string {
	return s.registry.AllIDs()
}

// DeleteChat 删除会话：消息日志和注册表条目都清掉
func (s *ChatService) DeleteChat(id string) error {
	if err := s.logs.Delete(id); err != nil {
		return err
	}
	return s.registry.Remove(id)
}

// ShareableLink 生成指定角色的深链，chat id 放在 chat 查询参数里
// 接收页面解析同名参数后调用 SetActiveChatID 即可进入会话。
func (s *ChatService) ShareableLink(chatID, role string) string {
	path := "/person-b"
	if role == RoleAdmin {
		path = "/person-a"
	}
	return fmt.Sprintf("%s%s?chat=%s", s.baseURL, path, url.QueryEscape(chatID))
}

// SendOffer 买家发起报价
func (s *ChatService) SendOffer(chatID, amount string) ([]message.Message, error) {
	text := fmt.Sprintf("Offer received: %s€", amount)
	return s.AddMessage(chatID, text, message.SenderBuyer, AddOptions{Kind: message.KindOffer})
}

// AcceptOffer 卖家接受报价
func (s *ChatService) AcceptOffer(chatID, amount string) ([]message.Message, error) {
	text := fmt.Sprintf("Offer accepted: %s€ Order paid", amount)
	return s.AddMessage(chatID, text, message.SenderSeller, AddOptions{Kind: message.KindOfferAccepted})
}

// SendPaymentReceived 建会话时自动触发的「已收款」消息
// 先追加带按钮的消息，再给它补写商品快照，两步各落盘一次。
func (s *ChatService) SendPaymentReceived(p product.Product) ([]message.Message, error) {
	text := fmt.Sprintf("Payment received: %s\n \nYou can now ship the item to:", p.Price)
	if _, err := s.AddMessage(p.ID, text, message.SenderSeller, AddOptions{
		Kind:         message.KindOfferAccepted,
		HasButton:    true,
		ButtonText:   "Whatsapp shipping details",
		ButtonAction: "track_shipment",
	}); err != nil {
		return nil, err
	}

	return s.AttachProductInfo(p.ID, &message.ProductInfo{
		Image:      p.Image,
		Title:      p.ProductName,
		Price:      p.Price,
		Condition:  p.Condition,
		Address:    p.Address,
		Street:     p.Street,
		PostalCode: p.PostalCode,
		City:       p.City,
		Country:    p.Country,
	})
}

func (s *ChatService) publish(chatID string, msgs []message.Message) {
	if s.notifier != nil {
		s.notifier.Publish(chatID, msgs)
	}
}
