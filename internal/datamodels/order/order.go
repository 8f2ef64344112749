package order

// Details 订单追踪页的展示快照
// 仅作为页面刷新后的兜底数据写入存储，导航内存态才是权威来源。
type Details struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	BrandName   string `json:"brandName"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Condition   string `json:"condition"`
	Address     string `json:"address,omitempty"`
	Street      string `json:"street,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
	RefNumber   string `json:"refNumber,omitempty"`
}

// Repository 订单快照仓储接口
type Repository interface {
	Save(d Details) error
	Load() *Details
	Clear() error
}
