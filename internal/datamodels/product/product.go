package product

// Product 商品模型
// Price 是带货币符号的展示字符串，仅用于显示，不参与计算。
// Address 为历史遗留的整段地址字段，新数据使用拆分后的四个字段。
type Product struct {
	ID          string `json:"id"`
	ProductName string `json:"productName"`
	Brand       string `json:"brand"`
	Condition   string `json:"condition"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	BuyerName   string `json:"buyerName"`
	Address     string `json:"address,omitempty"`
	Street      string `json:"street,omitempty"`
	PostalCode  string `json:"postalCode,omitempty"`
	City        string `json:"city,omitempty"`
	Country     string `json:"country,omitempty"`
}

// Repository 商品仓储接口
// 选中即插入：SetSelected 除了写入指针外还会把商品 Upsert 进全量列表，
// 没有独立于「选中」之外的创建路径。读操作缺数据时降级为空值。
type Repository interface {
	SetSelected(p *Product) error
	Selected() *Product
	Upsert(p Product) error
	All() []Product
	GetByID(id string) *Product
	Delete(id string) error
}
