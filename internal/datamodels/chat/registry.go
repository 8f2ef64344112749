package chat

// Registry 会话注册表接口
// 维护「当前活跃会话 ID」与「全部已知会话 ID 集合」两份状态：
// SetActiveID 会把 id 补进集合（重复写入是幂等的）；Remove 把 id 从集合
// 删掉，若它恰好是活跃会话则一并清空活跃指针。消息日志的级联删除由
// 上层服务负责，注册表只管自己这两个 key。
type Registry interface {
	SetActiveID(id string) error
	ActiveID() string
	AllIDs() []string
	Remove(id string) error
}
