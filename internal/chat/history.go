package chat

// HistoryItem 侧边栏中的历史会话
type HistoryItem struct {
	ID    string
	Title string
}

// History 侧边栏显示的历史会话（目前是静态数据）
var History = []HistoryItem{
	{ID: "1", Title: "Plumbing issue"},
	{ID: "2", Title: "Electrical repair"},
	{ID: "3", Title: "Car maintenance"},
	{ID: "4", Title: "House cleaning"},
	{ID: "5", Title: "Gardening service"},
}

func findHistory(id string) (HistoryItem, bool) {
	for _, item := range History {
		if item.ID == id {
			return item, true
		}
	}
	return HistoryItem{}, false
}
