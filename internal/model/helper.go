package model

// BoolPtr 创建 bool 指针
func BoolPtr(b bool) *bool {
	return &b
}

// defaultTrue 未设置的开关按开启处理
func defaultTrue(b **bool) {
	if *b == nil {
		*b = BoolPtr(true)
	}
}
