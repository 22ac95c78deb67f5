package render

func renderTXT(content string) []byte {
	return []byte(content)
}
