// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import "strings"

// humanizeError shortens transport failures to a message an operator can
// act on. Other errors are returned as is.
func humanizeError(msg string) string {
	s := strings.ToLower(msg)
	switch {
	case s == "":
		return ""
	case s == "offline":
		return "Нет сети, показаны сохранённые данные"
	case s == "no session":
		return "Нет сессии, синхронизация отключена"
	case strings.Contains(s, "connection refused"),
		strings.Contains(s, "dial tcp"),
		strings.Contains(s, "no such host"),
		strings.Contains(s, "network is unreachable"),
		strings.Contains(s, "i/o timeout"),
		strings.Contains(s, "context deadline exceeded"):
		return "Отсутствует сеть или Сервер недоступен"
	}

	return msg
}
