package resolver

import (
	"context"
	"strings"
)

// bucketKeywords are the programming terms that trigger the canned capability
// answers. Matched as plain substrings of the lowercased query.
var bucketKeywords = []string{
	"function", "функция", "table", "таблица", "loop", "цикл",
	"roblox", "script", "game", "workspace", "part",
}

const robloxBucket = `**Roblox Studio Scripting**

Я могу помочь с:
• Основами Lua для Roblox
• Работой с объектами (Part, Model, etc.)
• События и функциями
• DataStore для сохранения данных
• RemoteEvent/RemoteFunction

Спросите конкретнее, например: "Как создать Part в Roblox?" `

const luaBucket = `**Lua Программирование**

Я эксперт по Lua! Могу помочь с:
• Функциями и переменными
• Таблицами и массивами
• Циклами и условиями
• ООП и метатаблицами
• Корутинами

Задайте конкретный вопрос, например: "Как работают таблицы в Lua?" `

// bucketStage answers broad programming questions that matched no knowledge
// record with a canned capability overview. It runs after the knowledge
// stages so a concrete record always wins over the generic text.
type bucketStage struct{}

func (s *bucketStage) Name() string { return "buckets" }

func (s *bucketStage) Resolve(_ context.Context, query string) (string, error) {
	q := strings.ToLower(query)

	matched := false
	for _, kw := range bucketKeywords {
		if strings.Contains(q, kw) {
			matched = true
			break
		}
	}
	if !matched {
		return "", nil
	}

	if strings.Contains(q, "roblox") {
		return robloxBucket, nil
	}
	return luaBucket, nil
}
