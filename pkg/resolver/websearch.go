package resolver

import (
	"context"
	"fmt"
	"net/url"
)

// webSearchStage is the terminal fallback. It never declines: any query the
// earlier stages could not answer gets direct search-engine links instead of
// an apology.
type webSearchStage struct{}

func (s *webSearchStage) Name() string { return "websearch" }

func (s *webSearchStage) Resolve(_ context.Context, query string) (string, error) {
	encoded := url.QueryEscape(query)
	return fmt.Sprintf(`🔍 **Поиск:** %s

**Яндекс:** https://yandex.ru/search/?text=%s

**Google:** https://www.google.com/search?q=%s

Нажмите на ссылку для поиска в интернете!`, query, encoded, encoded), nil
}
