package middleware

import (
	"github.com/danielgtaylor/huma/v2"
)

type Middleware = func(ctx huma.Context, next func(huma.Context))

// Container собирает мидлвари для очередной группы операций. Базовые мидлвари
// получает каждая группа, добавленные через Add - только ближайшая.
type Container struct {
	base  huma.Middlewares
	added huma.Middlewares
}

func NewContainer(base ...Middleware) *Container {
	return &Container{base: append(huma.Middlewares{}, base...)}
}

// Add добавляет мидлварь для следующей группы
func (mc *Container) Add(mw Middleware) {
	mc.added = append(mc.added, mw)
}

// GetAllAndClear возвращает базовые и добавленные мидлвари и забывает добавленные
func (mc *Container) GetAllAndClear() huma.Middlewares {
	result := make(huma.Middlewares, 0, len(mc.base)+len(mc.added))
	result = append(result, mc.base...)
	result = append(result, mc.added...)
	mc.added = nil
	return result
}
